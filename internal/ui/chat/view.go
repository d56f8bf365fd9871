// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/fishchat-tui/internal/model"
	"github.com/jeranaias/fishchat-tui/internal/transport"
)

// refresh re-renders the scrollback into the viewport.
func (m *Model) refresh() {
	m.viewport.SetContent(m.renderMessages())
}

// renderMessages builds the scrollback text: the welcome placeholder when
// nothing has been said, otherwise bubbles in order plus session notices and
// the typing indicator.
func (m *Model) renderMessages() string {
	var blocks []string

	for _, n := range m.notices {
		line := n.text + " " + m.theme.Timestamp.Render(n.stamp)
		blocks = append(blocks, m.theme.Notice.Render(line))
	}

	if m.conversation == nil || m.conversation.MessageCount() == 0 {
		blocks = append(blocks, m.renderWelcome())
	} else {
		for _, msg := range m.conversation.Messages {
			blocks = append(blocks, m.renderBubble(msg))
		}
	}

	if m.typing {
		blocks = append(blocks,
			m.spinner.View()+m.theme.TypingText.Render(" FisherMen Bot is typing..."))
	}

	return strings.Join(blocks, "\n\n")
}

// renderWelcome is the empty-conversation placeholder.
func (m *Model) renderWelcome() string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		m.theme.WelcomeTitle.Render("Welcome to FisherMen Chatbot"),
		m.theme.WelcomeHint.Render("How can I assist you today?"),
	)
	return m.theme.WelcomeBox.Width(m.viewport.Width).Render(body)
}

// renderBubble renders one message with its sender label, optional arrival
// time, and reaction glyph.
func (m *Model) renderBubble(msg model.Message) string {
	label := m.theme.SenderLabel.Render(msg.Sender.DisplayName())
	if stamp, ok := m.stamps[msg.ID]; ok {
		label += " " + m.theme.Timestamp.Render(stamp)
	}

	content := msg.Content
	bubble := m.theme.UserBubble
	if msg.Sender == model.SenderBot {
		bubble = m.theme.BotBubble
		if content == transport.FallbackReply {
			content = m.theme.FallbackReply.Render(content)
		} else {
			content = m.renderMarkdown(content)
		}
		if r := m.reactions.Get(msg.ID); r.String() != "" {
			label += m.theme.ReactionMark.Render(r.String())
		}
	}

	align := lipgloss.Left
	if msg.Sender == model.SenderUser {
		align = lipgloss.Right
	}

	block := lipgloss.JoinVertical(align, label, bubble.Render(content))
	if m.viewport.Width > 0 {
		return lipgloss.PlaceHorizontal(m.viewport.Width, align, block)
	}
	return block
}

// renderMarkdown runs bot replies through glamour, falling back to the raw
// text when rendering fails.
func (m *Model) renderMarkdown(content string) string {
	if m.renderer == nil {
		return content
	}
	out, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}

// renderHeader is the panel's title bar.
func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("🎣 FisherMen Chatbot")
	subtitle := m.theme.HeaderSubtitle.Render("Your fishing assistant")
	return m.theme.Header.Width(m.width - 2).Render(title + "  " + subtitle)
}

// View renders the whole panel.
func (m Model) View() string {
	if m.popup.open {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.viewPopup())
	}

	mic := m.theme.MicIdle.Render("🎤")
	if m.listening {
		mic = m.theme.MicActive.Render("🎤 listening...")
	}

	inputLine := m.theme.InputContainer.Width(m.width).Render(
		lipgloss.JoinHorizontal(lipgloss.Center,
			m.theme.InputPrompt.Render("> "),
			m.input.View(),
			" ",
			mic,
		))

	status := m.theme.StatusBar.Width(m.width).Render(
		m.theme.ShortcutKey.Render("enter") + m.theme.ShortcutDesc.Render(" send  ") +
			m.theme.ShortcutKey.Render("ctrl+r") + m.theme.ShortcutDesc.Render(" speak  ") +
			m.theme.ShortcutKey.Render("ctrl+g") + m.theme.ShortcutDesc.Render(" 👍  ") +
			m.theme.ShortcutKey.Render("ctrl+b") + m.theme.ShortcutDesc.Render(" 👎  ") +
			m.theme.ShortcutKey.Render("ctrl+l") + m.theme.ShortcutDesc.Render(" logout"))

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.viewport.View(),
		inputLine,
		status,
	)
}
