// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/fishchat-tui/internal/feedback"
	"github.com/jeranaias/fishchat-tui/internal/model"
)

// Init starts the spinner ticking.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles input and animation for the chat panel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.typing {
			m.refresh()
		}
		return m, cmd

	case tea.KeyMsg:
		if m.popup.open {
			return m.updatePopup(msg)
		}
		return m.updateKeys(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// updateKeys handles panel keys outside the feedback overlay.
func (m Model) updateKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return m, nil
		}
		m.input.SetValue("")
		return m, func() tea.Msg { return SendMsg{Text: text} }

	case "ctrl+r":
		return m, func() tea.Msg { return MicMsg{} }

	case "ctrl+g":
		// Thumbs up on the latest bot reply. Toggles.
		if msg := m.lastBotMessage(); msg != nil {
			m.reactions.Set(msg.ID, feedback.Up)
			m.refresh()
		}
		return m, nil

	case "ctrl+b":
		// Thumbs down opens the report form.
		if msg := m.lastBotMessage(); msg != nil {
			m.reactions.Set(msg.ID, feedback.Down)
			m.openPopup(msg.Content)
			m.refresh()
		}
		return m, nil

	case "pgup", "pgdown", "ctrl+u", "ctrl+d":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// lastBotMessage returns the newest bot message in the open conversation.
func (m *Model) lastBotMessage() *model.Message {
	if m.conversation == nil {
		return nil
	}
	return m.conversation.LastBotMessage()
}
