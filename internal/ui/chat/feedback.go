// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/fishchat-tui/internal/feedback"
)

// feedbackPopup is the thumbs-down report overlay: pick a reason, optionally
// add a comment, submit or cancel.
type feedbackPopup struct {
	open    bool
	message string
	cursor  int
	comment textinput.Model
	typing  bool // comment box focused
}

// openPopup shows the overlay for the given bot message.
func (m *Model) openPopup(message string) {
	ti := textinput.New()
	ti.Placeholder = "Optional comment"
	ti.CharLimit = 500
	ti.Width = 40

	m.popup = feedbackPopup{
		open:    true,
		message: message,
		comment: ti,
	}
}

// updatePopup handles keys while the overlay is open.
func (m Model) updatePopup(msg tea.KeyMsg) (Model, tea.Cmd) {
	p := &m.popup

	if p.typing {
		switch msg.String() {
		case "esc":
			p.typing = false
			p.comment.Blur()
			return m, nil
		case "enter":
			return m.submitPopup()
		default:
			var cmd tea.Cmd
			p.comment, cmd = p.comment.Update(msg)
			return m, cmd
		}
	}

	switch msg.String() {
	case "esc":
		p.open = false
		return m, nil
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(feedback.Reasons)-1 {
			p.cursor++
		}
	case "tab", "c":
		p.typing = true
		return m, p.comment.Focus()
	case "enter":
		return m.submitPopup()
	}
	return m, nil
}

// submitPopup closes the overlay and emits the report.
func (m Model) submitPopup() (Model, tea.Cmd) {
	p := m.popup
	m.popup.open = false

	reason := ""
	if p.cursor >= 0 && p.cursor < len(feedback.Reasons) {
		reason = feedback.Reasons[p.cursor]
	}
	comment := p.comment.Value()
	message := p.message
	return m, func() tea.Msg {
		return FeedbackMsg{Message: message, Reason: reason, Comment: comment}
	}
}

// viewPopup renders the overlay box.
func (m Model) viewPopup() string {
	var rows []string
	rows = append(rows, m.theme.PopupTitle.Render("What went wrong?"))

	for i, reason := range feedback.Reasons {
		style := m.theme.PopupItem
		if i == m.popup.cursor && !m.popup.typing {
			style = m.theme.PopupItemSelected
		}
		rows = append(rows, style.Render(reason))
	}

	rows = append(rows, m.popup.comment.View())
	rows = append(rows, m.theme.FormHint.Render("enter submit • tab comment • esc cancel"))

	return m.theme.PopupBox.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
