// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package sidebar

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/fishchat-tui/internal/model"
	"github.com/jeranaias/fishchat-tui/internal/ui/styles"
	"github.com/jeranaias/fishchat-tui/internal/util"
)

// =============================================================================
// MESSAGES
// =============================================================================

// ConversationSelectedMsg reports that the user picked a conversation.
type ConversationSelectedMsg struct {
	ID string
}

// NewChatMsg reports that the user asked for a fresh conversation.
type NewChatMsg struct{}

// =============================================================================
// MODEL
// =============================================================================

// Model is the sidebar component.
type Model struct {
	theme *styles.Theme

	conversations []*model.Conversation // recency order, unfiltered
	visible       []*model.Conversation // after the filter
	activeID      string
	cursor        int

	filter    textinput.Model
	filtering bool

	width  int
	height int
}

// New creates an empty sidebar.
func New(theme *styles.Theme) Model {
	ti := textinput.New()
	ti.Placeholder = "Search chats..."
	ti.CharLimit = 100
	ti.Width = 24

	return Model{
		theme:  theme,
		filter: ti,
	}
}

// SetSize updates the layout box the sidebar renders into.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.filter.Width = width - 6
}

// SetConversations replaces the list. The caller passes recency order; the
// activeID marks the conversation open in the chat panel.
func (m *Model) SetConversations(list []*model.Conversation, activeID string) {
	m.conversations = list
	m.activeID = activeID
	m.applyFilter()
}

// Selected returns the conversation under the cursor, or nil.
func (m *Model) Selected() *model.Conversation {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return nil
	}
	return m.visible[m.cursor]
}

// Filtering reports whether the filter box has focus.
func (m *Model) Filtering() bool {
	return m.filtering
}

// applyFilter rebuilds the visible list from the filter term and clamps the
// cursor.
func (m *Model) applyFilter() {
	term := m.filter.Value()
	var visible []*model.Conversation
	for _, conv := range m.conversations {
		if conv.Matches(term) {
			visible = append(visible, conv)
		}
	}
	m.visible = visible
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles key input while the sidebar has focus.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.filtering {
		switch keyMsg.String() {
		case "esc":
			m.filtering = false
			m.filter.Blur()
			m.filter.SetValue("")
			m.applyFilter()
			return m, nil
		case "enter":
			m.filtering = false
			m.filter.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			m.applyFilter()
			return m, cmd
		}
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case "enter":
		if sel := m.Selected(); sel != nil {
			id := sel.ID
			return m, func() tea.Msg { return ConversationSelectedMsg{ID: id} }
		}
	case "n":
		return m, func() tea.Msg { return NewChatMsg{} }
	case "/":
		m.filtering = true
		return m, m.filter.Focus()
	}
	return m, nil
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the sidebar.
func (m Model) View() string {
	var rows []string

	rows = append(rows, m.theme.SidebarTitle.Render("Chats"))
	rows = append(rows, m.filter.View())

	if len(m.visible) == 0 {
		rows = append(rows, m.theme.SidebarEmpty.Render("No saved chats yet"))
	}

	itemWidth := m.width - 4
	for i, conv := range m.visible {
		title := util.Truncate(conv.Title, itemWidth)
		line := fmt.Sprintf("%s\n%s", title,
			m.theme.SidebarMeta.Render(formatStamp(conv.Timestamp)))

		style := m.theme.SidebarItem
		switch {
		case i == m.cursor:
			style = m.theme.SidebarItemSelected
		case conv.ID == m.activeID:
			style = m.theme.SidebarItemActive
		}
		rows = append(rows, style.Width(itemWidth).Render(line))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return m.theme.Sidebar.Width(m.width).Height(m.height).Render(body)
}

// formatStamp renders a creation timestamp for the list entry: time of day
// for today, date otherwise.
func formatStamp(millis int64) string {
	ts := time.UnixMilli(millis)
	now := time.Now()
	if ts.Year() == now.Year() && ts.YearDay() == now.YearDay() {
		return ts.Format("15:04")
	}
	return ts.Format("Jan 2")
}
