// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/fishchat-tui/internal/feedback"
	"github.com/jeranaias/fishchat-tui/internal/model"
	"github.com/jeranaias/fishchat-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// SendMsg reports that the user submitted a message to send.
type SendMsg struct {
	Text string
}

// MicMsg reports that the user pressed the microphone key.
type MicMsg struct{}

// FeedbackMsg reports a submitted thumbs-down form.
type FeedbackMsg struct {
	Message string
	Reason  string
	Comment string
}

// notice is a transient system line (greetings, voice errors). Notices are
// never persisted.
type notice struct {
	text  string
	stamp string
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the chat panel component.
type Model struct {
	theme *styles.Theme

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer

	conversation *model.Conversation
	notices      []notice
	reactions    *feedback.Reactions

	// stamps holds HH:MM arrival times for messages appended this
	// session. Loaded history has no per-message times.
	stamps map[string]string

	typing    bool
	listening bool

	popup feedbackPopup

	width  int
	height int

	now func() time.Time
}

// New creates an empty chat panel.
func New(theme *styles.Theme) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask about fishing..."
	ti.PlaceholderStyle = theme.InputPlaceholder
	ti.CharLimit = 2000
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	return Model{
		theme:     theme,
		input:     ti,
		spinner:   sp,
		viewport:  viewport.New(0, 0),
		reactions: feedback.NewReactions(),
		stamps:    make(map[string]string),
		now:       time.Now,
	}
}

// SetSize lays the panel out into the given box.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 8
	m.viewport.Width = width
	m.viewport.Height = height - 7 // header, input line, status, borders

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(min(width-10, 100)),
	)
	if err == nil {
		m.renderer = renderer
	}
	m.refresh()
}

// SetConversation swaps the displayed conversation and scrolls to the
// bottom. Notices stay: they belong to the session, not the conversation.
func (m *Model) SetConversation(conv *model.Conversation) {
	m.conversation = conv
	m.refresh()
	m.viewport.GotoBottom()
}

// Conversation returns the conversation on display, or nil.
func (m *Model) Conversation() *model.Conversation {
	return m.conversation
}

// MarkLive records arrival times for messages appended this session so the
// view can show HH:MM next to them.
func (m *Model) MarkLive(messages ...model.Message) {
	stamp := m.now().Format("15:04")
	for _, msg := range messages {
		if msg.ID != "" {
			m.stamps[msg.ID] = stamp
		}
	}
	m.refresh()
	m.viewport.GotoBottom()
}

// AddNotice appends a transient system line.
func (m *Model) AddNotice(text string) {
	m.notices = append(m.notices, notice{
		text:  text,
		stamp: m.now().Format("15:04"),
	})
	m.refresh()
	m.viewport.GotoBottom()
}

// SetTyping shows or hides the typing indicator. At most one shows.
func (m *Model) SetTyping(typing bool) {
	m.typing = typing
	m.refresh()
	if typing {
		m.viewport.GotoBottom()
	}
}

// Typing reports whether the indicator is showing.
func (m *Model) Typing() bool {
	return m.typing
}

// SetListening shows or hides the microphone-active marker.
func (m *Model) SetListening(listening bool) {
	m.listening = listening
}

// SetInput replaces the input line content (voice transcripts land here).
func (m *Model) SetInput(text string) {
	m.input.SetValue(text)
}

// Reactions exposes the reaction tracker for the app model.
func (m *Model) Reactions() *feedback.Reactions {
	return m.reactions
}
