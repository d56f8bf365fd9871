// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/fishchat-tui/internal/feedback"
	"github.com/jeranaias/fishchat-tui/internal/model"
	"github.com/jeranaias/fishchat-tui/internal/transport"
	"github.com/jeranaias/fishchat-tui/internal/ui/styles"
)

func newPanel(t *testing.T) Model {
	t.Helper()
	m := New(styles.NewTheme())
	m.SetSize(80, 24)
	return m
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestChat_EnterEmitsSend(t *testing.T) {
	m := newPanel(t)
	m = typeText(m, "Where can I find cod?")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter with text should emit a command")
	}
	msg, ok := cmd().(SendMsg)
	if !ok {
		t.Fatalf("expected SendMsg, got %T", cmd())
	}
	if msg.Text != "Where can I find cod?" {
		t.Errorf("Text = %q", msg.Text)
	}
	if m.input.Value() != "" {
		t.Error("input should clear on send")
	}
}

func TestChat_EnterOnEmptyInputDoesNothing(t *testing.T) {
	m := newPanel(t)
	m = typeText(m, "   ")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("whitespace-only input must not send")
	}
}

func TestChat_MicKey(t *testing.T) {
	m := newPanel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if cmd == nil {
		t.Fatal("ctrl+r should emit a command")
	}
	if _, ok := cmd().(MicMsg); !ok {
		t.Errorf("expected MicMsg, got %T", cmd())
	}
}

func TestChat_WelcomePlaceholder(t *testing.T) {
	m := newPanel(t)

	content := m.renderMessages()
	if !strings.Contains(content, "Welcome to FisherMen Chatbot") {
		t.Error("empty panel should show the welcome placeholder")
	}

	conv := model.NewConversationAt(1000)
	conv.AppendExchange("hello", "hi there")
	conv.EnsureMessageIDs()
	m.SetConversation(conv)

	content = m.renderMessages()
	if strings.Contains(content, "Welcome to FisherMen Chatbot") {
		t.Error("placeholder should disappear once messages exist")
	}
	if !strings.Contains(content, "hello") || !strings.Contains(content, "hi there") {
		t.Error("messages should render")
	}
}

func TestChat_TypingIndicator(t *testing.T) {
	m := newPanel(t)

	m.SetTyping(true)
	if !strings.Contains(m.renderMessages(), "FisherMen Bot is typing") {
		t.Error("typing indicator should show")
	}

	m.SetTyping(false)
	if strings.Contains(m.renderMessages(), "FisherMen Bot is typing") {
		t.Error("typing indicator should hide")
	}
}

func TestChat_NoticesSurviveConversationSwitch(t *testing.T) {
	m := newPanel(t)
	m.AddNotice("Welcome back, Rahim! 👋")

	conv := model.NewConversationAt(1000)
	conv.AppendExchange("hello", "hi")
	conv.EnsureMessageIDs()
	m.SetConversation(conv)

	if !strings.Contains(m.renderMessages(), "Welcome back, Rahim!") {
		t.Error("notices belong to the session and should survive switches")
	}
}

func TestChat_ThumbsDownOpensPopup(t *testing.T) {
	m := newPanel(t)
	conv := model.NewConversationAt(1000)
	conv.AppendExchange("hello", "wrong answer")
	conv.EnsureMessageIDs()
	m.SetConversation(conv)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlB})
	if !m.popup.open {
		t.Fatal("ctrl+b should open the feedback overlay")
	}
	if m.popup.message != "wrong answer" {
		t.Errorf("popup message = %q", m.popup.message)
	}

	botID := conv.LastBotMessage().ID
	if m.reactions.Get(botID) != feedback.Down {
		t.Error("thumbs-down reaction should be recorded")
	}
}

func TestChat_PopupSubmit(t *testing.T) {
	m := newPanel(t)
	conv := model.NewConversationAt(1000)
	conv.AppendExchange("hello", "wrong answer")
	conv.EnsureMessageIDs()
	m.SetConversation(conv)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlB})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown}) // second reason
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should submit the report")
	}

	msg, ok := cmd().(FeedbackMsg)
	if !ok {
		t.Fatalf("expected FeedbackMsg, got %T", cmd())
	}
	if msg.Message != "wrong answer" {
		t.Errorf("Message = %q", msg.Message)
	}
	if msg.Reason != feedback.Reasons[1] {
		t.Errorf("Reason = %q, want %q", msg.Reason, feedback.Reasons[1])
	}
	if m.popup.open {
		t.Error("overlay should close on submit")
	}
}

func TestChat_PopupCancel(t *testing.T) {
	m := newPanel(t)
	conv := model.NewConversationAt(1000)
	conv.AppendExchange("hello", "hi")
	conv.EnsureMessageIDs()
	m.SetConversation(conv)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlB})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd != nil {
		t.Error("esc must not submit")
	}
	if m.popup.open {
		t.Error("esc should close the overlay")
	}
}

func TestChat_HeaderShows(t *testing.T) {
	m := newPanel(t)
	if !strings.Contains(m.View(), "FisherMen Chatbot") {
		t.Error("panel header should show the app name")
	}
}

func TestChat_FallbackReplyRenders(t *testing.T) {
	m := newPanel(t)
	conv := model.NewConversationAt(1000)
	conv.AppendExchange("hello", transport.FallbackReply)
	m.SetConversation(conv)

	if !strings.Contains(m.renderMessages(), "Couldn't reach the chatbot server") {
		t.Error("fallback reply should render as a bot message")
	}
}

func TestChat_LiveStateSurvivesReload(t *testing.T) {
	m := newPanel(t)
	m.now = func() time.Time {
		return time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	}

	conv := model.NewConversationAt(1000)
	conv.AppendExchange("hello", "hi there")
	m.SetConversation(conv)
	m.MarkLive(conv.Messages[0], conv.Messages[1])
	m.reactions.Set(conv.LastBotMessage().ID, feedback.Up)

	if !strings.Contains(m.renderMessages(), "09:30") {
		t.Fatal("live stamps should render")
	}

	// Persisting and reloading the conversation (what every append does)
	// must not detach the stamps or the reaction.
	data, err := json.Marshal(conv)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var reloaded model.Conversation
	if err := json.Unmarshal(data, &reloaded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	reloaded.EnsureMessageIDs()
	m.SetConversation(&reloaded)

	if !strings.Contains(m.renderMessages(), "09:30") {
		t.Error("live stamps should survive a history reload")
	}
	if m.reactions.Get(reloaded.LastBotMessage().ID) != feedback.Up {
		t.Error("reactions should survive a history reload")
	}
}

func TestChat_ThumbsUpToggle(t *testing.T) {
	m := newPanel(t)
	conv := model.NewConversationAt(1000)
	conv.AppendExchange("hello", "good answer")
	conv.EnsureMessageIDs()
	m.SetConversation(conv)
	botID := conv.LastBotMessage().ID

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	if m.reactions.Get(botID) != feedback.Up {
		t.Error("ctrl+g should record a thumbs up")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	if m.reactions.Get(botID) != feedback.None {
		t.Error("ctrl+g again should clear the reaction")
	}
}
