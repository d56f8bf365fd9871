// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strconv"
	"strings"
	"time"

	"github.com/jeranaias/fishchat-tui/internal/util"
)

// DefaultTitle is the placeholder title a conversation carries until its
// first user/bot exchange lands.
const DefaultTitle = "New Chat"

// TitleMaxRunes is how much of the first user message becomes the title.
const TitleMaxRunes = 30

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation is a titled, timestamped, ordered sequence of chat messages.
//
// Timestamp is the creation time in Unix milliseconds and never changes
// afterwards; display ordering sorts on it descending. The ID is derived
// from the same instant.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Timestamp int64     `json:"timestamp"`
	Messages  []Message `json:"messages"`
}

// NewConversation creates an empty conversation stamped at the given
// creation time.
func NewConversation(createdAt time.Time) *Conversation {
	millis := createdAt.UnixMilli()
	return &Conversation{
		ID:        "chat_" + strconv.FormatInt(millis, 10),
		Title:     DefaultTitle,
		Timestamp: millis,
		Messages:  make([]Message, 0),
	}
}

// NewConversationAt creates an empty conversation with an explicit millisecond
// timestamp. The history store uses this to keep timestamps strictly
// increasing when conversations are created within the same millisecond.
func NewConversationAt(millis int64) *Conversation {
	return &Conversation{
		ID:        "chat_" + strconv.FormatInt(millis, 10),
		Title:     DefaultTitle,
		Timestamp: millis,
		Messages:  make([]Message, 0),
	}
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// Append adds a message to the end of the conversation, assigning its
// position-derived ID.
func (c *Conversation) Append(msg Message) {
	msg.ID = MessageID(c.ID, len(c.Messages))
	c.Messages = append(c.Messages, msg)
}

// AppendExchange appends a user message followed by the bot's reply, then
// applies the title rule: when this brings the conversation to exactly two
// messages and the title is still the placeholder, the title becomes the
// first TitleMaxRunes runes of the user message ("..." appended when the
// original is longer).
func (c *Conversation) AppendExchange(userText, botText string) {
	c.Append(NewUserMessage(userText))
	c.Append(NewBotMessage(botText))

	if c.Title == DefaultTitle && len(c.Messages) == 2 {
		c.Title = TitleFor(userText)
	}
}

// MessageCount returns the number of messages.
func (c *Conversation) MessageCount() int {
	return len(c.Messages)
}

// IsEmpty reports whether the conversation has no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// LastBotMessage returns the most recent bot message, or nil if none exists.
func (c *Conversation) LastBotMessage() *Message {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Sender == SenderBot {
			return &c.Messages[i]
		}
	}
	return nil
}

// EnsureMessageIDs assigns IDs to messages loaded from storage. IDs are
// deterministic, so repeated loads of the same blob always agree and
// session state keyed on them (timestamps, reactions) survives reloads.
func (c *Conversation) EnsureMessageIDs() {
	for i := range c.Messages {
		c.Messages[i].ID = MessageID(c.ID, i)
	}
}

// =============================================================================
// SEARCH
// =============================================================================

// Matches reports whether the conversation title or any message content
// contains term case-insensitively. The empty term matches everything.
func (c *Conversation) Matches(term string) bool {
	term = strings.ToLower(term)
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(c.Title), term) {
		return true
	}
	for _, msg := range c.Messages {
		if msg.Contains(term) {
			return true
		}
	}
	return false
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// TitleFor derives a conversation title from the first user message.
func TitleFor(userText string) string {
	return util.Ellipsize(userText, TitleMaxRunes)
}

// CreatedAt returns the creation timestamp as a time.Time.
func (c *Conversation) CreatedAt() time.Time {
	return time.UnixMilli(c.Timestamp)
}
