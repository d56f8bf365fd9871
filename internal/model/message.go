// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strconv"
	"strings"
)

// =============================================================================
// SENDER TYPE
// =============================================================================

// Sender identifies who produced a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// String returns the string representation of the sender.
func (s Sender) String() string {
	return string(s)
}

// DisplayName returns a human-readable name for the sender.
func (s Sender) DisplayName() string {
	switch s {
	case SenderUser:
		return "You"
	case SenderBot:
		return "FisherMen Bot"
	default:
		return string(s)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single chat message. Messages are immutable once created and
// keep append order inside their conversation.
//
// Only Sender and Content are persisted; the ID exists so the UI can track
// per-message state (live timestamps, feedback reactions) within a session.
// It is derived from the conversation ID and the message's position, so the
// same message carries the same ID no matter how many times the history
// blob is reloaded.
type Message struct {
	ID      string `json:"-"`
	Sender  Sender `json:"sender"`
	Content string `json:"content"`
}

// NewMessage creates a message. The ID is assigned once the message lands
// in a conversation.
func NewMessage(sender Sender, content string) Message {
	return Message{
		Sender:  sender,
		Content: content,
	}
}

// NewUserMessage creates a user message.
func NewUserMessage(content string) Message {
	return NewMessage(SenderUser, content)
}

// NewBotMessage creates a bot message.
func NewBotMessage(content string) Message {
	return NewMessage(SenderBot, content)
}

// MessageID derives the stable ID for the message at the given position of
// a conversation.
func MessageID(conversationID string, index int) string {
	return conversationID + ":" + strconv.Itoa(index)
}

// Contains reports whether the message content contains term
// case-insensitively.
func (m Message) Contains(term string) bool {
	return strings.Contains(strings.ToLower(m.Content), strings.ToLower(term))
}
