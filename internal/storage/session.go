// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"encoding/json"

	"github.com/jeranaias/fishchat-tui/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrInvalidSession is returned when a session record is missing a field.
// Use errors.Is(err, ErrInvalidSession) to check for this error.
var ErrInvalidSession = &StoreError{Message: "session record has empty fields"}

// StoreError represents a storage-related error.
// It implements the error interface and can be compared using errors.Is.
type StoreError struct {
	Message string
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return e.Message
}

// Is implements errors.Is support for comparing store errors.
func (e *StoreError) Is(target error) bool {
	t, ok := target.(*StoreError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}

// =============================================================================
// SESSION STORE
// =============================================================================

// SessionStore wraps the persisted current-user record. Exactly one session
// exists at a time; saving overwrites any prior one.
type SessionStore struct {
	kv *KV
}

// NewSessionStore creates a session store over the given key-value store.
func NewSessionStore(kv *KV) *SessionStore {
	return &SessionStore{kv: kv}
}

// Save persists the session record, overwriting any prior session. All
// three fields must be non-empty; this is the only invariant the fake
// authentication enforces.
func (s *SessionStore) Save(user model.User) error {
	if !user.Valid() {
		return ErrInvalidSession
	}

	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.kv.Set(KeyCurrentUser, data)
}

// Current returns the active session record, or false when nobody is signed
// in. A corrupted record counts as no session.
func (s *SessionStore) Current() (model.User, bool) {
	data, ok, err := s.kv.Get(KeyCurrentUser)
	if err != nil || !ok {
		return model.User{}, false
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return model.User{}, false
	}
	if !user.Valid() {
		return model.User{}, false
	}
	return user, true
}

// Clear removes the session record and, by policy, the entire chat history:
// logging out discards saved conversations.
func (s *SessionStore) Clear() error {
	if err := s.kv.Delete(KeyCurrentUser); err != nil {
		return err
	}
	return s.kv.Delete(KeyChatHistory)
}
