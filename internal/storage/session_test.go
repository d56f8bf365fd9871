// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"errors"
	"testing"

	"github.com/jeranaias/fishchat-tui/internal/model"
)

func newTestKV(t *testing.T) *KV {
	t.Helper()
	kv, err := OpenKV(t.TempDir())
	if err != nil {
		t.Fatalf("OpenKV failed: %v", err)
	}
	return kv
}

// =============================================================================
// SESSION STORE TESTS
// =============================================================================

func TestSessionStore_SaveAndCurrent(t *testing.T) {
	store := NewSessionStore(newTestKV(t))

	user := model.User{Name: "Rahim", FishermanID: "F-102", Location: "Cox's Bazar"}
	if err := store.Save(user); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, ok := store.Current()
	if !ok {
		t.Fatal("expected an active session")
	}
	if got != user {
		t.Errorf("Current = %+v, want %+v", got, user)
	}
}

func TestSessionStore_NoSession(t *testing.T) {
	store := NewSessionStore(newTestKV(t))

	if _, ok := store.Current(); ok {
		t.Error("fresh store should have no session")
	}
}

func TestSessionStore_SaveInvalid(t *testing.T) {
	store := NewSessionStore(newTestKV(t))

	err := store.Save(model.User{Name: "Rahim"})
	if !errors.Is(err, ErrInvalidSession) {
		t.Errorf("expected ErrInvalidSession, got %v", err)
	}
	if _, ok := store.Current(); ok {
		t.Error("invalid save must not create a session")
	}
}

func TestSessionStore_SaveOverwrites(t *testing.T) {
	store := NewSessionStore(newTestKV(t))

	first := model.User{Name: "Rahim", FishermanID: "F-102", Location: "Cox's Bazar"}
	second := model.User{Name: "Karim", FishermanID: "F-201", Location: "Chittagong"}
	store.Save(first)
	store.Save(second)

	got, _ := store.Current()
	if got != second {
		t.Errorf("Current = %+v, want the later session", got)
	}
}

func TestSessionStore_ClearRemovesHistoryToo(t *testing.T) {
	kv := newTestKV(t)
	sessions := NewSessionStore(kv)
	history := NewHistoryStore(kv)

	sessions.Save(model.User{Name: "Rahim", FishermanID: "F-102", Location: "Cox's Bazar"})
	if _, err := history.AppendExchange("hello", "hi"); err != nil {
		t.Fatalf("AppendExchange failed: %v", err)
	}

	if err := sessions.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	// Logout policy: both keys gone afterwards.
	if kv.Has(KeyCurrentUser) {
		t.Error("currentUser key should be removed")
	}
	if kv.Has(KeyChatHistory) {
		t.Error("chatHistory key should be removed")
	}
	if _, ok := sessions.Current(); ok {
		t.Error("no session after clear")
	}
	if got := len(history.All()); got != 0 {
		t.Errorf("history should be empty after clear, got %d", got)
	}
}

func TestSessionStore_CorruptedRecord(t *testing.T) {
	kv := newTestKV(t)
	kv.Set(KeyCurrentUser, []byte("{not json"))

	store := NewSessionStore(kv)
	if _, ok := store.Current(); ok {
		t.Error("corrupted record should read as no session")
	}
}
