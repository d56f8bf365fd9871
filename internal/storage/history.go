// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/jeranaias/fishchat-tui/internal/model"
)

// =============================================================================
// HISTORY STORE
// =============================================================================

// HistoryStore wraps the persisted ordered conversation list.
//
// The conversation at index 0 of the persisted list is the "current" one:
// AppendExchange always targets it, and CreateConversation inserts there.
// Display order is creation-timestamp descending, which is NOT the same
// thing once older conversations receive appends; selecting a sidebar entry
// therefore moves it to the front so the two orders agree again.
type HistoryStore struct {
	mu sync.Mutex
	kv *KV

	// lastStamp keeps creation timestamps strictly increasing even when
	// conversations are created within the same millisecond.
	lastStamp int64

	// now is swappable for tests.
	now func() time.Time
}

// NewHistoryStore creates a history store over the given key-value store.
func NewHistoryStore(kv *KV) *HistoryStore {
	return &HistoryStore{kv: kv, now: time.Now}
}

// =============================================================================
// READ OPERATIONS
// =============================================================================

// All returns the full conversation list in persisted order, or an empty
// list when nothing is stored. Malformed blobs fail soft: they read as
// empty and the next write resets them.
func (h *HistoryStore) All() []*model.Conversation {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.load()
}

// ByRecency returns the conversations sorted by creation timestamp
// descending (newest first). This is the sidebar's display order.
func (h *HistoryStore) ByRecency() []*model.Conversation {
	list := h.All()
	sorted := make([]*model.Conversation, len(list))
	copy(sorted, list)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp > sorted[j].Timestamp
	})
	return sorted
}

// Find returns the conversation with the given id, or nil.
func (h *HistoryStore) Find(id string) *model.Conversation {
	for _, conv := range h.All() {
		if conv.ID == id {
			return conv
		}
	}
	return nil
}

// Search returns conversations whose title or any message content contains
// term case-insensitively, in recency order. The empty term returns all.
func (h *HistoryStore) Search(term string) []*model.Conversation {
	var results []*model.Conversation
	for _, conv := range h.ByRecency() {
		if conv.Matches(term) {
			results = append(results, conv)
		}
	}
	return results
}

// =============================================================================
// WRITE OPERATIONS
// =============================================================================

// CreateConversation builds a new empty conversation with a fresh id and a
// monotonically assigned creation timestamp, inserts it at the front of the
// list, persists, and returns it.
func (h *HistoryStore) CreateConversation() (*model.Conversation, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conv := model.NewConversationAt(h.nextStamp())
	list := append([]*model.Conversation{conv}, h.load()...)
	if err := h.persist(list); err != nil {
		return nil, err
	}
	return conv, nil
}

// AppendExchange appends a user message and the bot's reply to the current
// conversation (index 0), creating one first when the list is empty. The
// title rule fires inside the conversation when this is its first exchange.
// Returns the mutated conversation.
func (h *HistoryStore) AppendExchange(userText, botText string) (*model.Conversation, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	list := h.load()
	if len(list) == 0 {
		list = []*model.Conversation{model.NewConversationAt(h.nextStamp())}
	}

	current := list[0]
	current.AppendExchange(userText, botText)

	if err := h.persist(list); err != nil {
		return nil, err
	}
	return current, nil
}

// MakeCurrent moves the conversation with the given id to the front of the
// persisted list so subsequent appends target it. Selecting a conversation
// in the sidebar goes through here; unknown ids are a no-op.
func (h *HistoryStore) MakeCurrent(id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	list := h.load()
	for i, conv := range list {
		if conv.ID == id {
			if i == 0 {
				return nil
			}
			list = append(list[:i], list[i+1:]...)
			list = append([]*model.Conversation{conv}, list...)
			return h.persist(list)
		}
	}
	return nil
}

// Clear removes the whole history blob.
func (h *HistoryStore) Clear() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.kv.Delete(KeyChatHistory)
}

// =============================================================================
// INTERNAL
// =============================================================================

// load reads and decodes the history blob. Any failure reads as empty.
func (h *HistoryStore) load() []*model.Conversation {
	data, ok, err := h.kv.Get(KeyChatHistory)
	if err != nil || !ok {
		return []*model.Conversation{}
	}

	var list []*model.Conversation
	if err := json.Unmarshal(data, &list); err != nil {
		return []*model.Conversation{}
	}
	for _, conv := range list {
		conv.EnsureMessageIDs()
	}
	return list
}

// persist serializes the entire list back to storage.
func (h *HistoryStore) persist(list []*model.Conversation) error {
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return h.kv.Set(KeyChatHistory, data)
}

// nextStamp returns the current Unix-millisecond time, bumped when needed
// so consecutive calls never repeat.
func (h *HistoryStore) nextStamp() int64 {
	stamp := h.now().UnixMilli()
	if stamp <= h.lastStamp {
		stamp = h.lastStamp + 1
	}
	h.lastStamp = stamp
	return stamp
}
