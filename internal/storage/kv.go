// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"os"
	"path/filepath"

	"github.com/jeranaias/fishchat-tui/internal/util"
)

// Storage keys. These are the only keys fishchat writes.
const (
	// KeyCurrentUser holds the serialized session record.
	KeyCurrentUser = "currentUser"

	// KeyChatHistory holds the serialized conversation list.
	KeyChatHistory = "chatHistory"
)

// =============================================================================
// KEY-VALUE STORE
// =============================================================================

// KV is a minimal persistent key-value store: each key is one JSON file in
// Dir. Writes are atomic so a crash never leaves a half-written blob.
type KV struct {
	// Dir is the directory holding one <key>.json file per key.
	Dir string
}

// OpenKV opens (creating if needed) a store rooted at dir.
func OpenKV(dir string) (*KV, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &KV{Dir: dir}, nil
}

// OpenDefaultKV opens the store in its default location, ~/.fishchat.
func OpenDefaultKV() (*KV, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return OpenKV(filepath.Join(homeDir, ".fishchat"))
}

// Get returns the raw blob for key and whether it exists. A read error on
// an existing file is returned as-is; a missing file is simply absent.
func (s *KV) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// Set overwrites the blob for key.
func (s *KV) Set(key string, data []byte) error {
	return util.AtomicWriteFile(s.path(key), data, 0o644)
}

// Delete removes key. Removing an absent key is not an error.
func (s *KV) Delete(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Has reports whether key exists.
func (s *KV) Has(key string) bool {
	_, err := os.Stat(s.path(key))
	return err == nil
}

// path returns the file backing a key.
func (s *KV) path(key string) string {
	return filepath.Join(s.Dir, key+".json")
}
