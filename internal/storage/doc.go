// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists fishchat state as JSON blobs in a small on-disk
// key-value store (one file per key, default ~/.fishchat).
//
// Two keys exist: "currentUser" holds the active session record and
// "chatHistory" holds the whole ordered conversation list. Every history
// mutation is a whole-collection read-modify-write; there is no partial
// update and no cross-process coordination, so concurrent instances follow
// last-writer-wins. Malformed blobs are treated as empty state rather than
// errors and are reset by the next write.
package storage
