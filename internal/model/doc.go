// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures shared across fishchat: the
// signed-in user, chat messages, and titled conversations.
//
// Conversations and messages serialize to the same JSON shape the storage
// layer persists under the chatHistory key, so the structs double as the
// wire format for the history blob.
package model
