// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sidebar renders the saved-conversation list: newest first, a
// filter box on top, and a highlight on the conversation currently open in
// the chat panel. Selecting an entry or asking for a new chat surfaces as
// a message the app model routes.
package sidebar
