// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small shared helpers for the fishchat TUI:
// crash-safe file writes for the storage layer and rune/width aware
// string helpers for the UI.
package util
