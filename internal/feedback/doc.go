// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package feedback tracks per-message thumbs reactions and records
// thumbs-down reports. Reactions live in memory for the session; reports
// append to a JSONL file in the data directory so they survive restarts
// without ever leaving the machine.
package feedback
