// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads fishchat settings from ~/.fishchat/config.toml with
// environment variable overrides (FISHCHAT_*). Missing files are fine: the
// defaults describe a chatbot server on localhost with voice features off.
package config
