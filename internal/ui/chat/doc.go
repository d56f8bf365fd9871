// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat renders the conversation panel: a scrollback viewport of
// message bubbles, the input line with microphone affordance, a typing
// indicator while a reply is pending, and the thumbs-down feedback
// overlay. The panel never talks to the network itself; it emits SendMsg
// and the app model runs the exchange.
package chat
