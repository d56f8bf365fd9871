// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package transport is the single network boundary of fishchat: it posts a
// user message to the chatbot server's /chat endpoint and returns the
// parsed reply payload.
//
// There is deliberately no retry, no queueing, and no explicit timeout
// (requests run under the http.Client default and the caller's context);
// a failed send surfaces a *TransportError and the UI falls back to a
// fixed apology message.
package transport
