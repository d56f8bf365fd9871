// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package voice adapts external speech tools to the chat loop: a Recognizer
// turns microphone input into a transcript, a Speaker reads bot replies
// aloud through a synthesis command, and a Player streams server-rendered
// audio. Everything here degrades gracefully: when a command is not
// configured the feature reports ErrNotSupported and the UI simply hides
// the affordance.
package voice
