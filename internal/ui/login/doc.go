// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package login renders the sign-in and sign-up forms. Neither form talks
// to a server: submitting simply records the entered identity as the local
// session, the way the chat panel expects it. Validation alerts block
// submission but never clear what the user typed.
package login
