// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Truncate shortens s to at most maxLen runes, replacing the tail with "..."
// when it does not fit. Rune-based so multi-byte text is never split.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// Ellipsize keeps the first maxLen runes of s and appends "..." when the
// original is longer. Unlike Truncate the ellipsis does not count against
// the budget; this mirrors how conversation titles are derived from the
// first user message.
func Ellipsize(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}

// PadWidth pads s with spaces to the given display width, truncating with an
// ellipsis when it is too wide. Uses terminal cell width, not rune count, so
// wide characters line up in the sidebar.
func PadWidth(s string, width int) string {
	s = CollapseSpace(s)
	w := runewidth.StringWidth(s)
	if w > width {
		return runewidth.Truncate(s, width, "...")
	}
	return s + strings.Repeat(" ", width-w)
}

// CollapseSpace replaces newlines with spaces so single-line UI elements
// never break their row.
func CollapseSpace(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	return strings.ReplaceAll(s, "\n", " ")
}
