// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package feedback

import (
	"testing"
	"time"
)

// =============================================================================
// REACTION TESTS
// =============================================================================

func TestReactions_SetAndGet(t *testing.T) {
	r := NewReactions()

	if r.Get("m1") != None {
		t.Error("unreacted message should read None")
	}

	r.Set("m1", Up)
	if r.Get("m1") != Up {
		t.Error("expected Up after Set")
	}

	// A new reaction replaces the old one.
	r.Set("m1", Down)
	if r.Get("m1") != Down {
		t.Error("Down should replace Up")
	}
}

func TestReactions_ToggleOff(t *testing.T) {
	r := NewReactions()

	r.Set("m1", Up)
	if got := r.Set("m1", Up); got != None {
		t.Errorf("re-setting the active reaction should clear it, got %v", got)
	}
	if r.Get("m1") != None {
		t.Error("reaction should be cleared")
	}
}

func TestReactions_PerMessage(t *testing.T) {
	r := NewReactions()

	r.Set("m1", Up)
	r.Set("m2", Down)

	if r.Get("m1") != Up || r.Get("m2") != Down {
		t.Error("reactions must be tracked per message")
	}
}

func TestReaction_String(t *testing.T) {
	if Up.String() != "👍" || Down.String() != "👎" || None.String() != "" {
		t.Error("unexpected reaction glyphs")
	}
}

// =============================================================================
// RECORDER TESTS
// =============================================================================

func TestRecorder_RecordAndReadBack(t *testing.T) {
	rec, err := NewRecorder(t.TempDir())
	if err != nil {
		t.Fatalf("NewRecorder failed: %v", err)
	}
	frozen := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rec.now = func() time.Time { return frozen }

	if err := rec.Record("Try the northern banks.", "Incorrect information", "cod moved south"); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := rec.Record("hello", "", "  "); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	reports, err := rec.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("All() = %d reports, want 2", len(reports))
	}
	if reports[0].Reason != "Incorrect information" || reports[0].Comment != "cod moved south" {
		t.Errorf("first report = %+v", reports[0])
	}
	if reports[0].ID == "" || reports[0].ID == reports[1].ID {
		t.Error("reports should carry unique IDs")
	}
	if reports[1].Reason != DefaultReason {
		t.Errorf("blank reason should become %q, got %q", DefaultReason, reports[1].Reason)
	}
	if reports[1].Comment != "" {
		t.Errorf("whitespace comment should be dropped, got %q", reports[1].Comment)
	}
}

func TestRecorder_EmptyFile(t *testing.T) {
	rec, err := NewRecorder(t.TempDir())
	if err != nil {
		t.Fatalf("NewRecorder failed: %v", err)
	}

	reports, err := rec.All()
	if err != nil {
		t.Fatalf("All on fresh recorder failed: %v", err)
	}
	if len(reports) != 0 {
		t.Errorf("fresh recorder should have no reports, got %d", len(reports))
	}
}
