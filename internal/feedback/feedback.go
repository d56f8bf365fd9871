// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package feedback

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// REACTIONS
// =============================================================================

// Reaction is a thumbs state on a bot message.
type Reaction int

// Reaction states. At most one is active per message; setting a new one
// replaces the old.
const (
	None Reaction = iota
	Up
	Down
)

// String returns the glyph shown next to a reacted message.
func (r Reaction) String() string {
	switch r {
	case Up:
		return "👍"
	case Down:
		return "👎"
	default:
		return ""
	}
}

// Reactions tracks the active reaction per message ID.
type Reactions struct {
	mu     sync.Mutex
	active map[string]Reaction
}

// NewReactions creates an empty reaction tracker.
func NewReactions() *Reactions {
	return &Reactions{active: make(map[string]Reaction)}
}

// Set records a reaction on a message, replacing any previous one. Setting
// the already-active reaction clears it (toggle off).
func (r *Reactions) Set(messageID string, reaction Reaction) Reaction {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active[messageID] == reaction {
		delete(r.active, messageID)
		return None
	}
	r.active[messageID] = reaction
	return reaction
}

// Get returns the active reaction on a message.
func (r *Reactions) Get(messageID string) Reaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active[messageID]
}

// =============================================================================
// REPORTS
// =============================================================================

// DefaultReason stands in when the user submits the thumbs-down form
// without picking a reason.
const DefaultReason = "not specified"

// Reasons are the options offered by the thumbs-down form.
var Reasons = []string{
	"Incorrect information",
	"Not relevant to my question",
	"Hard to understand",
	"Offensive or inappropriate",
	"Other",
}

// Report is one thumbs-down submission.
type Report struct {
	// ID uniquely identifies the report.
	ID string `json:"id"`

	// Time is when the report was filed.
	Time time.Time `json:"time"`

	// Message is the bot reply text being reported.
	Message string `json:"message"`

	// Reason is the selected reason, or DefaultReason.
	Reason string `json:"reason"`

	// Comment is the optional free-text detail.
	Comment string `json:"comment,omitempty"`
}

// Recorder appends reports to feedback.jsonl in the data directory.
type Recorder struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// NewRecorder creates a recorder writing under the given data directory.
func NewRecorder(dir string) (*Recorder, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Recorder{
		path: filepath.Join(dir, "feedback.jsonl"),
		now:  time.Now,
	}, nil
}

// Record files one report. Blank reasons become DefaultReason.
func (rec *Recorder) Record(message, reason, comment string) error {
	if strings.TrimSpace(reason) == "" {
		reason = DefaultReason
	}

	report := Report{
		ID:      uuid.NewString(),
		Time:    rec.now(),
		Message: message,
		Reason:  reason,
		Comment: strings.TrimSpace(comment),
	}

	line, err := json.Marshal(report)
	if err != nil {
		return err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	f, err := os.OpenFile(rec.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(line, '\n'))
	return err
}

// All reads back every recorded report, skipping malformed lines.
func (rec *Recorder) All() ([]Report, error) {
	rec.mu.Lock()
	defer rec.mu.Unlock()

	data, err := os.ReadFile(rec.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var reports []Report
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var r Report
		if err := json.Unmarshal([]byte(line), &r); err != nil {
			continue
		}
		reports = append(reports, r)
	}
	return reports, nil
}
