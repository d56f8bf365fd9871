// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package voice

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNotSupported reports that a speech feature has no backing command on
// this system.
var ErrNotSupported = &VoiceError{Message: "speech support is not configured"}

// VoiceError describes a speech tooling failure.
type VoiceError struct {
	// Message describes what failed.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *VoiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes the underlying cause.
func (e *VoiceError) Unwrap() error {
	return e.Cause
}

// Is matches any *VoiceError against ErrNotSupported only when it is that
// exact sentinel.
func (e *VoiceError) Is(target error) bool {
	t, ok := target.(*VoiceError)
	return ok && t.Message == e.Message
}

// =============================================================================
// RECOGNIZER
// =============================================================================

// Recognizer converts one utterance of microphone input into text.
type Recognizer interface {
	// Listen blocks while the user speaks and returns the transcript.
	// The lang tag (e.g. "en-US", "bn-BD") selects the recognition
	// language.
	Listen(ctx context.Context, lang string) (string, error)

	// Available reports whether recognition can work on this system.
	Available() bool
}

// CommandRecognizer shells out to a speech-to-text command that prints the
// transcript on stdout. The language tag is appended as the final argument.
type CommandRecognizer struct {
	command string
	runner  Runner
}

// Runner executes an external command and returns its stdout. Swappable in
// tests.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// execRunner is the production Runner.
func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// NewCommandRecognizer builds a recognizer around the given command line.
// An empty command yields a recognizer that is not Available.
func NewCommandRecognizer(command string) *CommandRecognizer {
	return &CommandRecognizer{command: command, runner: execRunner}
}

// Available reports whether a command is configured.
func (r *CommandRecognizer) Available() bool {
	return strings.TrimSpace(r.command) != ""
}

// Listen runs the recognition command and returns the trimmed transcript.
func (r *CommandRecognizer) Listen(ctx context.Context, lang string) (string, error) {
	if !r.Available() {
		return "", ErrNotSupported
	}

	parts := strings.Fields(r.command)
	args := append(parts[1:], lang)
	out, err := r.runner(ctx, parts[0], args...)
	if err != nil {
		return "", &VoiceError{Message: "speech recognition failed", Cause: err}
	}

	transcript := strings.TrimSpace(string(out))
	if transcript == "" {
		return "", &VoiceError{Message: "no speech detected"}
	}
	return transcript, nil
}
