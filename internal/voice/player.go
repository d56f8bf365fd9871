// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package voice

import (
	"context"
	"os/exec"
	"strings"
	"sync"
)

// Player streams server-rendered reply audio through an external player
// command. Server audio takes precedence over local synthesis: when a reply
// carries an audio URL the player handles it and the Speaker stays quiet.
type Player struct {
	command string

	mu     sync.Mutex
	cancel context.CancelFunc

	// run is swappable for tests.
	run func(ctx context.Context, name string, args ...string) error
}

// NewPlayer builds a player around the given command line. The audio URL is
// appended as the final argument.
func NewPlayer(command string) *Player {
	return &Player{
		command: command,
		run: func(ctx context.Context, name string, args ...string) error {
			return exec.CommandContext(ctx, name, args...).Run()
		},
	}
}

// Available reports whether a player command is configured.
func (p *Player) Available() bool {
	return strings.TrimSpace(p.command) != ""
}

// Play streams the given audio URL, cancelling any playback still running.
// It blocks until playback ends or the context is cancelled.
func (p *Player) Play(ctx context.Context, audioURL string) error {
	if !p.Available() {
		return ErrNotSupported
	}

	ctx, cancel := context.WithCancel(ctx)
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.cancel = cancel
	p.mu.Unlock()

	parts := strings.Fields(p.command)
	args := append(parts[1:], audioURL)
	if err := p.run(ctx, parts[0], args...); err != nil {
		if ctx.Err() == context.Canceled {
			return nil
		}
		return &VoiceError{Message: "audio playback failed", Cause: err}
	}
	return nil
}

// Stop cancels the current playback, if any.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}
