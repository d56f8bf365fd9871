// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package voice

import (
	"context"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/language"
)

// Catalog lists the synthesis voices installed on the system. Some
// platforms populate their voice list asynchronously, so the catalog may be
// empty right after startup and fill in shortly after.
type Catalog interface {
	// Voices returns the installed voice language tags ("en-US", ...).
	Voices(ctx context.Context) ([]string, error)
}

// CommandCatalog reads voices from a command that prints one tag per line.
type CommandCatalog struct {
	command string
	runner  Runner
}

// NewCommandCatalog builds a catalog around the given command line.
func NewCommandCatalog(command string) *CommandCatalog {
	return &CommandCatalog{command: command, runner: execRunner}
}

// Voices runs the catalog command and parses its output.
func (c *CommandCatalog) Voices(ctx context.Context) ([]string, error) {
	if strings.TrimSpace(c.command) == "" {
		return nil, ErrNotSupported
	}
	parts := strings.Fields(c.command)
	out, err := c.runner(ctx, parts[0], parts[1:]...)
	if err != nil {
		return nil, &VoiceError{Message: "cannot list voices", Cause: err}
	}

	var voices []string
	for _, line := range strings.Split(string(out), "\n") {
		if tag := strings.TrimSpace(line); tag != "" {
			voices = append(voices, tag)
		}
	}
	return voices, nil
}

// =============================================================================
// SPEAKER
// =============================================================================

// catalogRetry controls the wait for an asynchronously populated catalog.
const (
	catalogAttempts = 5
	catalogDelay    = 200 * time.Millisecond
)

// Speaker reads reply text aloud. At most one utterance plays at a time:
// starting a new one cancels whatever is still speaking.
type Speaker struct {
	synthCmd string
	catalog  Catalog

	mu     sync.Mutex
	cancel context.CancelFunc

	// startCmd is swappable for tests.
	startCmd func(ctx context.Context, stdin io.Reader, name string, args ...string) error
}

// NewSpeaker builds a speaker around a synthesis command line and a voice
// catalog. An empty command yields a speaker that is not Available.
func NewSpeaker(synthCmd string, catalog Catalog) *Speaker {
	return &Speaker{
		synthCmd: synthCmd,
		catalog:  catalog,
		startCmd: runWithStdin,
	}
}

// runWithStdin runs a command feeding it the given stdin, blocking until it
// exits.
func runWithStdin(ctx context.Context, stdin io.Reader, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	return cmd.Run()
}

// Available reports whether synthesis is configured.
func (s *Speaker) Available() bool {
	return strings.TrimSpace(s.synthCmd) != ""
}

// Speak reads text aloud in the best-matching installed voice for lang,
// cancelling any utterance still in flight. It blocks until speech ends or
// the context is cancelled.
func (s *Speaker) Speak(ctx context.Context, text, lang string) error {
	if !s.Available() {
		return ErrNotSupported
	}

	voice, err := s.pickVoice(ctx, lang)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel() // stop the previous utterance
	}
	s.cancel = cancel
	s.mu.Unlock()

	parts := strings.Fields(s.synthCmd)
	args := append(parts[1:], voice)
	if err := s.startCmd(ctx, strings.NewReader(text), parts[0], args...); err != nil {
		if ctx.Err() == context.Canceled {
			return nil // superseded by a newer utterance
		}
		return &VoiceError{Message: "speech synthesis failed", Cause: err}
	}
	return nil
}

// Stop cancels the current utterance, if any.
func (s *Speaker) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// pickVoice waits for the catalog to populate and returns the installed
// voice whose base language matches lang, falling back to the first voice.
func (s *Speaker) pickVoice(ctx context.Context, lang string) (string, error) {
	var voices []string
	var err error
	for attempt := 0; attempt < catalogAttempts; attempt++ {
		voices, err = s.catalog.Voices(ctx)
		if err != nil {
			return "", err
		}
		if len(voices) > 0 {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(catalogDelay):
		}
	}
	if len(voices) == 0 {
		return "", &VoiceError{Message: "no synthesis voices installed"}
	}

	want, err := language.Parse(lang)
	if err != nil {
		return voices[0], nil
	}
	wantBase, _ := want.Base()

	for _, v := range voices {
		tag, err := language.Parse(v)
		if err != nil {
			continue
		}
		if base, _ := tag.Base(); base == wantBase {
			return v, nil
		}
	}
	return voices[0], nil
}
