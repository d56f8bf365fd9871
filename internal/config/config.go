// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v6"

	"github.com/jeranaias/fishchat-tui/internal/transport"
)

// =============================================================================
// CONFIGURATION TYPES
// =============================================================================

// Config holds all fishchat settings.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Voice   VoiceConfig   `toml:"voice"`
	Storage StorageConfig `toml:"storage"`
}

// ServerConfig locates the chatbot server.
type ServerConfig struct {
	// URL is the chatbot server base URL.
	URL string `toml:"url" env:"FISHCHAT_SERVER_URL"`
}

// VoiceConfig controls speech input and output.
type VoiceConfig struct {
	// Enabled turns the microphone and spoken replies on.
	Enabled bool `toml:"enabled" env:"FISHCHAT_VOICE"`

	// Language is the active recognition language tag.
	Language string `toml:"language" env:"FISHCHAT_VOICE_LANG"`

	// Languages are the tags offered by the language selector.
	Languages []string `toml:"languages"`

	// RecognizerCmd is the external speech-to-text command. It must print
	// a transcript on stdout and exit zero.
	RecognizerCmd string `toml:"recognizer_cmd" env:"FISHCHAT_RECOGNIZER_CMD"`

	// SynthCmd is the external text-to-speech command. The utterance is
	// piped to its stdin.
	SynthCmd string `toml:"synth_cmd" env:"FISHCHAT_SYNTH_CMD"`

	// VoicesCmd lists available synthesis voices, one tag per line.
	VoicesCmd string `toml:"voices_cmd" env:"FISHCHAT_VOICES_CMD"`

	// PlayerCmd plays an audio URL handed to it as its last argument.
	PlayerCmd string `toml:"player_cmd" env:"FISHCHAT_PLAYER_CMD"`
}

// StorageConfig locates the on-disk session and history store.
type StorageConfig struct {
	// Dir is the data directory. Empty means ~/.fishchat.
	Dir string `toml:"dir" env:"FISHCHAT_DIR"`
}

// =============================================================================
// LOADING
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			URL: transport.DefaultServerURL,
		},
		Voice: VoiceConfig{
			Enabled:   false,
			Language:  "en-US",
			Languages: []string{"en-US", "bn-BD"},
			PlayerCmd: "mpv --no-video",
		},
	}
}

// Path returns the config file location (~/.fishchat/config.toml).
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".fishchat", "config.toml"), nil
}

// Load reads the config file and applies environment overrides on top of the
// defaults. A missing file is not an error.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads configuration from an explicit file path.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("invalid environment override: %w", err)
	}

	if cfg.Server.URL == "" {
		cfg.Server.URL = transport.DefaultServerURL
	}
	if len(cfg.Voice.Languages) == 0 {
		cfg.Voice.Languages = []string{"en-US", "bn-BD"}
	}
	if cfg.Voice.Language == "" {
		cfg.Voice.Language = cfg.Voice.Languages[0]
	}

	return cfg, nil
}

// DataDir resolves the storage directory, defaulting to ~/.fishchat.
func (c *Config) DataDir() (string, error) {
	if c.Storage.Dir != "" {
		return c.Storage.Dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".fishchat"), nil
}
