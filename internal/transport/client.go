// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Configuration constants for the chatbot server API.
const (
	// DefaultServerURL is where the FisherMen chatbot server listens by
	// default (uvicorn's standard port).
	DefaultServerURL = "http://localhost:8000"

	// MaxResponseSize caps the reply body read. A misbehaving server must
	// not exhaust memory.
	MaxResponseSize = 1 * 1024 * 1024 // 1MB
)

// FallbackReply is the fixed bot text shown (and persisted) in place of a
// reply when the transport fails.
const FallbackReply = "⚠️ Couldn't reach the chatbot server. Please ensure it's running."

// sharedHTTPClient pools connections across all sends. No Timeout is set:
// the platform default applies and callers cancel via context.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
	},
}

// =============================================================================
// ERRORS
// =============================================================================

// TransportError describes a failed send: either an HTTP error status or an
// underlying network failure.
type TransportError struct {
	// Status is the HTTP status code, or 0 for network-level failures.
	Status int

	// Cause is the underlying error, nil for pure HTTP error statuses.
	Cause error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("chatbot server error (HTTP %d)", e.Status)
	}
	return fmt.Sprintf("chatbot server unreachable: %v", e.Cause)
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// =============================================================================
// WIRE TYPES
// =============================================================================

// chatRequest is the request body for POST /chat.
type chatRequest struct {
	Message string `json:"message"`
}

// Reply is the parsed response payload from the chatbot server.
type Reply struct {
	// Reply is the bot's answer text.
	Reply string `json:"reply"`

	// AudioURL optionally references server-generated speech for the
	// reply. May be relative to the server base URL.
	AudioURL string `json:"audio_url,omitempty"`

	// Lang is the language the reply is written in ("en", "bn", ...).
	Lang string `json:"lang,omitempty"`
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the FisherMen chatbot server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the given server base URL. An empty URL
// falls back to DefaultServerURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultServerURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: sharedHTTPClient,
	}
}

// BaseURL returns the server base URL the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Send posts one user message and returns the parsed reply. Any non-2xx
// status or network failure is a *TransportError; the call is never
// retried.
func (c *Client) Send(ctx context.Context, message string) (*Reply, error) {
	body, err := json.Marshal(chatRequest{Message: message})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain a bounded amount so the connection can be reused.
		io.CopyN(io.Discard, resp.Body, MaxResponseSize)
		return nil, &TransportError{Status: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, &TransportError{Cause: err}
	}

	var reply Reply
	if err := json.Unmarshal(data, &reply); err != nil {
		return nil, &TransportError{Cause: fmt.Errorf("malformed reply: %w", err)}
	}
	return &reply, nil
}

// ResolveAudioURL turns a possibly relative audio_url from a reply into an
// absolute URL against the server base.
func (c *Client) ResolveAudioURL(audioURL string) string {
	if audioURL == "" {
		return ""
	}
	u, err := url.Parse(audioURL)
	if err != nil {
		return ""
	}
	if u.IsAbs() {
		return audioURL
	}
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return audioURL
	}
	return base.ResolveReference(u).String()
}
