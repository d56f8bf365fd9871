// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Send(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/chat", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Where can I find cod?", req["message"])

		json.NewEncoder(w).Encode(Reply{
			Reply:    "Try the northern banks.",
			AudioURL: "/tts_audio/abc123.mp3",
			Lang:     "en",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	reply, err := client.Send(context.Background(), "Where can I find cod?")
	require.NoError(t, err)
	assert.Equal(t, "Try the northern banks.", reply.Reply)
	assert.Equal(t, "/tts_audio/abc123.mp3", reply.AudioURL)
	assert.Equal(t, "en", reply.Lang)
}

func TestClient_SendServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Send(context.Background(), "hello")
	require.Error(t, err)

	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, http.StatusInternalServerError, terr.Status)
}

func TestClient_SendNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	client := NewClient(srv.URL)
	_, err := client.Send(context.Background(), "hello")
	require.Error(t, err)

	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.Zero(t, terr.Status)
	assert.Error(t, terr.Cause)
}

func TestClient_SendMalformedReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("][ not json"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Send(context.Background(), "hello")

	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.Contains(t, terr.Error(), "unreachable")
}

func TestClient_DefaultURL(t *testing.T) {
	client := NewClient("")
	assert.Equal(t, DefaultServerURL, client.BaseURL())

	trimmed := NewClient("http://example.com/")
	assert.Equal(t, "http://example.com", trimmed.BaseURL())
}

func TestClient_ResolveAudioURL(t *testing.T) {
	client := NewClient("http://localhost:8000")

	assert.Equal(t, "http://localhost:8000/tts_audio/x.mp3",
		client.ResolveAudioURL("/tts_audio/x.mp3"))
	assert.Equal(t, "https://cdn.example.com/x.mp3",
		client.ResolveAudioURL("https://cdn.example.com/x.mp3"))
	assert.Empty(t, client.ResolveAudioURL(""))
}
