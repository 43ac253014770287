package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infraconfig "github.com/shopadmin/backend/internal/infrastructure/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(&infraconfig.OllamaConfig{
		BaseURL:      server.URL,
		DefaultModel: "llama3",
		Timeout:      5 * time.Second,
	})
}

func TestClient_Generate(t *testing.T) {
	var captured generateRequest

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		_ = json.NewEncoder(w).Encode(generateResponse{
			Model:    captured.Model,
			Response: "A hand stitched leather wallet.",
			Done:     true,
		})
	})

	text, err := client.Generate(context.Background(), "mistral", "Describe a leather wallet")
	require.NoError(t, err)
	assert.Equal(t, "A hand stitched leather wallet.", text)
	assert.Equal(t, "mistral", captured.Model)
	assert.False(t, captured.Stream)
}

func TestClient_Generate_DefaultModel(t *testing.T) {
	var captured generateRequest

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_ = json.NewEncoder(w).Encode(generateResponse{Response: "ok", Done: true})
	})

	_, err := client.Generate(context.Background(), "", "prompt")
	require.NoError(t, err)
	assert.Equal(t, "llama3", captured.Model)
}

func TestClient_Generate_Errors(t *testing.T) {
	t.Run("empty prompt", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		})

		_, err := client.Generate(context.Background(), "llama3", "  ")
		assert.ErrorIs(t, err, ErrGenerateFailed)
	})

	t.Run("backend error body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(generateResponse{Error: "model 'missing' not found"})
		})

		_, err := client.Generate(context.Background(), "missing", "prompt")
		require.ErrorIs(t, err, ErrGenerateFailed)
		assert.Contains(t, err.Error(), "model 'missing' not found")
	})

	t.Run("unreachable backend", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		server.Close()

		client := NewClient(&infraconfig.OllamaConfig{BaseURL: server.URL, Timeout: time.Second})
		_, err := client.Generate(context.Background(), "llama3", "prompt")
		assert.ErrorIs(t, err, ErrUnavailable)
	})
}
