// Package ollama is a minimal client for the Ollama generation API.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	infraconfig "github.com/shopadmin/backend/internal/infrastructure/config"
)

const maxResponseSize = 10 << 20

var (
	// ErrUnavailable is returned when the backend cannot be reached
	ErrUnavailable = errors.New("generation backend is unreachable")
	// ErrGenerateFailed is returned when the backend rejects a request
	ErrGenerateFailed = errors.New("generation request failed")
)

// Client calls a single Ollama instance.
// Generation is slow, the HTTP client timeout is configured accordingly.
type Client struct {
	baseURL      string
	defaultModel string
	httpClient   *http.Client
}

// NewClient creates a Client from configuration
func NewClient(cfg *infraconfig.OllamaConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 5 * time.Minute
	}

	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		defaultModel: cfg.DefaultModel,
		httpClient:   &http.Client{Timeout: timeout},
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error"`
}

// Generate runs a non-streaming completion and returns the full response text.
// An empty model falls back to the configured default.
func (c *Client) Generate(ctx context.Context, model, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("%w: prompt is empty", ErrGenerateFailed)
	}
	if model == "" {
		model = c.defaultModel
	}

	payload, err := json.Marshal(generateRequest{Model: model, Prompt: prompt, Stream: false})
	if err != nil {
		return "", fmt.Errorf("failed to marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("failed to read generate response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var parsed generateResponse
		if json.Unmarshal(body, &parsed) == nil && parsed.Error != "" {
			return "", fmt.Errorf("%w: %s", ErrGenerateFailed, parsed.Error)
		}
		return "", fmt.Errorf("%w: status %d", ErrGenerateFailed, resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: malformed response: %v", ErrGenerateFailed, err)
	}

	return parsed.Response, nil
}

// DefaultModel returns the model used when requests omit one
func (c *Client) DefaultModel() string {
	return c.defaultModel
}
