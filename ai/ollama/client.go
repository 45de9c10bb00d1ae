// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package ollama implements ai.ProviderClient against a local Ollama
// daemon. Unlike the cloud providers there is no credential; the
// failure mode that matters is the daemon simply not running, which is
// reported distinctly from an HTTP-level error. The package also
// exposes the tags endpoint as a model-listing side channel for
// configuration surfaces.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/poiesic/jobtrail/ai"
)

// Client calls the local Ollama generate endpoint.
type Client struct {
	model      string
	baseURL    string
	httpClient *http.Client
	cfg        *ai.Config
	logger     *slog.Logger
}

var (
	_ ai.ProviderClient = (*Client)(nil)
	_ ai.ModelLister    = (*Client)(nil)
)

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the daemon base URL. Used by tests.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates an Ollama client from the provider config.
func NewClient(cfg *ai.Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Client{
		model:      cfg.OllamaModel,
		baseURL:    strings.TrimSuffix(cfg.OllamaHost, "/"),
		httpClient: &http.Client{},
		cfg:        cfg,
		logger:     slog.Default().With("component", "ollama-client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateResponse struct {
	Response string `json:"response"`
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// Call sends the prompt to the daemon's generate endpoint with
// streaming disabled and returns the response text.
func (c *Client) Call(ctx context.Context, prompt string) (string, error) {
	body := generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Options: generateOptions{
			Temperature: c.cfg.Temperature,
			NumPredict:  c.cfg.MaxOutputTokens,
		},
	}
	data, err := json.Marshal(body)
	if err != nil {
		return "", ai.TransportFailure(fmt.Sprintf("failed to encode Ollama request: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(data))
	if err != nil {
		return "", ai.TransportFailure(fmt.Sprintf("failed to build Ollama request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ai.Cancelled()
		}
		// No listener on the port. Distinct from an HTTP error so the
		// UI can say "start Ollama" instead of "request failed".
		return "", ai.TransportFailure("Ollama daemon unreachable, is it running?")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("ollama returned non-2xx status", "status", resp.StatusCode)
		return "", statusFailure(resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", ai.TransportFailure(fmt.Sprintf("failed to read Ollama response: %v", err))
	}

	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", ai.TransportFailure(fmt.Sprintf("failed to decode Ollama response: %v", err))
	}
	return out.Response, nil
}

// ListModels returns the names of locally installed models from the
// tags endpoint. Configuration-UI side channel, not the hot path.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, ai.TransportFailure(fmt.Sprintf("failed to build Ollama request: %v", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ai.Cancelled()
		}
		return nil, ai.TransportFailure("Ollama daemon unreachable, is it running?")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusFailure(resp.StatusCode)
	}

	var out tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, ai.TransportFailure(fmt.Sprintf("failed to decode Ollama tags: %v", err))
	}
	names := make([]string, 0, len(out.Models))
	for _, m := range out.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

// IsRunning reports whether the daemon answers the tags endpoint.
func (c *Client) IsRunning(ctx context.Context) bool {
	_, err := c.ListModels(ctx)
	return err == nil
}

// statusFailure maps an Ollama HTTP status to a failure category.
// A reachable daemon that still errors usually means the model is
// missing or the request was rejected.
func statusFailure(status int) *ai.Failure {
	switch {
	case status == http.StatusNotFound:
		return ai.TransportFailure("Ollama model not found, pull it first")
	case status >= 500:
		return ai.TransportFailure("Ollama daemon error")
	default:
		return ai.TransportFailure(fmt.Sprintf("Ollama error (HTTP %d)", status))
	}
}
