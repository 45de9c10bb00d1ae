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


// Package gemini implements ai.ProviderClient for the Google Gemini
// generateContent API. The API key travels as a query parameter, per
// the Gemini wire contract.
package gemini

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

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-1.5-flash"
)

// Client calls the Gemini generateContent endpoint.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	cfg        *ai.Config
	logger     *slog.Logger
}

var _ ai.ProviderClient = (*Client)(nil)

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used by tests.
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

// NewClient creates a Gemini client from the provider config.
//
// Returns ai.ProviderClient to enforce abstraction.
func NewClient(cfg *ai.Config, opts ...Option) (ai.ProviderClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Client{
		apiKey:     cfg.GeminiAPIKey,
		model:      defaultModel,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{},
		cfg:        cfg,
		logger:     slog.Default().With("component", "gemini-client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Call sends the prompt and returns the raw model text.
func (c *Client) Call(ctx context.Context, prompt string) (string, error) {
	body := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     c.cfg.Temperature,
			TopK:            c.cfg.TopK,
			TopP:            c.cfg.TopP,
			MaxOutputTokens: c.cfg.MaxOutputTokens,
		},
	}
	data, err := json.Marshal(body)
	if err != nil {
		return "", ai.TransportFailure(fmt.Sprintf("failed to encode Gemini request: %v", err))
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", ai.TransportFailure(fmt.Sprintf("failed to build Gemini request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ai.Cancelled()
		}
		return "", ai.TransportFailure(fmt.Sprintf("Gemini request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("gemini returned non-2xx status", "status", resp.StatusCode)
		return "", statusFailure(resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", ai.TransportFailure(fmt.Sprintf("failed to read Gemini response: %v", err))
	}

	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", ai.TransportFailure(fmt.Sprintf("failed to decode Gemini response: %v", err))
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", ai.TransportFailure("Gemini returned no candidates")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

// statusFailure maps a Gemini HTTP status to a failure category rather
// than a bare status code.
func statusFailure(status int) *ai.Failure {
	switch {
	case status == http.StatusBadRequest || status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ai.TransportFailure("invalid Gemini API key")
	case status == http.StatusTooManyRequests:
		return ai.TransportFailure("Gemini rate limit exceeded, try again shortly")
	case status >= 500:
		return ai.TransportFailure("Gemini service unavailable")
	default:
		return ai.TransportFailure(fmt.Sprintf("Gemini error (HTTP %d)", status))
	}
}
