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


// Package openai implements ai.ProviderClient for the OpenAI
// chat-completions API with bearer-token authentication.
package openai

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

const defaultBaseURL = "https://api.openai.com/v1"

// Client calls the OpenAI chat-completions endpoint.
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

// NewClient creates an OpenAI client from the provider config.
//
// Returns ai.ProviderClient to enforce abstraction.
func NewClient(cfg *ai.Config, opts ...Option) (ai.ProviderClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Client{
		apiKey:     cfg.OpenAIAPIKey,
		model:      cfg.OpenAIModel,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{},
		cfg:        cfg,
		logger:     slog.Default().With("component", "openai-client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionsRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type chatCompletionsResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Call sends the prompt as a single user message and returns the raw
// model text from the first choice.
func (c *Client) Call(ctx context.Context, prompt string) (string, error) {
	body := chatCompletionsRequest{
		Model:       c.model,
		Messages:    []message{{Role: "user", Content: prompt}},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxOutputTokens,
	}
	data, err := json.Marshal(body)
	if err != nil {
		return "", ai.TransportFailure(fmt.Sprintf("failed to encode OpenAI request: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(data))
	if err != nil {
		return "", ai.TransportFailure(fmt.Sprintf("failed to build OpenAI request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ai.Cancelled()
		}
		return "", ai.TransportFailure(fmt.Sprintf("OpenAI request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("openai returned non-2xx status", "status", resp.StatusCode)
		return "", statusFailure(resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", ai.TransportFailure(fmt.Sprintf("failed to read OpenAI response: %v", err))
	}

	var out chatCompletionsResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", ai.TransportFailure(fmt.Sprintf("failed to decode OpenAI response: %v", err))
	}
	if len(out.Choices) == 0 {
		return "", ai.TransportFailure("OpenAI returned no choices")
	}
	return out.Choices[0].Message.Content, nil
}

// statusFailure maps an OpenAI HTTP status to a failure category.
func statusFailure(status int) *ai.Failure {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ai.TransportFailure("invalid OpenAI API key")
	case status == http.StatusTooManyRequests:
		return ai.TransportFailure("OpenAI rate limit exceeded, try again shortly")
	case status >= 500:
		return ai.TransportFailure("OpenAI service unavailable")
	default:
		return ai.TransportFailure(fmt.Sprintf("OpenAI error (HTTP %d)", status))
	}
}
