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


package ai

import (
	"strings"

	"github.com/poiesic/jobtrail/core"
)

// Generation defaults shared by all providers. Matching the provider
// wire contracts, each client maps these onto its own request fields.
const (
	DefaultTemperature     = 0.7
	DefaultTopK            = 40
	DefaultTopP            = 0.95
	DefaultMaxOutputTokens = 8192
	DefaultOllamaHost      = "http://localhost:11434"
	DefaultOpenAIModel     = "gpt-4o-mini"
)

// Config selects exactly one provider and carries its credentials and
// generation parameters. It is derived from core.Settings; the gateway
// never reads Settings directly.
type Config struct {
	Provider core.Provider

	// Cloud credentials. Only the selected provider's key is required.
	GeminiAPIKey string
	OpenAIAPIKey string
	OpenAIModel  string

	// Local daemon settings.
	OllamaHost  string
	OllamaModel string

	Temperature     float64
	TopK            int
	TopP            float64
	MaxOutputTokens int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithOllamaHost overrides the local daemon base URL.
func WithOllamaHost(host string) ConfigOption {
	return func(c *Config) {
		c.OllamaHost = host
	}
}

// WithTemperature overrides the sampling temperature.
func WithTemperature(t float64) ConfigOption {
	return func(c *Config) {
		c.Temperature = t
	}
}

// WithMaxOutputTokens overrides the response token budget.
func WithMaxOutputTokens(n int) ConfigOption {
	return func(c *Config) {
		c.MaxOutputTokens = n
	}
}

// ConfigFromSettings derives a provider Config from user settings and
// applies the provided options.
func ConfigFromSettings(s core.Settings, opts ...ConfigOption) *Config {
	cfg := &Config{
		Provider:        s.AIProvider,
		GeminiAPIKey:    s.GeminiAPIKey,
		OpenAIAPIKey:    s.OpenAIAPIKey,
		OpenAIModel:     s.OpenAIModel,
		OllamaHost:      DefaultOllamaHost,
		OllamaModel:     s.OllamaModel,
		Temperature:     DefaultTemperature,
		TopK:            DefaultTopK,
		TopP:            DefaultTopP,
		MaxOutputTokens: DefaultMaxOutputTokens,
	}
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = DefaultOpenAIModel
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Validate fails fast when no provider is selected or the selected
// provider's required credential is absent. There is never a silent
// default provider. The returned error is a configuration Failure.
func (c *Config) Validate() error {
	switch c.Provider {
	case core.ProviderGemini:
		if strings.TrimSpace(c.GeminiAPIKey) == "" {
			return NotConfigured(core.ProviderGemini)
		}
	case core.ProviderOpenAI:
		if strings.TrimSpace(c.OpenAIAPIKey) == "" {
			return NotConfigured(core.ProviderOpenAI)
		}
	case core.ProviderOllama:
		if strings.TrimSpace(c.OllamaModel) == "" {
			return NotConfigured(core.ProviderOllama)
		}
	default:
		return NotConfigured(core.ProviderNone)
	}
	return nil
}
