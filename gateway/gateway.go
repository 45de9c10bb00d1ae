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


package gateway

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"log/slog"

	"github.com/go-crypt/x/blake2b"
	"github.com/poiesic/jobtrail/ai"
	"github.com/poiesic/jobtrail/ai/extract"
	"github.com/poiesic/jobtrail/ai/gemini"
	"github.com/poiesic/jobtrail/ai/ollama"
	"github.com/poiesic/jobtrail/ai/openai"
	"github.com/poiesic/jobtrail/core"
)

// Gateway is the provider-agnostic AI facade. It owns one ProviderClient
// selected at construction time and exposes one operation per use case.
// Every operation returns either a fully-parsed result or a *ai.Failure;
// malformed partial data never crosses this boundary.
type Gateway struct {
	provider core.Provider
	client   ai.ProviderClient
	logger   *slog.Logger
}

// New builds a Gateway for the provider selected in cfg. It fails fast
// with a configuration Failure when no provider is selected or the
// selected provider's credential is missing; no network call is ever
// attempted for an unconfigured gateway.
func New(cfg *ai.Config) (*Gateway, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		client ai.ProviderClient
		err    error
	)
	switch cfg.Provider {
	case core.ProviderGemini:
		client, err = gemini.NewClient(cfg)
	case core.ProviderOpenAI:
		client, err = openai.NewClient(cfg)
	case core.ProviderOllama:
		client, err = ollama.NewClient(cfg)
	default:
		return nil, ai.NotConfigured(cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return NewWithClient(cfg.Provider, client), nil
}

// NewWithClient builds a Gateway around an existing client. Used by
// tests and by callers that construct provider clients themselves.
func NewWithClient(provider core.Provider, client ai.ProviderClient) *Gateway {
	return &Gateway{
		provider: provider,
		client:   client,
		logger:   slog.Default().With("component", "ai-gateway", "provider", string(provider)),
	}
}

// Provider returns the provider this gateway was built for.
func (g *Gateway) Provider() core.Provider {
	return g.provider
}

// ParseResume turns raw resume text into a structured Resume.
// The raw source text and parse timestamp are filled in by the caller
// that persists the result.
func (g *Gateway) ParseResume(ctx context.Context, resumeText string) (*core.Resume, error) {
	var resume core.Resume
	if err := g.callStructured(ctx, buildResumePrompt(resumeText), resumeSchema, &resume); err != nil {
		return nil, err
	}
	return &resume, nil
}

// ParseJobPosting turns raw job-description text into a structured posting.
func (g *Gateway) ParseJobPosting(ctx context.Context, jobText string) (*core.ParsedJobPosting, error) {
	var posting core.ParsedJobPosting
	if err := g.callStructured(ctx, buildJobPrompt(jobText), postingSchema, &posting); err != nil {
		return nil, err
	}
	return &posting, nil
}

// GapAnalysis compares the resume against one posting's requirements
// and returns a match score with strengths and gaps.
func (g *Gateway) GapAnalysis(ctx context.Context, resume *core.Resume, posting *core.ParsedJobPosting) (*core.GapAnalysis, error) {
	var gap core.GapAnalysis
	if err := g.callStructured(ctx, buildGapPrompt(resume, posting), gapSchema, &gap); err != nil {
		return nil, err
	}
	return &gap, nil
}

// TailoredSummary generates a short resume summary aimed at one posting.
func (g *Gateway) TailoredSummary(ctx context.Context, resume *core.Resume, posting *core.ParsedJobPosting) (string, error) {
	var out struct {
		Summary string `json:"summary"`
	}
	if err := g.callStructured(ctx, buildSummaryPrompt(resume, posting), summarySchema, &out); err != nil {
		return "", err
	}
	return out.Summary, nil
}

// ResumeFeedback critiques the resume in the requested persona. The
// mode tag is stamped onto the result here so downstream consumers
// never have to track which persona produced a given critique.
func (g *Gateway) ResumeFeedback(ctx context.Context, resume *core.Resume, mode core.FeedbackMode) (*core.ResumeFeedback, error) {
	var feedback core.ResumeFeedback
	if err := g.callStructured(ctx, buildFeedbackPrompt(resume, mode), feedbackSchema, &feedback); err != nil {
		return nil, err
	}
	feedback.Mode = mode
	return &feedback, nil
}

// Chat sends a free-form question with light document context and
// returns a prose reply. The model is asked for plain text; the
// extractor cleans up the cases where it returns JSON anyway.
func (g *Gateway) Chat(ctx context.Context, message string, doc *core.Document) (string, error) {
	text, err := g.call(ctx, buildChatPrompt(message, doc))
	if err != nil {
		return "", err
	}
	return extract.PlainText(text), nil
}

// call dispatches one prompt to the configured client.
func (g *Gateway) call(ctx context.Context, prompt string) (string, error) {
	g.logger.Debug("dispatching AI request",
		"request", requestFingerprint(prompt),
		"prompt_len", len(prompt))

	text, err := g.client.Call(ctx, prompt)
	if err != nil {
		if ai.IsCancelled(err) {
			return "", ai.Cancelled()
		}
		return "", err
	}
	return text, nil
}

// callStructured dispatches a prompt, recovers the JSON payload from
// the raw response, validates it against the operation's schema, and
// unmarshals it into out. Any shape problem after the full recovery
// chain is an extraction Failure.
func (g *Gateway) callStructured(ctx context.Context, prompt, schema string, out any) error {
	text, err := g.call(ctx, prompt)
	if err != nil {
		return err
	}

	payload, ok := extract.Structured(text)
	if !ok {
		g.logger.Warn("could not extract JSON from model response",
			"request", requestFingerprint(prompt),
			"response_len", len(text))
		return ai.ExtractionFailure()
	}

	if err := validatePayload(schema, payload); err != nil {
		g.logger.Warn("model response failed schema validation",
			"request", requestFingerprint(prompt), "err", err)
		return ai.ExtractionFailure()
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return ai.ExtractionFailure()
	}
	return nil
}

// requestFingerprint returns a short content hash of the prompt for
// correlating log lines across the dispatch path.
func requestFingerprint(prompt string) string {
	h, _ := blake2b.New(8, nil)
	h.Write([]byte(prompt))
	return hex.EncodeToString(h.Sum(nil))
}
