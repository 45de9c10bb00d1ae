package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/poiesic/jobtrail/ai"
	"github.com/poiesic/jobtrail/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *ai.Config {
	return ai.ConfigFromSettings(core.Settings{
		AIProvider:   core.ProviderGemini,
		GeminiAPIKey: "test-key",
	})
}

func TestNewClient_RequiresKey(t *testing.T) {
	cfg := ai.ConfigFromSettings(core.Settings{AIProvider: core.ProviderGemini})
	_, err := NewClient(cfg)
	require.Error(t, err)
	assert.Equal(t, ai.KindConfiguration, ai.KindOf(err))
	assert.Contains(t, err.Error(), "not configured")
}

func TestCall_Success(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"hello from gemini"}]}}]}`))
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(), WithBaseURL(srv.URL))
	require.NoError(t, err)

	text, err := client.Call(context.Background(), "say hello")
	require.NoError(t, err)
	assert.Equal(t, "hello from gemini", text)

	// Wire contract: key as query parameter, prompt under contents/parts.
	assert.Equal(t, "/models/gemini-1.5-flash:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)

	contents := gotBody["contents"].([]any)
	parts := contents[0].(map[string]any)["parts"].([]any)
	assert.Equal(t, "say hello", parts[0].(map[string]any)["text"])

	gen := gotBody["generationConfig"].(map[string]any)
	assert.Contains(t, gen, "temperature")
	assert.Contains(t, gen, "topK")
	assert.Contains(t, gen, "topP")
	assert.Contains(t, gen, "maxOutputTokens")
}

func TestCall_StatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantMsg string
	}{
		{"unauthorized", http.StatusUnauthorized, "invalid Gemini API key"},
		{"forbidden", http.StatusForbidden, "invalid Gemini API key"},
		{"rate limited", http.StatusTooManyRequests, "rate limit"},
		{"server error", http.StatusInternalServerError, "service unavailable"},
		{"teapot", http.StatusTeapot, "HTTP 418"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			client, err := NewClient(testConfig(), WithBaseURL(srv.URL))
			require.NoError(t, err)

			_, err = client.Call(context.Background(), "prompt")
			require.Error(t, err)
			assert.Equal(t, ai.KindTransport, ai.KindOf(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestCall_Cancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(), WithBaseURL(srv.URL))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = client.Call(ctx, "prompt")
	require.Error(t, err)
	assert.True(t, ai.IsCancelled(err))
}

func TestCall_NoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(), WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = client.Call(context.Background(), "prompt")
	require.Error(t, err)
	assert.Equal(t, ai.KindTransport, ai.KindOf(err))
}
