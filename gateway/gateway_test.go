package gateway

import (
	"context"
	"testing"

	"github.com/poiesic/jobtrail/ai"
	"github.com/poiesic/jobtrail/ai/mock"
	"github.com/poiesic/jobtrail/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NoProviderConfigured(t *testing.T) {
	cfg := ai.ConfigFromSettings(core.Settings{})
	_, err := New(cfg)
	require.Error(t, err)
	assert.Equal(t, ai.KindConfiguration, ai.KindOf(err))
	assert.Contains(t, err.Error(), "not configured")
}

func TestNew_MissingCredential(t *testing.T) {
	cfg := ai.ConfigFromSettings(core.Settings{AIProvider: core.ProviderGemini})
	_, err := New(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gemini not configured")
}

func TestParseResume_FencedResponse(t *testing.T) {
	client := mock.NewMockClient()
	client.Response = "```json\n{\"name\":\"Ada Lovelace\",\"skills\":[\"Go\",\"SQL\"],\"experience\":[{\"company\":\"Analytical Engines\",\"title\":\"Engineer\"}]}\n```"

	g := NewWithClient(core.ProviderGemini, client)
	resume, err := g.ParseResume(context.Background(), "resume text here")
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", resume.Name)
	assert.Equal(t, []string{"Go", "SQL"}, resume.Skills)
	require.Len(t, resume.Experience, 1)
	assert.Equal(t, "Analytical Engines", resume.Experience[0].Company)

	assert.Equal(t, 1, client.CallCount())
	assert.Contains(t, client.LastPrompt(), "resume text here")
}

func TestParseJobPosting_WithTrailingProse(t *testing.T) {
	client := mock.NewMockClient()
	client.Response = "Here is the extraction:\n{\"role\":\"Backend Engineer\",\"company\":\"Acme\",\"requiredSkills\":[\"Go\"],\"workType\":\"remote\"}\nLet me know if you need more."

	g := NewWithClient(core.ProviderOpenAI, client)
	posting, err := g.ParseJobPosting(context.Background(), "jd text")
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", posting.Role)
	assert.Equal(t, core.WorkTypeRemote, posting.WorkType)
}

func TestGapAnalysis_Success(t *testing.T) {
	client := mock.NewMockClient()
	client.Response = "```json\n{\"matchScore\":87,\"strengths\":[\"Go experience\"],\"gaps\":[\"No Kubernetes\"],\"summary\":\"Strong fit\"}\n```\nHope this helps!"

	g := NewWithClient(core.ProviderOllama, client)
	gap, err := g.GapAnalysis(context.Background(),
		&core.Resume{Skills: []string{"Go"}},
		&core.ParsedJobPosting{Role: "Backend Engineer", RequiredSkills: []string{"Go", "Kubernetes"}})
	require.NoError(t, err)

	assert.Equal(t, 87, gap.MatchScore)
	assert.Equal(t, []string{"Go experience"}, gap.Strengths)
	assert.Equal(t, []string{"No Kubernetes"}, gap.Gaps)
}

func TestCallStructured_UnparseableResponse(t *testing.T) {
	client := mock.NewMockClient()
	client.Response = "I'm sorry, I can't help with that."

	g := NewWithClient(core.ProviderGemini, client)
	_, err := g.ParseResume(context.Background(), "text")
	require.Error(t, err)
	assert.Equal(t, ai.KindExtraction, ai.KindOf(err))
	assert.Equal(t, "Failed to parse AI response as JSON", err.Error())
}

func TestCallStructured_SchemaViolation(t *testing.T) {
	client := mock.NewMockClient()
	// matchScore must be an integer; a string payload parses as JSON
	// but must still be rejected rather than half-accepted.
	client.Response = `{"matchScore":"eighty-seven","strengths":[],"gaps":[]}`

	g := NewWithClient(core.ProviderGemini, client)
	_, err := g.GapAnalysis(context.Background(), &core.Resume{}, &core.ParsedJobPosting{})
	require.Error(t, err)
	assert.Equal(t, ai.KindExtraction, ai.KindOf(err))
}

func TestResumeFeedback_StampsMode(t *testing.T) {
	client := mock.NewMockClient()
	client.Response = `{"overallScore":72,"improvements":["Quantify achievements"],"strengths":["Clear layout"]}`

	g := NewWithClient(core.ProviderOpenAI, client)
	fb, err := g.ResumeFeedback(context.Background(), &core.Resume{Skills: []string{"Go"}}, core.FeedbackModeRecruiter)
	require.NoError(t, err)

	// The mode tag comes from the request, not the model.
	assert.Equal(t, core.FeedbackModeRecruiter, fb.Mode)
	assert.Equal(t, 72, fb.OverallScore)
	assert.Contains(t, client.LastPrompt(), "recruiter")
}

func TestChat_PlainProse(t *testing.T) {
	client := mock.NewMockClient()
	client.Response = "Reach out to the hiring manager directly."

	g := NewWithClient(core.ProviderGemini, client)
	reply, err := g.Chat(context.Background(), "how should I follow up?", nil)
	require.NoError(t, err)
	assert.Equal(t, "Reach out to the hiring manager directly.", reply)
}

func TestChat_RecoversReplyFromJSON(t *testing.T) {
	client := mock.NewMockClient()
	client.Response = `{"response":"Follow up after five business days.","company":"Acme"}`

	g := NewWithClient(core.ProviderGemini, client)
	reply, err := g.Chat(context.Background(), "when to follow up?", nil)
	require.NoError(t, err)
	assert.Equal(t, "Follow up after five business days.", reply)
}

func TestChat_IncludesDocumentContext(t *testing.T) {
	client := mock.NewMockClient()
	client.Response = "ok"

	doc := core.DefaultDocument()
	doc.Applications = []core.JobApplication{{ID: core.NewID(), Company: "Acme", Status: core.StatusApplied}}

	g := NewWithClient(core.ProviderGemini, client)
	_, err := g.Chat(context.Background(), "status?", doc)
	require.NoError(t, err)
	assert.Contains(t, client.LastPrompt(), "1 applications")
}

func TestGateway_CancelledCallClassified(t *testing.T) {
	client := mock.NewMockClient()

	g := NewWithClient(core.ProviderGemini, client)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.ParseResume(ctx, "text")
	require.Error(t, err)
	assert.True(t, ai.IsCancelled(err))
}
