package gateway

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/poiesic/jobtrail/core"
)

// All structured prompts share the same preamble the models respond to
// best: output only JSON, start at the opening brace, follow the schema.
const jsonPreamble = `Output ONLY valid JSON which complies with the schema given below. Do not include any preamble,
explanation, greeting, or acknowledgment. Start your response directly with the opening brace { and
end with the closing brace }. Your output must exactly follow this schema:

%s
`

const resumePromptTemplate = `Extract structured data from the resume text below.

%s
Rules:
- Copy names, companies, and institutions verbatim from the text. Do not invent entries.
- List every distinct technical and professional skill mentioned.
- If a field is absent from the resume, omit it rather than guessing.

Resume text:
---
%s
---`

const jobPromptTemplate = `Extract structured data from the job description below.

%s
Rules:
- requiredSkills are skills the posting demands; niceToHaveSkills are explicitly optional ones.
- workType must be "onsite", "hybrid", or "remote" when the posting states it, otherwise "".
- Copy the company and role verbatim when present. Do not invent requirements.

Job description:
---
%s
---`

const gapPromptTemplate = `Compare the candidate's resume against the job requirements and produce a gap analysis.

%s
Rules:
- matchScore is 0-100: how well the resume covers the posting's required skills and experience.
- strengths are requirements the resume clearly satisfies; gaps are requirements it does not.
- recommendations are concrete actions that would close the gaps.

Candidate resume:
%s

Job requirements:
%s`

const summaryPromptTemplate = `Write a professional summary (2-3 sentences) for the candidate, tailored to the job below.

%s
Rules:
- Lead with the candidate's strongest overlap with the posting's requirements.
- Use only facts present in the resume. No first-person pronouns.

Candidate resume:
%s

Target job:
%s`

const feedbackPromptTemplate = `Review the candidate's resume %s

%s
Rules:
- overallScore is 0-100 for the resume as a document, independent of any specific job.
- improvements must be specific and actionable, not generic advice.

Resume:
%s`

const chatPromptTemplate = `You are a job-search assistant. Answer the user's question in plain text prose.
Do NOT format your answer as JSON and do NOT wrap it in markdown code fences.
%s
Question: %s`

// Persona phrasing for the feedback operation, keyed by mode.
var feedbackPersonas = map[core.FeedbackMode]string{
	core.FeedbackModeRecruiter: "as a senior technical recruiter screening for a competitive role. Be strict: flag anything that would make you pass on this resume.",
	core.FeedbackModeCoach:     "as a supportive career coach. Be encouraging: highlight what works before suggesting improvements.",
}

func buildResumePrompt(resumeText string) string {
	return fmt.Sprintf(resumePromptTemplate,
		fmt.Sprintf(jsonPreamble, resumeSchema),
		resumeText)
}

func buildJobPrompt(jobText string) string {
	return fmt.Sprintf(jobPromptTemplate,
		fmt.Sprintf(jsonPreamble, postingSchema),
		jobText)
}

func buildGapPrompt(resume *core.Resume, posting *core.ParsedJobPosting) string {
	return fmt.Sprintf(gapPromptTemplate,
		fmt.Sprintf(jsonPreamble, gapSchema),
		compactJSON(resume),
		compactJSON(posting))
}

func buildSummaryPrompt(resume *core.Resume, posting *core.ParsedJobPosting) string {
	return fmt.Sprintf(summaryPromptTemplate,
		fmt.Sprintf(jsonPreamble, summarySchema),
		compactJSON(resume),
		compactJSON(posting))
}

func buildFeedbackPrompt(resume *core.Resume, mode core.FeedbackMode) string {
	persona, ok := feedbackPersonas[mode]
	if !ok {
		persona = feedbackPersonas[core.FeedbackModeCoach]
	}
	return fmt.Sprintf(feedbackPromptTemplate,
		persona,
		fmt.Sprintf(jsonPreamble, feedbackSchema),
		compactJSON(resume))
}

func buildChatPrompt(message string, doc *core.Document) string {
	return fmt.Sprintf(chatPromptTemplate, chatContext(doc), message)
}

// chatContext summarizes the document in a couple of lines so the model
// can ground its answer without receiving the whole state.
func chatContext(doc *core.Document) string {
	if doc == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString("Context: the user is tracking ")
	fmt.Fprintf(&b, "%d applications and %d contacts.", len(doc.Applications), len(doc.Contacts))
	if doc.Resume != nil && len(doc.Resume.Skills) > 0 {
		fmt.Fprintf(&b, " Their top skills: %s.", strings.Join(truncateList(doc.Resume.Skills, 8), ", "))
	}
	b.WriteString("\n")
	return b.String()
}

// compactJSON serializes v for prompt embedding. Marshal failures on
// domain types cannot happen at runtime; the fallback keeps the prompt
// builder total.
func compactJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(data)
}

func truncateList(items []string, max int) []string {
	if len(items) <= max {
		return items
	}
	return items[:max]
}
