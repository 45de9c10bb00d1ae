package core

import (
	"time"

	"github.com/google/uuid"
)

// Category names one of the four persisted partitions of the Document.
// Every write replaces exactly one category wholesale.
type Category string

const (
	CategoryApplications Category = "applications"
	CategoryContacts     Category = "contacts"
	CategoryResume       Category = "resume"
	CategorySettings     Category = "settings"
)

// Categories returns all valid categories in persistence order.
func Categories() []Category {
	return []Category{CategoryApplications, CategoryContacts, CategoryResume, CategorySettings}
}

// Valid reports whether c is one of the four known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryApplications, CategoryContacts, CategoryResume, CategorySettings:
		return true
	}
	return false
}

// Status tracks a job application through its pipeline.
type Status string

const (
	StatusDiscovered Status = "discovered"
	StatusApplied    Status = "applied"
	StatusScreening  Status = "screening"
	StatusInterview  Status = "interview"
	StatusOffer      Status = "offer"
	StatusAccepted   Status = "accepted"
	StatusRejected   Status = "rejected"
	StatusWithdrawn  Status = "withdrawn"
)

// WorkType describes where the work happens.
type WorkType string

const (
	WorkTypeOnsite WorkType = "onsite"
	WorkTypeHybrid WorkType = "hybrid"
	WorkTypeRemote WorkType = "remote"
)

// Provider identifies an AI backend. An empty value means no provider
// has been configured.
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
	ProviderOllama Provider = "ollama"
	ProviderNone   Provider = ""
)

// NewID generates a unique identifier for a domain entity.
// IDs are assigned once at creation and never change.
func NewID() string {
	return uuid.NewString()
}

// JobApplication is a single tracked posting with any AI-derived
// analyses attached.
type JobApplication struct {
	ID             string            `json:"id"`
	Company        string            `json:"company"`
	Role           string            `json:"role"`
	Status         Status            `json:"status"`
	WorkType       WorkType          `json:"workType"`
	JobDescription string            `json:"jobDescription,omitempty"`
	ParsedJD       *ParsedJobPosting `json:"parsedJD,omitempty"`
	GapAnalysis    *GapAnalysis      `json:"gapAnalysis,omitempty"`
	LinkedContacts []string          `json:"linkedContacts,omitempty"` // Contact IDs; dangling IDs are tolerated
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// Contact is a person connected to one or more applications.
type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role,omitempty"`
	Company   string    `json:"company,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	LinkedIn  string    `json:"linkedin,omitempty"`
	GitHub    string    `json:"github,omitempty"`
	Notes     string    `json:"notes,omitempty"` // bounded to MaxNoteWords words
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ExperienceEntry is one position in a parsed resume.
type ExperienceEntry struct {
	Company    string   `json:"company"`
	Title      string   `json:"title"`
	Duration   string   `json:"duration,omitempty"`
	Highlights []string `json:"highlights,omitempty"`
}

// EducationEntry is one degree or program in a parsed resume.
type EducationEntry struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree,omitempty"`
	Year        string `json:"year,omitempty"`
}

// Resume is the structured form of the user's resume plus the raw text
// it was parsed from. The Document holds at most one.
type Resume struct {
	Name           string            `json:"name,omitempty"`
	Email          string            `json:"email,omitempty"`
	Phone          string            `json:"phone,omitempty"`
	Location       string            `json:"location,omitempty"`
	Skills         []string          `json:"skills,omitempty"`
	Experience     []ExperienceEntry `json:"experience,omitempty"`
	Education      []EducationEntry  `json:"education,omitempty"`
	Certifications []string          `json:"certifications,omitempty"`
	FileName       string            `json:"fileName,omitempty"`
	SourceText     string            `json:"sourceText,omitempty"`
	ParsedAt       time.Time         `json:"parsedAt"`
}

// ParsedJobPosting is the structured form of a job description.
type ParsedJobPosting struct {
	Company          string   `json:"company,omitempty"`
	Role             string   `json:"role,omitempty"`
	Location         string   `json:"location,omitempty"`
	WorkType         WorkType `json:"workType,omitempty"`
	RequiredSkills   []string `json:"requiredSkills,omitempty"`
	NiceToHaveSkills []string `json:"niceToHaveSkills,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
	ExperienceYears  string   `json:"experienceYears,omitempty"`
	Salary           string   `json:"salary,omitempty"`
}

// GapAnalysis is an AI-computed comparison of the resume against one
// posting's requirements.
type GapAnalysis struct {
	MatchScore      int       `json:"matchScore"`
	Strengths       []string  `json:"strengths,omitempty"`
	Gaps            []string  `json:"gaps,omitempty"`
	Recommendations []string  `json:"recommendations,omitempty"`
	Summary         string    `json:"summary,omitempty"`
	ComputedAt      time.Time `json:"computedAt"`
}

// FeedbackMode selects the persona used for resume feedback.
type FeedbackMode string

const (
	FeedbackModeRecruiter FeedbackMode = "recruiter"
	FeedbackModeCoach     FeedbackMode = "coach"
)

// ResumeFeedback is AI-generated critique of the resume. Mode records
// which persona produced it; it is stamped by the gateway, not the model.
type ResumeFeedback struct {
	Mode         FeedbackMode `json:"mode"`
	OverallScore int          `json:"overallScore"`
	Strengths    []string     `json:"strengths,omitempty"`
	Improvements []string     `json:"improvements,omitempty"`
	Summary      string       `json:"summary,omitempty"`
}

// Settings holds provider selection, credentials, and UI preferences.
type Settings struct {
	AIProvider     Provider `json:"aiProvider"`
	GeminiAPIKey   string   `json:"geminiApiKey,omitempty"`
	OpenAIAPIKey   string   `json:"openaiApiKey,omitempty"`
	OpenAIModel    string   `json:"openaiModel,omitempty"`
	OllamaModel    string   `json:"ollamaModel,omitempty"`
	GoalDate       string   `json:"goalDate,omitempty"`
	ViewPreference string   `json:"viewPreference,omitempty"`
}

// Document is the full application state. It is owned by docsync.Sync;
// nothing else mutates it.
type Document struct {
	Applications []JobApplication `json:"applications"`
	Contacts     []Contact        `json:"contacts"`
	Resume       *Resume          `json:"resume"`
	Settings     Settings         `json:"settings"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// DefaultDocument returns an empty Document suitable for first run.
func DefaultDocument() *Document {
	return &Document{
		Applications: []JobApplication{},
		Contacts:     []Contact{},
		Resume:       nil,
		Settings:     Settings{ViewPreference: "board"},
		UpdatedAt:    time.Now().UTC(),
	}
}

// Clone returns a deep copy of the Document. Readers get clones so the
// authoritative copy is never aliased outside its owner.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{
		Applications: make([]JobApplication, len(d.Applications)),
		Contacts:     make([]Contact, len(d.Contacts)),
		Settings:     d.Settings,
		UpdatedAt:    d.UpdatedAt,
	}
	for i, app := range d.Applications {
		out.Applications[i] = app.clone()
	}
	copy(out.Contacts, d.Contacts)
	if d.Resume != nil {
		r := *d.Resume
		r.Skills = cloneStrings(d.Resume.Skills)
		r.Certifications = cloneStrings(d.Resume.Certifications)
		r.Experience = make([]ExperienceEntry, len(d.Resume.Experience))
		for i, e := range d.Resume.Experience {
			e.Highlights = cloneStrings(e.Highlights)
			r.Experience[i] = e
		}
		r.Education = append([]EducationEntry(nil), d.Resume.Education...)
		out.Resume = &r
	}
	return out
}

func (a JobApplication) clone() JobApplication {
	a.LinkedContacts = cloneStrings(a.LinkedContacts)
	if a.ParsedJD != nil {
		jd := *a.ParsedJD
		jd.RequiredSkills = cloneStrings(jd.RequiredSkills)
		jd.NiceToHaveSkills = cloneStrings(jd.NiceToHaveSkills)
		jd.Responsibilities = cloneStrings(jd.Responsibilities)
		a.ParsedJD = &jd
	}
	if a.GapAnalysis != nil {
		ga := *a.GapAnalysis
		ga.Strengths = cloneStrings(ga.Strengths)
		ga.Gaps = cloneStrings(ga.Gaps)
		ga.Recommendations = cloneStrings(ga.Recommendations)
		a.GapAnalysis = &ga
	}
	return a
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
