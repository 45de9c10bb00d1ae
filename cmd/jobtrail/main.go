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


package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	slogmulti "github.com/samber/slog-multi"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/jobtrail/ai"
	"github.com/poiesic/jobtrail/ai/ollama"
	"github.com/poiesic/jobtrail/core"
	"github.com/poiesic/jobtrail/docsync"
	"github.com/poiesic/jobtrail/gateway"
	"github.com/poiesic/jobtrail/storage"
	badgerstore "github.com/poiesic/jobtrail/storage/badger"
	"github.com/poiesic/jobtrail/storage/dirstore"
)

func main() {
	app := &cli.App{
		Name:  "jobtrail",
		Usage: "Local-first job application tracker with AI-assisted analysis",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Also write JSON logs to this file",
			},
			&cli.StringFlag{
				Name:  "state",
				Usage: "Path to the app state file (defaults to the user config dir)",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Choose where data lives and create the default files",
				Action: initCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "dir",
						Aliases: []string{"d"},
						Usage:   "Data directory for the JSON files (omit to use the embedded fallback store)",
					},
				},
			},
			{
				Name:   "reconnect",
				Usage:  "Point the app at a data directory again after it moved",
				Action: reconnectCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "dir",
						Aliases:  []string{"d"},
						Usage:    "New location of the data directory",
						Required: true,
					},
				},
			},
			{
				Name:  "applications",
				Usage: "Manage tracked job applications",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List all applications",
						Action: listApplicationsCommand,
					},
					{
						Name:   "add",
						Usage:  "Add an application",
						Action: addApplicationCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "company", Required: true},
							&cli.StringFlag{Name: "role", Required: true},
							&cli.StringFlag{Name: "status", Value: string(core.StatusDiscovered)},
							&cli.StringFlag{Name: "work-type"},
							&cli.StringFlag{Name: "description", Usage: "Raw job description text"},
						},
					},
					{
						Name:      "link",
						Usage:     "Link a contact to an application",
						ArgsUsage: "<application-id> <contact-id>",
						Action:    linkContactCommand,
					},
				},
			},
			{
				Name:  "contacts",
				Usage: "Manage networking contacts",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List all contacts",
						Action: listContactsCommand,
					},
					{
						Name:   "add",
						Usage:  "Add a contact",
						Action: addContactCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "name", Required: true},
							&cli.StringFlag{Name: "company"},
							&cli.StringFlag{Name: "role"},
							&cli.StringFlag{Name: "email"},
							&cli.StringFlag{Name: "notes"},
						},
					},
				},
			},
			{
				Name:   "parse-resume",
				Usage:  "Parse a resume file into structured data via the configured AI provider",
				Action: parseResumeCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to a plain-text resume",
						Required: true,
					},
				},
			},
			{
				Name:      "parse-job",
				Usage:     "Parse an application's job description into structured data",
				ArgsUsage: "<application-id>",
				Action:    parseJobCommand,
			},
			{
				Name:      "gap",
				Usage:     "Run a gap analysis of the resume against an application",
				ArgsUsage: "<application-id>",
				Action:    gapCommand,
			},
			{
				Name:      "summary",
				Usage:     "Generate a tailored professional summary for an application",
				ArgsUsage: "<application-id>",
				Action:    summaryCommand,
			},
			{
				Name:   "feedback",
				Usage:  "Get resume feedback from an AI persona",
				Action: feedbackCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "mode",
						Usage: "Feedback persona (recruiter or coach)",
						Value: string(core.FeedbackModeRecruiter),
					},
				},
			},
			{
				Name:      "chat",
				Usage:     "Ask the assistant a free-form question about your search",
				ArgsUsage: "<message>",
				Action:    chatCommand,
			},
			{
				Name:   "models",
				Usage:  "List models available from the local Ollama daemon",
				Action: modelsCommand,
			},
			{
				Name:   "settings",
				Usage:  "Show or change provider settings",
				Action: settingsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "provider", Usage: "AI provider (gemini, openai, ollama)"},
					&cli.StringFlag{Name: "gemini-key"},
					&cli.StringFlag{Name: "openai-key"},
					&cli.StringFlag{Name: "openai-model"},
					&cli.StringFlag{Name: "ollama-model"},
					&cli.StringFlag{Name: "goal-date"},
					&cli.StringFlag{Name: "view", Usage: "UI view preference (board or list)"},
				},
			},
			{
				Name:   "reset",
				Usage:  "Erase all data and start over",
				Action: resetCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "yes",
						Usage: "Confirm the reset without prompting",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setup(c *cli.Context) error {
	// A .env next to the binary is a convenience for local use; absence
	// is not an error.
	_ = godotenv.Load()
	return setupLogger(c)
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	console := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})

	if path := c.String("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		file := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
		slog.SetDefault(slog.New(slogmulti.Fanout(console, file)))
		return nil
	}

	slog.SetDefault(slog.New(console))
	return nil
}

func statePath(c *cli.Context) (string, error) {
	if p := c.String("state"); p != "" {
		return p, nil
	}
	return storage.DefaultStatePath()
}

// fallbackDBPath is where the embedded store lives when no data
// directory is configured.
func fallbackDBPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config dir: %w", err)
	}
	return filepath.Join(dir, "jobtrail", "fallback"), nil
}

// openBackend picks the backend the state file calls for. A configured
// data directory that has gone missing surfaces ErrReconnectNeeded
// rather than silently switching stores.
func openBackend(st storage.State) (storage.Backend, error) {
	if st.DataDir != "" {
		return dirstore.Open(st.DataDir, slog.Default())
	}
	path, err := fallbackDBPath()
	if err != nil {
		return nil, err
	}
	return badgerstore.Open(path, false)
}

type env struct {
	state storage.State
	store storage.Backend
	sync  *docsync.Sync
}

func openEnv(c *cli.Context) (*env, error) {
	path, err := statePath(c)
	if err != nil {
		return nil, err
	}
	st, err := storage.LoadState(path)
	if err != nil {
		return nil, err
	}
	if !st.SetupComplete {
		return nil, fmt.Errorf("no data store configured yet, run 'jobtrail init' first")
	}

	store, err := openBackend(st)
	if err != nil {
		if errors.Is(err, storage.ErrReconnectNeeded) {
			return nil, fmt.Errorf("data directory %s is no longer accessible, run 'jobtrail reconnect --dir <path>' (your data is safe wherever the directory went): %w", st.DataDir, err)
		}
		return nil, err
	}

	sync, err := docsync.New(store, docsync.WithErrorHandler(func(cat core.Category, err error) {
		fmt.Fprintf(os.Stderr, "warning: saving %s failed: %v\n", cat, err)
	}))
	if err != nil {
		store.Close()
		return nil, err
	}
	if err := sync.Load(context.Background()); err != nil {
		store.Close()
		return nil, err
	}
	return &env{state: st, store: store, sync: sync}, nil
}

func (e *env) close() {
	e.sync.Close()
	e.store.Close()
}

// applyCredentialEnv lets environment variables override stored
// credentials so keys never have to live in the data files.
func applyCredentialEnv(s *core.Settings) {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		s.GeminiAPIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		s.OpenAIAPIKey = v
	}
}

func buildGateway(settings core.Settings) (*gateway.Gateway, error) {
	applyCredentialEnv(&settings)
	opts := []ai.ConfigOption{}
	if host := os.Getenv("OLLAMA_HOST"); host != "" {
		opts = append(opts, ai.WithOllamaHost(host))
	}
	return gateway.New(ai.ConfigFromSettings(settings, opts...))
}

// runAI executes an AI operation with Ctrl-C wired to cancellation.
func runAI(op func(ctx context.Context) error) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	life := gateway.NewLifecycle()
	err := life.Invoke(ctx, op)
	if ai.IsCancelled(err) {
		return fmt.Errorf("cancelled")
	}
	return err
}

func initCommand(c *cli.Context) error {
	path, err := statePath(c)
	if err != nil {
		return err
	}

	st := storage.State{DataDir: c.String("dir"), SetupComplete: true}
	if st.DataDir != "" {
		abs, err := filepath.Abs(st.DataDir)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(abs, 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
		st.DataDir = abs
	}

	store, err := openBackend(st)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.InitializeDefaults(context.Background()); err != nil {
		return err
	}
	if err := storage.SaveState(path, st); err != nil {
		return err
	}

	if st.DataDir != "" {
		fmt.Printf("Initialized data directory %s\n", st.DataDir)
	} else {
		fmt.Println("Initialized embedded fallback store")
	}
	return nil
}

func reconnectCommand(c *cli.Context) error {
	path, err := statePath(c)
	if err != nil {
		return err
	}
	st, err := storage.LoadState(path)
	if err != nil {
		return err
	}

	abs, err := filepath.Abs(c.String("dir"))
	if err != nil {
		return err
	}
	store, err := dirstore.Open(abs, slog.Default())
	if err != nil {
		return fmt.Errorf("cannot use %s: %w", abs, err)
	}
	defer store.Close()

	// Prove the directory actually holds (or can hold) our files.
	if _, err := store.ReadAll(context.Background()); err != nil {
		return fmt.Errorf("cannot read %s: %w", abs, err)
	}

	st.DataDir = abs
	st.SetupComplete = true
	if err := storage.SaveState(path, st); err != nil {
		return err
	}
	fmt.Printf("Reconnected to %s\n", abs)
	return nil
}

func listApplicationsCommand(c *cli.Context) error {
	e, err := openEnv(c)
	if err != nil {
		return err
	}
	defer e.close()

	doc := e.sync.Document()
	if len(doc.Applications) == 0 {
		fmt.Println("No applications tracked yet.")
		return nil
	}
	for _, app := range doc.Applications {
		line := fmt.Sprintf("%s  %-12s %s — %s", app.ID, app.Status, app.Company, app.Role)
		if app.GapAnalysis != nil {
			line += fmt.Sprintf("  (match %d%%)", app.GapAnalysis.MatchScore)
		}
		fmt.Println(line)
	}
	return nil
}

func addApplicationCommand(c *cli.Context) error {
	e, err := openEnv(c)
	if err != nil {
		return err
	}
	defer e.close()

	now := time.Now().UTC()
	app := core.JobApplication{
		ID:             core.NewID(),
		Company:        c.String("company"),
		Role:           c.String("role"),
		Status:         core.Status(c.String("status")),
		WorkType:       core.WorkType(c.String("work-type")),
		JobDescription: c.String("description"),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := core.ValidateApplication(&app); err != nil {
		return err
	}

	doc := e.sync.Document()
	e.sync.ReplaceApplications(append(doc.Applications, app))
	e.sync.Flush()
	fmt.Printf("Added %s at %s (%s)\n", app.Role, app.Company, app.ID)
	return nil
}

func linkContactCommand(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("usage: jobtrail applications link <application-id> <contact-id>")
	}
	appID, contactID := c.Args().Get(0), c.Args().Get(1)

	e, err := openEnv(c)
	if err != nil {
		return err
	}
	defer e.close()

	doc := e.sync.Document()
	apps := doc.Applications
	idx := -1
	for i := range apps {
		if apps[i].ID == appID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("no application with id %s", appID)
	}
	for _, id := range apps[idx].LinkedContacts {
		if id == contactID {
			fmt.Println("Already linked.")
			return nil
		}
	}
	apps[idx].LinkedContacts = append(apps[idx].LinkedContacts, contactID)
	apps[idx].UpdatedAt = time.Now().UTC()
	e.sync.ReplaceApplications(apps)
	e.sync.Flush()
	fmt.Println("Linked.")
	return nil
}

func listContactsCommand(c *cli.Context) error {
	e, err := openEnv(c)
	if err != nil {
		return err
	}
	defer e.close()

	doc := e.sync.Document()
	if len(doc.Contacts) == 0 {
		fmt.Println("No contacts yet.")
		return nil
	}
	for _, ct := range doc.Contacts {
		line := fmt.Sprintf("%s  %s", ct.ID, ct.Name)
		if ct.Company != "" {
			line += " (" + ct.Company + ")"
		}
		fmt.Println(line)
	}
	return nil
}

func addContactCommand(c *cli.Context) error {
	e, err := openEnv(c)
	if err != nil {
		return err
	}
	defer e.close()

	now := time.Now().UTC()
	contact := core.Contact{
		ID:        core.NewID(),
		Name:      c.String("name"),
		Company:   c.String("company"),
		Role:      c.String("role"),
		Email:     c.String("email"),
		Notes:     c.String("notes"),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := core.ValidateContact(&contact); err != nil {
		return err
	}

	doc := e.sync.Document()
	e.sync.ReplaceContacts(append(doc.Contacts, contact))
	e.sync.Flush()
	fmt.Printf("Added contact %s (%s)\n", contact.Name, contact.ID)
	return nil
}

func parseResumeCommand(c *cli.Context) error {
	data, err := os.ReadFile(c.String("file"))
	if err != nil {
		return fmt.Errorf("reading resume file: %w", err)
	}

	e, err := openEnv(c)
	if err != nil {
		return err
	}
	defer e.close()

	gw, err := buildGateway(e.sync.Document().Settings)
	if err != nil {
		return err
	}

	var resume *core.Resume
	err = runAI(func(ctx context.Context) error {
		var err error
		resume, err = gw.ParseResume(ctx, string(data))
		return err
	})
	if err != nil {
		return err
	}

	resume.FileName = filepath.Base(c.String("file"))
	e.sync.ReplaceResume(resume)
	e.sync.Flush()

	fmt.Printf("Parsed resume: %d skills, %d positions, %d schools\n",
		len(resume.Skills), len(resume.Experience), len(resume.Education))
	return nil
}

func parseJobCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: jobtrail parse-job <application-id>")
	}

	e, err := openEnv(c)
	if err != nil {
		return err
	}
	defer e.close()

	doc := e.sync.Document()
	apps := doc.Applications
	idx := findApplication(apps, c.Args().First())
	if idx < 0 {
		return fmt.Errorf("no application with id %s", c.Args().First())
	}
	if strings.TrimSpace(apps[idx].JobDescription) == "" {
		return fmt.Errorf("application has no job description to parse")
	}

	gw, err := buildGateway(doc.Settings)
	if err != nil {
		return err
	}

	var parsed *core.ParsedJobPosting
	err = runAI(func(ctx context.Context) error {
		var err error
		parsed, err = gw.ParseJobPosting(ctx, apps[idx].JobDescription)
		return err
	})
	if err != nil {
		return err
	}

	apps[idx].ParsedJD = parsed
	apps[idx].UpdatedAt = time.Now().UTC()
	e.sync.ReplaceApplications(apps)
	e.sync.Flush()

	fmt.Printf("Parsed posting: %s at %s, %d required skills\n",
		parsed.Role, parsed.Company, len(parsed.RequiredSkills))
	return nil
}

func gapCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: jobtrail gap <application-id>")
	}

	e, err := openEnv(c)
	if err != nil {
		return err
	}
	defer e.close()

	doc := e.sync.Document()
	if doc.Resume == nil {
		return fmt.Errorf("no resume on file, run 'jobtrail parse-resume' first")
	}
	apps := doc.Applications
	idx := findApplication(apps, c.Args().First())
	if idx < 0 {
		return fmt.Errorf("no application with id %s", c.Args().First())
	}
	if apps[idx].ParsedJD == nil {
		return fmt.Errorf("job description not parsed yet, run 'jobtrail parse-job' first")
	}

	gw, err := buildGateway(doc.Settings)
	if err != nil {
		return err
	}

	var analysis *core.GapAnalysis
	err = runAI(func(ctx context.Context) error {
		var err error
		analysis, err = gw.GapAnalysis(ctx, doc.Resume, apps[idx].ParsedJD)
		return err
	})
	if err != nil {
		return err
	}

	apps[idx].GapAnalysis = analysis
	apps[idx].UpdatedAt = time.Now().UTC()
	e.sync.ReplaceApplications(apps)
	e.sync.Flush()

	fmt.Printf("Match score: %d%%\n", analysis.MatchScore)
	printList("Strengths", analysis.Strengths)
	printList("Gaps", analysis.Gaps)
	printList("Recommendations", analysis.Recommendations)
	if analysis.Summary != "" {
		fmt.Println("\n" + analysis.Summary)
	}
	return nil
}

func summaryCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: jobtrail summary <application-id>")
	}

	e, err := openEnv(c)
	if err != nil {
		return err
	}
	defer e.close()

	doc := e.sync.Document()
	if doc.Resume == nil {
		return fmt.Errorf("no resume on file, run 'jobtrail parse-resume' first")
	}
	idx := findApplication(doc.Applications, c.Args().First())
	if idx < 0 {
		return fmt.Errorf("no application with id %s", c.Args().First())
	}
	posting := doc.Applications[idx].ParsedJD
	if posting == nil {
		return fmt.Errorf("job description not parsed yet, run 'jobtrail parse-job' first")
	}

	gw, err := buildGateway(doc.Settings)
	if err != nil {
		return err
	}

	var summary string
	err = runAI(func(ctx context.Context) error {
		var err error
		summary, err = gw.TailoredSummary(ctx, doc.Resume, posting)
		return err
	})
	if err != nil {
		return err
	}

	fmt.Println(summary)
	return nil
}

func feedbackCommand(c *cli.Context) error {
	mode := core.FeedbackMode(c.String("mode"))
	if mode != core.FeedbackModeRecruiter && mode != core.FeedbackModeCoach {
		return fmt.Errorf("invalid mode %q: must be recruiter or coach", mode)
	}

	e, err := openEnv(c)
	if err != nil {
		return err
	}
	defer e.close()

	doc := e.sync.Document()
	if doc.Resume == nil {
		return fmt.Errorf("no resume on file, run 'jobtrail parse-resume' first")
	}

	gw, err := buildGateway(doc.Settings)
	if err != nil {
		return err
	}

	var fb *core.ResumeFeedback
	err = runAI(func(ctx context.Context) error {
		var err error
		fb, err = gw.ResumeFeedback(ctx, doc.Resume, mode)
		return err
	})
	if err != nil {
		return err
	}

	fmt.Printf("Overall score (%s): %d/100\n", fb.Mode, fb.OverallScore)
	printList("Strengths", fb.Strengths)
	printList("Improvements", fb.Improvements)
	if fb.Summary != "" {
		fmt.Println("\n" + fb.Summary)
	}
	return nil
}

func chatCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("usage: jobtrail chat <message>")
	}
	message := strings.Join(c.Args().Slice(), " ")

	e, err := openEnv(c)
	if err != nil {
		return err
	}
	defer e.close()

	doc := e.sync.Document()
	gw, err := buildGateway(doc.Settings)
	if err != nil {
		return err
	}

	var reply string
	err = runAI(func(ctx context.Context) error {
		var err error
		reply, err = gw.Chat(ctx, message, doc)
		return err
	})
	if err != nil {
		return err
	}

	fmt.Println(reply)
	return nil
}

func modelsCommand(c *cli.Context) error {
	host := os.Getenv("OLLAMA_HOST")
	if host == "" {
		host = ai.DefaultOllamaHost
	}
	cfg := ai.ConfigFromSettings(core.Settings{
		AIProvider:  core.ProviderOllama,
		OllamaModel: "placeholder",
	}, ai.WithOllamaHost(host))

	client, err := ollama.NewClient(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !client.IsRunning(ctx) {
		return fmt.Errorf("Ollama daemon unreachable at %s, is it running?", host)
	}
	models, err := client.ListModels(ctx)
	if err != nil {
		return err
	}
	if len(models) == 0 {
		fmt.Println("No models installed. Pull one with 'ollama pull <model>'.")
		return nil
	}
	for _, m := range models {
		fmt.Println(m)
	}
	return nil
}

func settingsCommand(c *cli.Context) error {
	e, err := openEnv(c)
	if err != nil {
		return err
	}
	defer e.close()

	doc := e.sync.Document()
	s := doc.Settings
	changed := false

	if v := c.String("provider"); v != "" {
		p := core.Provider(v)
		if err := core.ValidateProvider(p); err != nil {
			return err
		}
		s.AIProvider = p
		changed = true
	}
	if v := c.String("gemini-key"); v != "" {
		s.GeminiAPIKey = v
		changed = true
	}
	if v := c.String("openai-key"); v != "" {
		s.OpenAIAPIKey = v
		changed = true
	}
	if v := c.String("openai-model"); v != "" {
		s.OpenAIModel = v
		changed = true
	}
	if v := c.String("ollama-model"); v != "" {
		s.OllamaModel = v
		changed = true
	}
	if v := c.String("goal-date"); v != "" {
		s.GoalDate = v
		changed = true
	}
	if v := c.String("view"); v != "" {
		if v != "board" && v != "list" {
			return fmt.Errorf("invalid view %q: must be board or list", v)
		}
		s.ViewPreference = v
		changed = true
	}

	if changed {
		e.sync.ReplaceSettings(s)
		e.sync.Flush()
	}

	fmt.Printf("Provider:        %s\n", orUnset(string(s.AIProvider)))
	fmt.Printf("Gemini key:      %s\n", maskKey(s.GeminiAPIKey))
	fmt.Printf("OpenAI key:      %s\n", maskKey(s.OpenAIAPIKey))
	fmt.Printf("OpenAI model:    %s\n", orUnset(s.OpenAIModel))
	fmt.Printf("Ollama model:    %s\n", orUnset(s.OllamaModel))
	fmt.Printf("Goal date:       %s\n", orUnset(s.GoalDate))
	fmt.Printf("View preference: %s\n", orUnset(s.ViewPreference))
	return nil
}

func resetCommand(c *cli.Context) error {
	if !c.Bool("yes") {
		return fmt.Errorf("this erases all applications, contacts, resume, and settings; re-run with --yes to confirm")
	}

	e, err := openEnv(c)
	if err != nil {
		return err
	}
	defer e.close()

	e.sync.Reset()
	e.sync.Flush()
	fmt.Println("All data reset to defaults.")
	return nil
}

func findApplication(apps []core.JobApplication, id string) int {
	for i := range apps {
		if apps[i].ID == id {
			return i
		}
	}
	return -1
}

func printList(title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Println(title + ":")
	for _, item := range items {
		fmt.Println("  - " + item)
	}
}

func maskKey(key string) string {
	if key == "" {
		return "(unset)"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}
