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


package docsync

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/jobtrail/core"
	"github.com/poiesic/jobtrail/storage"
)

const defaultPoolSize = 4

// ErrorHandler is notified when a background write fails. The sync
// keeps the in-memory document authoritative, so a failed write loses
// nothing until the process exits; the handler's job is to tell the
// user persistence is degraded.
type ErrorHandler func(cat core.Category, err error)

// Sync owns the in-memory document and coalesces writes to the
// backend. Mutations are applied synchronously in memory; persistence
// happens on a worker pool, one drain loop per dirty category, always
// writing the latest snapshot. Rapid successive edits to the same
// category collapse into a single write.
type Sync struct {
	backend storage.Backend
	pool    *ants.Pool
	logger  *slog.Logger
	onError ErrorHandler

	mu       sync.Mutex
	doc      *core.Document
	dirty    map[core.Category]bool
	inflight map[core.Category]bool
	wg       sync.WaitGroup
	closed   bool
}

// Option configures a Sync.
type Option func(*Sync)

// WithErrorHandler installs a callback for failed background writes.
func WithErrorHandler(h ErrorHandler) Option {
	return func(s *Sync) { s.onError = h }
}

// WithLogger overrides the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sync) { s.logger = logger.With("component", "docsync") }
}

// New creates a Sync over backend. Call Load before reading or
// mutating the document.
func New(backend storage.Backend, opts ...Option) (*Sync, error) {
	pool, err := ants.NewPool(defaultPoolSize)
	if err != nil {
		return nil, fmt.Errorf("creating write pool: %w", err)
	}
	s := &Sync{
		backend:  backend,
		pool:     pool,
		logger:   slog.Default().With("component", "docsync"),
		doc:      core.DefaultDocument(),
		dirty:    make(map[core.Category]bool),
		inflight: make(map[core.Category]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Load replaces the in-memory document with the backend's contents.
func (s *Sync) Load(ctx context.Context) error {
	doc, err := s.backend.ReadAll(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()
	return nil
}

// Document returns a deep copy of the current document. Callers may
// mutate the copy freely; changes only take effect through the
// Replace methods.
func (s *Sync) Document() *core.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// ReplaceApplications swaps in a new application list and schedules a
// write. The in-memory update is visible immediately.
func (s *Sync) ReplaceApplications(apps []core.JobApplication) {
	s.mutate(core.CategoryApplications, func(doc *core.Document) {
		doc.Applications = apps
	})
}

// ReplaceContacts swaps in a new contact list and schedules a write.
func (s *Sync) ReplaceContacts(contacts []core.Contact) {
	s.mutate(core.CategoryContacts, func(doc *core.Document) {
		doc.Contacts = contacts
	})
}

// ReplaceResume swaps the resume and schedules a write. A nil resume
// clears it.
func (s *Sync) ReplaceResume(resume *core.Resume) {
	s.mutate(core.CategoryResume, func(doc *core.Document) {
		doc.Resume = resume
	})
}

// ReplaceSettings swaps the settings and schedules a write.
func (s *Sync) ReplaceSettings(settings core.Settings) {
	s.mutate(core.CategorySettings, func(doc *core.Document) {
		doc.Settings = settings
	})
}

// Reset swaps the whole document back to defaults and schedules a
// write of every category.
func (s *Sync) Reset() {
	s.mu.Lock()
	s.doc = core.DefaultDocument()
	s.doc.UpdatedAt = time.Now().UTC()
	for _, cat := range core.Categories() {
		s.markDirtyLocked(cat)
	}
	s.mu.Unlock()
}

func (s *Sync) mutate(cat core.Category, apply func(*core.Document)) {
	s.mu.Lock()
	apply(s.doc)
	s.doc.UpdatedAt = time.Now().UTC()
	s.markDirtyLocked(cat)
	s.mu.Unlock()
}

// markDirtyLocked flags cat for persistence and starts a drain loop
// for it unless one is already running. Caller holds s.mu.
func (s *Sync) markDirtyLocked(cat core.Category) {
	if s.closed {
		return
	}
	s.dirty[cat] = true
	if s.inflight[cat] {
		return
	}
	s.inflight[cat] = true
	s.wg.Add(1)
	if err := s.pool.Submit(func() { s.drain(cat) }); err != nil {
		s.inflight[cat] = false
		s.dirty[cat] = false
		s.wg.Done()
		s.logger.Error("submitting write task", "category", cat, "error", err)
		if s.onError != nil {
			go s.onError(cat, err)
		}
	}
}

// drain writes cat until no further edits arrive. Each pass snapshots
// the document under lock, so whatever version is current when the
// write starts is the version persisted: intermediate states may be
// skipped, the final one never is.
func (s *Sync) drain(cat core.Category) {
	defer s.wg.Done()
	for {
		s.mu.Lock()
		if !s.dirty[cat] {
			s.inflight[cat] = false
			s.mu.Unlock()
			return
		}
		s.dirty[cat] = false
		snapshot := s.doc.Clone()
		s.mu.Unlock()

		if err := s.backend.WriteCategory(context.Background(), cat, snapshot); err != nil {
			s.logger.Error("background write failed", "category", cat, "error", err)
			if s.onError != nil {
				s.onError(cat, err)
			}
		}
	}
}

// Flush blocks until every scheduled write has drained.
func (s *Sync) Flush() {
	s.wg.Wait()
}

// Close flushes outstanding writes and releases the pool. The backend
// itself is not closed; the caller owns it.
func (s *Sync) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.wg.Wait()
	s.pool.Release()
	return nil
}
