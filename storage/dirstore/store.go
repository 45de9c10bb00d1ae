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


// Package dirstore persists the document as four human-readable JSON
// files in a user-chosen directory. It is the preferred backend: the
// files can live in a synced folder and be inspected or edited by hand.
package dirstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/poiesic/jobtrail/core"
	"github.com/poiesic/jobtrail/storage"
)

// Store implements storage.Backend over a directory of JSON files.
type Store struct {
	dir    string
	logger *slog.Logger

	mu        sync.Mutex
	createdAt map[core.Category]time.Time
	closed    bool
}

// Open validates that dir exists and is writable, then returns a Store
// rooted there. A missing directory is reported as ErrReconnectNeeded
// so the caller can prompt the user to relocate it.
func Open(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		dir:       dir,
		logger:    logger.With("component", "dirstore"),
		createdAt: make(map[core.Category]time.Time),
	}
	if err := s.checkAccess(); err != nil {
		return nil, err
	}
	return s, nil
}

// Dir returns the directory this store persists into.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) checkAccess() error {
	info, err := os.Stat(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", storage.ErrReconnectNeeded, s.dir)
		}
		return fmt.Errorf("%w: %s: %v", storage.ErrReconnectNeeded, s.dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", storage.ErrReconnectNeeded, s.dir)
	}
	return nil
}

// ReadAll loads every category file into a fresh document. Missing
// files fall back to defaults so a partially populated directory still
// loads; unreadable JSON is surfaced as ErrCorruptData.
func (s *Store) ReadAll(ctx context.Context) (*core.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, storage.ErrStorageClosed
	}
	if err := s.checkAccess(); err != nil {
		return nil, err
	}

	doc := core.DefaultDocument()
	for _, cat := range core.Categories() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(s.dir, storage.CategoryFileName(cat))
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				s.logger.Debug("category file missing, using defaults", "category", cat)
				continue
			}
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		created, err := storage.DecodeCategory(cat, data, doc)
		if err != nil {
			return nil, err
		}
		s.createdAt[cat] = created
	}
	return doc, nil
}

// WriteCategory persists one category of doc. The write goes through a
// temp file and rename so a crash never leaves a half-written file.
func (s *Store) WriteCategory(ctx context.Context, cat core.Category, doc *core.Document) error {
	if !cat.Valid() {
		return fmt.Errorf("%w: %q", core.ErrInvalidCategory, cat)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return storage.ErrStorageClosed
	}
	if err := s.checkAccess(); err != nil {
		return err
	}

	data, err := storage.EncodeCategory(cat, doc, s.createdAt[cat])
	if err != nil {
		return err
	}

	path := filepath.Join(s.dir, storage.CategoryFileName(cat))
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}

	if s.createdAt[cat].IsZero() {
		// First write establishes the file's creation stamp.
		created, err := storage.DecodeCategory(cat, data, core.DefaultDocument())
		if err == nil {
			s.createdAt[cat] = created
		}
	}
	s.logger.Debug("category written", "category", cat, "bytes", len(data))
	return nil
}

// InitializeDefaults writes default files for any category not yet
// present in the directory. Existing files are left untouched.
func (s *Store) InitializeDefaults(ctx context.Context) error {
	defaults := core.DefaultDocument()
	for _, cat := range core.Categories() {
		path := filepath.Join(s.dir, storage.CategoryFileName(cat))
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("checking %s: %w", path, err)
		}
		if err := s.WriteCategory(ctx, cat, defaults); err != nil {
			return err
		}
	}
	return nil
}

// Close marks the store closed. There are no file handles held open
// between operations, so this only guards against further use.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
