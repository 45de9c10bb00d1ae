package storage

import (
	"context"

	"github.com/poiesic/jobtrail/core"
)

// Backend persists the Document one category at a time. Two
// implementations exist: a directory of JSON files (dirstore) and a
// single-blob BadgerDB fallback (badger). Selection between them
// happens once at startup and never changes mid-session.
//
// Implementations must be thread-safe and support concurrent access.
type Backend interface {
	// ReadAll loads the full Document. Missing categories come back as
	// their defaults; a missing file or key is never an error.
	ReadAll(ctx context.Context) (*core.Document, error)

	// WriteCategory atomically replaces the persisted representation of
	// one category with that category's value from doc, stamping a
	// fresh updatedAt. doc is a snapshot owned by the caller; the
	// backend never retains it. A directory whose permission was lost
	// returns an error wrapping ErrReconnectNeeded.
	WriteCategory(ctx context.Context, cat core.Category, doc *core.Document) error

	// InitializeDefaults writes default empty structures for any
	// category not already present. Idempotent: existing data is
	// never overwritten.
	InitializeDefaults(ctx context.Context) error

	// Close releases the backend's resources.
	Close() error
}
