package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/poiesic/jobtrail/core"
	"github.com/poiesic/jobtrail/storage"
)

// documentKey holds the serialized document. The fallback store keeps
// the whole document as a single blob; per-category granularity only
// matters for the human-readable directory backend.
const documentKey = "jobtrail/document"

// Store implements storage.Backend over an embedded BadgerDB. It is
// the fallback when the user declines to pick a data directory or the
// chosen directory has gone missing.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// Open opens a BadgerDB database at the specified path.
// Creates the directory if it doesn't exist.
func Open(filePath string, inMemory bool) (*Store, error) {
	var opts badger.Options

	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		// Ensure directory exists
		info, err := os.Stat(filePath)
		if err != nil {
			if os.IsNotExist(err) {
				if err := os.MkdirAll(filePath, 0755); err != nil {
					return nil, err
				}
				info, err = os.Stat(filePath)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", filePath)
		}
		opts = badger.DefaultOptions(filePath)
	}

	opts.Logger = &badgerLoggerAdapter{logger: slog.Default()}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:     db,
		logger: slog.Default().With("component", "badger"),
	}, nil
}

// ReadAll loads the stored document, or defaults when none was ever
// written.
func (s *Store) ReadAll(ctx context.Context) (*core.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.db.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	doc := core.DefaultDocument()
	err := s.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(documentKey))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, doc); err != nil {
				return fmt.Errorf("%w: document blob: %v", storage.ErrCorruptData, err)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// WriteCategory persists doc. The category argument is accepted for
// interface parity but the whole document is written each time.
func (s *Store) WriteCategory(ctx context.Context, cat core.Category, doc *core.Document) error {
	if !cat.Valid() {
		return fmt.Errorf("%w: %q", core.ErrInvalidCategory, cat)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.db.IsClosed() {
		return storage.ErrStorageClosed
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	return s.db.Update(func(tx *badger.Txn) error {
		return tx.Set([]byte(documentKey), data)
	})
}

// InitializeDefaults writes a default document if none exists yet.
func (s *Store) InitializeDefaults(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.db.IsClosed() {
		return storage.ErrStorageClosed
	}
	return s.db.Update(func(tx *badger.Txn) error {
		_, err := tx.Get([]byte(documentKey))
		if err == nil {
			return nil
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		data, err := json.Marshal(core.DefaultDocument())
		if err != nil {
			return fmt.Errorf("encoding defaults: %w", err)
		}
		return tx.Set([]byte(documentKey), data)
	})
}

// Close closes the BadgerDB database.
func (s *Store) Close() error {
	return s.db.Close()
}
