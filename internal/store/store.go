// Package store persists the tally document. Every save replaces the whole
// document; there are no partial updates.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/tally-dev/tally/internal/config"
	"github.com/tally-dev/tally/internal/log"
	"github.com/tally-dev/tally/internal/model"
)

// ErrNotFound is returned by Load before the first save.
var ErrNotFound = errors.New("document not found")

// Store loads and saves the whole document.
type Store interface {
	Load(ctx context.Context) (*model.Document, error)
	Save(ctx context.Context, doc *model.Document) error
	Close() error
}

// Open returns the backend selected by cfg, rooted at the workspace root.
func Open(root string, cfg *config.Config, logger *log.Logger) (Store, error) {
	if logger == nil {
		logger = log.Discard()
	}
	logger = logger.WithComponent(log.ComponentStorage)
	path := cfg.StoragePath(root)

	switch cfg.Storage.Backend {
	case config.BackendFile, "":
		return NewFileStore(path, logger), nil
	case config.BackendSQLite:
		return OpenSQLite(path, logger)
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}

// LoadOrNew loads the document, or returns a fresh one on first run.
func LoadOrNew(ctx context.Context, s Store) (*model.Document, error) {
	doc, err := s.Load(ctx)
	if errors.Is(err, ErrNotFound) {
		return model.NewDocument(), nil
	}
	return doc, err
}
