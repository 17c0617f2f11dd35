package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tally-dev/tally/internal/log"
	"github.com/tally-dev/tally/internal/model"
)

// FileStore keeps the document as one JSON file. Saves go through a temp
// file and a rename so a crash never leaves a truncated document, and the
// previous version is kept next to it with a .bak suffix.
type FileStore struct {
	path   string
	logger *log.Logger
}

// NewFileStore returns a store for the JSON file at path.
func NewFileStore(path string, logger *log.Logger) *FileStore {
	if logger == nil {
		logger = log.Discard()
	}
	return &FileStore{path: path, logger: logger}
}

// Path returns the document file path.
func (s *FileStore) Path() string { return s.path }

// BackupPath returns the path of the previous version.
func (s *FileStore) BackupPath() string { return s.path + ".bak" }

// Load reads the document, or returns ErrNotFound before the first save.
func (s *FileStore) Load(_ context.Context) (*model.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading document: %w", err)
	}
	doc, err := Import(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", s.path, err)
	}
	return doc, nil
}

// Save replaces the document on disk.
func (s *FileStore) Save(_ context.Context, doc *model.Document) error {
	data, err := Export(doc)
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	pattern := filepath.Base(s.path) + ".*.tmp"

	if prev, err := os.ReadFile(s.path); err == nil && len(prev) > 0 {
		if err := atomicWriteFile(dir, pattern, s.BackupPath(), prev, 0o644); err != nil {
			s.logger.Warn("backup failed", log.FieldPath, s.BackupPath(), log.FieldError, err)
		}
	}
	if err := atomicWriteFile(dir, pattern, s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	s.logger.Debug("document saved", log.FieldPath, s.path, log.FieldBackend, "file")
	return nil
}

// Close is a no-op.
func (s *FileStore) Close() error { return nil }

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}
