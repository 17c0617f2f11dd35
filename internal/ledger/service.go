// Package ledger applies changes to the workspace document. Every change
// loads the document, mutates it, saves the whole document, records an
// activity row and, when enabled, commits the workspace to git.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tally-dev/tally/internal/activity"
	"github.com/tally-dev/tally/internal/config"
	"github.com/tally-dev/tally/internal/gitops"
	"github.com/tally-dev/tally/internal/id"
	"github.com/tally-dev/tally/internal/log"
	"github.com/tally-dev/tally/internal/model"
	"github.com/tally-dev/tally/internal/store"
)

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalid is returned for input that fails validation.
	ErrInvalid = errors.New("invalid input")
	// ErrTimerRunning is returned when starting a timer while one runs.
	ErrTimerRunning = errors.New("a timer is already running")
	// ErrNoTimer is returned when stopping with no timer running.
	ErrNoTimer = errors.New("no timer is running")
)

// Change describes what a mutation did, for the activity log and the
// commit message.
type Change struct {
	Entity   string
	EntityID string
	Details  string
}

// Service provides business logic over one workspace.
type Service struct {
	root   string
	cfg    *config.Config
	store  store.Store
	logger *log.Logger
	now    func() time.Time
	newID  func(prefix string) string
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDs replaces the id generator.
func WithIDs(newID func(prefix string) string) Option {
	return func(s *Service) { s.newID = newID }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService creates a Service over an open store.
func NewService(root string, cfg *config.Config, st store.Store, opts ...Option) *Service {
	s := &Service{
		root:   root,
		cfg:    cfg,
		store:  st,
		logger: log.Discard(),
		now:    time.Now,
		newID:  id.New,
	}
	for _, o := range opts {
		o(s)
	}
	s.logger = s.logger.WithComponent(log.ComponentLedger)
	return s
}

// Open loads the workspace config at root and opens its store.
func Open(root string, opts ...Option) (*Service, error) {
	cfg, err := config.LoadWorkspace(root)
	if err != nil {
		return nil, err
	}
	s := NewService(root, cfg, nil, opts...)
	st, err := store.Open(root, cfg, s.logger)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	s.store = st
	return s, nil
}

// Close releases the store.
func (s *Service) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}

// Root returns the workspace directory.
func (s *Service) Root() string { return s.root }

// Config returns the workspace configuration.
func (s *Service) Config() *config.Config { return s.cfg }

// Store returns the backing store.
func (s *Service) Store() store.Store { return s.store }

// Now returns the service clock's current time.
func (s *Service) Now() time.Time { return s.now() }

// Today returns the service clock's calendar date.
func (s *Service) Today() model.Date { return model.DateOf(s.now()) }

// Document loads the current document, or an empty one on first run.
func (s *Service) Document(ctx context.Context) (*model.Document, error) {
	return store.LoadOrNew(ctx, s.store)
}

// Mutate loads the document, applies fn and saves the result. Nothing is
// saved when fn fails. action names the kind of change ("add", "delete",
// "import", ...).
func (s *Service) Mutate(ctx context.Context, action string, fn func(doc *model.Document) (Change, error)) (Change, error) {
	doc, err := s.Document(ctx)
	if err != nil {
		return Change{}, fmt.Errorf("loading document: %w", err)
	}
	ch, err := fn(doc)
	if err != nil {
		return Change{}, err
	}
	doc.Normalize()
	if err := s.store.Save(ctx, doc); err != nil {
		return Change{}, fmt.Errorf("saving document: %w", err)
	}
	s.logger.Info("document changed",
		log.FieldOperation, action, log.FieldEntity, ch.Entity, log.FieldEntityID, ch.EntityID)

	s.record(action, ch)
	return ch, nil
}

// record commits the workspace and appends the activity row. Both are
// best effort: the document is already saved.
func (s *Service) record(action string, ch Change) {
	hash := ""
	if s.cfg != nil && s.cfg.Git.AutoCommit && gitops.IsRepo(s.root) {
		msg := fmt.Sprintf("%s %s: %s", action, ch.Entity, ch.Details)
		author := gitops.Author{Name: s.cfg.Git.AuthorName, Email: s.cfg.Git.AuthorEmail}
		h, err := gitops.CommitAll(s.root, msg, author)
		if err != nil {
			s.logger.Warn("git commit failed", log.FieldError, err)
		}
		hash = h
	}

	entry := activity.Entry{
		Timestamp:  s.now(),
		Action:     action,
		Entity:     ch.Entity,
		EntityID:   ch.EntityID,
		Details:    ch.Details,
		CommitHash: hash,
	}
	if err := activity.Append(s.root, entry); err != nil {
		s.logger.Warn("activity log failed", log.FieldError, err)
	}
}

// History returns the newest activity rows first.
func (s *Service) History(limit int) ([]activity.Entry, error) {
	return activity.Tail(s.root, limit)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

func notFound(entity, id string) error {
	return fmt.Errorf("%s %q: %w", entity, id, ErrNotFound)
}
