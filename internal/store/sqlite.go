package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"

	"github.com/tally-dev/tally/internal/log"
	"github.com/tally-dev/tally/internal/model"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Revision describes one saved version of the document.
type Revision struct {
	ID      int64
	SavedAt time.Time
	Size    int
}

// SQLiteStore keeps every saved document as a revision row. Load returns
// the newest one.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *log.Logger
	now    func() time.Time
}

// OpenSQLite opens (creating if needed) the database at path and brings its
// schema up to date.
func OpenSQLite(path string, logger *log.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = log.Discard()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}
	if err := runMigrations(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("configure sqlite: %w", err)
		}
	}
	logger.Debug("sqlite opened", log.FieldPath, path, log.FieldBackend, "sqlite")
	return &SQLiteStore{db: db, path: path, logger: logger, now: time.Now}, nil
}

func runMigrations(path string) error {
	// Separate connection: closing the migrator closes its database.
	migrateDB, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open migration database: %w", err)
	}
	defer migrateDB.Close()

	driver, err := sqlite.WithInstance(migrateDB, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("create sqlite driver: %w", err)
	}
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string { return s.path }

// Load returns the newest revision, or ErrNotFound when none exists.
func (s *SQLiteStore) Load(ctx context.Context) (*model.Document, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM revisions ORDER BY id DESC LIMIT 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading latest revision: %w", err)
	}
	return Import([]byte(data))
}

// Save appends doc as a new revision.
func (s *SQLiteStore) Save(ctx context.Context, doc *model.Document) error {
	data, err := Export(doc)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO revisions (saved_at, document) VALUES (?, ?)`,
		s.now().UTC().Format(time.RFC3339Nano), string(data))
	if err != nil {
		return fmt.Errorf("inserting revision: %w", err)
	}
	id, _ := res.LastInsertId()
	s.logger.Debug("revision saved", log.FieldBackend, "sqlite", "revision", id)
	return nil
}

// Revisions lists up to limit revisions, newest first. A limit of zero or
// less lists all of them.
func (s *SQLiteStore) Revisions(ctx context.Context, limit int) ([]Revision, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, saved_at, length(CAST(document AS BLOB)) FROM revisions ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing revisions: %w", err)
	}
	defer rows.Close()

	var out []Revision
	for rows.Next() {
		var (
			r       Revision
			savedAt string
		)
		if err := rows.Scan(&r.ID, &savedAt, &r.Size); err != nil {
			return nil, fmt.Errorf("scanning revision: %w", err)
		}
		r.SavedAt, _ = time.Parse(time.RFC3339Nano, savedAt)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing revisions: %w", err)
	}
	return out, nil
}

// LoadRevision returns the document saved as revision id.
func (s *SQLiteStore) LoadRevision(ctx context.Context, id int64) (*model.Document, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT document FROM revisions WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("revision %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading revision %d: %w", id, err)
	}
	return Import([]byte(data))
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
