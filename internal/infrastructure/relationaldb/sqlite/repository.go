// Package sqlite provides a SQLite implementation of the SourceStore interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ersonp/rulebook-core/internal/domain/entities"
	"github.com/ersonp/rulebook-core/internal/infrastructure/config"
	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// generateUUID returns a new UUID string.
func generateUUID() string {
	return uuid.New().String()
}

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// Repository implements ports.SourceStore using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// One connection keeps ":memory:" databases shared and serializes writers
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	-- Cached rulebook documents, one row per address
	CREATE TABLE IF NOT EXISTS sources (
		id TEXT PRIMARY KEY,
		address TEXT NOT NULL UNIQUE,
		format TEXT NOT NULL,
		checksum TEXT NOT NULL,
		content BLOB NOT NULL,
		fetched_at TIMESTAMP NOT NULL
	);

	-- Compile runs
	CREATE TABLE IF NOT EXISTS compilations (
		id TEXT PRIMARY KEY,
		sources TEXT NOT NULL,
		mechanisms INTEGER NOT NULL DEFAULT 0,
		playbooks INTEGER NOT NULL DEFAULT 0,
		warnings INTEGER NOT NULL DEFAULT 0,
		error TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_compilations_created ON compilations(created_at);
	`

	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// SaveSource saves or replaces the cached copy of a document. A missing
// ID or fetch time is filled in.
func (r *Repository) SaveSource(ctx context.Context, source *entities.Source) error {
	if source.ID == "" {
		source.ID = generateUUID()
	}
	if source.FetchedAt.IsZero() {
		source.FetchedAt = timeNow()
	}

	query := `
		INSERT INTO sources (id, address, format, checksum, content, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(address) DO UPDATE SET
			format = excluded.format,
			checksum = excluded.checksum,
			content = excluded.content,
			fetched_at = excluded.fetched_at
	`
	_, err := r.db.ExecContext(ctx, query,
		source.ID,
		source.Address,
		source.Format,
		source.Checksum,
		source.Content,
		source.FetchedAt,
	)
	if err != nil {
		return fmt.Errorf("saving source: %w", err)
	}
	return nil
}

// FindSourceByAddress returns the cached document, or nil if none.
func (r *Repository) FindSourceByAddress(ctx context.Context, address string) (*entities.Source, error) {
	query := `
		SELECT id, address, format, checksum, content, fetched_at
		FROM sources
		WHERE address = ?
	`
	row := r.db.QueryRowContext(ctx, query, address)

	var source entities.Source
	err := row.Scan(
		&source.ID,
		&source.Address,
		&source.Format,
		&source.Checksum,
		&source.Content,
		&source.FetchedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning source: %w", err)
	}
	return &source, nil
}

// ListSources lists cached documents ordered by address. Content is not
// loaded.
func (r *Repository) ListSources(ctx context.Context) ([]entities.Source, error) {
	query := `
		SELECT id, address, format, checksum, fetched_at
		FROM sources
		ORDER BY address
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying sources: %w", err)
	}
	defer rows.Close()

	var result []entities.Source
	for rows.Next() {
		var source entities.Source
		if err := rows.Scan(
			&source.ID,
			&source.Address,
			&source.Format,
			&source.Checksum,
			&source.FetchedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning source: %w", err)
		}
		result = append(result, source)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sources: %w", err)
	}
	return result, nil
}

// DeleteSource removes a cached document.
func (r *Repository) DeleteSource(ctx context.Context, address string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sources WHERE address = ?`, address)
	if err != nil {
		return fmt.Errorf("deleting source: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted source: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("source %q is not cached", address)
	}
	return nil
}

// SaveCompilation records a compile run. A missing ID or creation time is
// filled in.
func (r *Repository) SaveCompilation(ctx context.Context, c *entities.Compilation) error {
	if c.ID == "" {
		c.ID = generateUUID()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = timeNow()
	}

	sources, err := json.Marshal(c.Sources)
	if err != nil {
		return fmt.Errorf("marshaling compilation sources: %w", err)
	}

	query := `
		INSERT INTO compilations (id, sources, mechanisms, playbooks, warnings, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		c.ID,
		string(sources),
		c.Mechanisms,
		c.Playbooks,
		c.Warnings,
		c.Error,
		c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving compilation: %w", err)
	}
	return nil
}

// ListCompilations lists compile runs, newest first. A limit of zero or
// less returns every run.
func (r *Repository) ListCompilations(ctx context.Context, limit int) ([]entities.Compilation, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `
		SELECT id, sources, mechanisms, playbooks, warnings, error, created_at
		FROM compilations
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying compilations: %w", err)
	}
	defer rows.Close()

	var result []entities.Compilation
	for rows.Next() {
		var (
			c       entities.Compilation
			sources string
		)
		if err := rows.Scan(
			&c.ID,
			&sources,
			&c.Mechanisms,
			&c.Playbooks,
			&c.Warnings,
			&c.Error,
			&c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning compilation: %w", err)
		}
		if err := json.Unmarshal([]byte(sources), &c.Sources); err != nil {
			return nil, fmt.Errorf("unmarshaling compilation sources: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating compilations: %w", err)
	}
	return result, nil
}
