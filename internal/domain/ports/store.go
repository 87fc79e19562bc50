package ports

import (
	"context"

	"github.com/ersonp/rulebook-core/internal/domain/entities"
)

// SourceStore caches fetched rulebook documents and records compile runs.
type SourceStore interface {
	// EnsureSchema creates the database schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// Close closes the database connection.
	Close() error

	// SaveSource saves or replaces the cached copy of a document,
	// keyed by address.
	SaveSource(ctx context.Context, source *entities.Source) error

	// FindSourceByAddress returns the cached document, or nil if none.
	FindSourceByAddress(ctx context.Context, address string) (*entities.Source, error)

	// ListSources lists cached documents ordered by address.
	ListSources(ctx context.Context) ([]entities.Source, error)

	// DeleteSource removes a cached document.
	DeleteSource(ctx context.Context, address string) error

	// SaveCompilation records a compile run.
	SaveCompilation(ctx context.Context, c *entities.Compilation) error

	// ListCompilations lists compile runs, newest first.
	ListCompilations(ctx context.Context, limit int) ([]entities.Compilation, error)
}
