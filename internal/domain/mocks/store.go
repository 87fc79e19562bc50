package mocks

import (
	"context"
	"sort"

	"github.com/ersonp/rulebook-core/internal/domain/entities"
)

// SourceStore is a mock implementation of ports.SourceStore.
type SourceStore struct {
	Sources      map[string]*entities.Source
	Compilations []entities.Compilation
	Err          error
}

// NewSourceStore creates a new mock SourceStore.
func NewSourceStore() *SourceStore {
	return &SourceStore{Sources: make(map[string]*entities.Source)}
}

// EnsureSchema creates the database schema if it doesn't exist.
func (m *SourceStore) EnsureSchema(_ context.Context) error {
	return m.Err
}

// Close closes the database connection.
func (m *SourceStore) Close() error {
	return nil
}

// SaveSource saves or replaces a cached document.
func (m *SourceStore) SaveSource(_ context.Context, s *entities.Source) error {
	if m.Err != nil {
		return m.Err
	}
	m.Sources[s.Address] = s
	return nil
}

// FindSourceByAddress returns the cached document, or nil if none.
func (m *SourceStore) FindSourceByAddress(_ context.Context, address string) (*entities.Source, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Sources[address], nil
}

// ListSources lists cached documents ordered by address.
func (m *SourceStore) ListSources(_ context.Context) ([]entities.Source, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]entities.Source, 0, len(m.Sources))
	for _, s := range m.Sources {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Address < result[j].Address
	})
	return result, nil
}

// DeleteSource removes a cached document.
func (m *SourceStore) DeleteSource(_ context.Context, address string) error {
	if m.Err != nil {
		return m.Err
	}
	delete(m.Sources, address)
	return nil
}

// SaveCompilation records a compile run.
func (m *SourceStore) SaveCompilation(_ context.Context, c *entities.Compilation) error {
	if m.Err != nil {
		return m.Err
	}
	m.Compilations = append(m.Compilations, *c)
	return nil
}

// ListCompilations lists compile runs, newest first.
func (m *SourceStore) ListCompilations(_ context.Context, limit int) ([]entities.Compilation, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]entities.Compilation, 0, len(m.Compilations))
	for i := len(m.Compilations) - 1; i >= 0; i-- {
		result = append(result, m.Compilations[i])
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}
