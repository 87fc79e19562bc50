package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/rulebook-core/internal/domain/entities"
	"github.com/ersonp/rulebook-core/internal/domain/ports"
)

// SourcesHandler manages the cache of fetched rulebook documents.
type SourcesHandler struct {
	store ports.SourceStore
}

// NewSourcesHandler creates a new sources handler.
func NewSourcesHandler(store ports.SourceStore) *SourcesHandler {
	return &SourcesHandler{
		store: store,
	}
}

// List returns the cached documents ordered by address.
func (h *SourcesHandler) List(ctx context.Context) ([]entities.Source, error) {
	sources, err := h.store.ListSources(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sources: %w", err)
	}
	return sources, nil
}

// Remove drops the cached copy of address.
func (h *SourcesHandler) Remove(ctx context.Context, address string) error {
	if err := h.store.DeleteSource(ctx, address); err != nil {
		return fmt.Errorf("removing source: %w", err)
	}
	return nil
}
