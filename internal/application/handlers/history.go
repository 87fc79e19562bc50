package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/rulebook-core/internal/domain/entities"
	"github.com/ersonp/rulebook-core/internal/domain/ports"
)

// HistoryHandler lists recorded compile runs.
type HistoryHandler struct {
	store ports.SourceStore
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(store ports.SourceStore) *HistoryHandler {
	return &HistoryHandler{
		store: store,
	}
}

// Handle returns up to limit compile runs, newest first.
func (h *HistoryHandler) Handle(ctx context.Context, limit int) ([]entities.Compilation, error) {
	runs, err := h.store.ListCompilations(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing compilations: %w", err)
	}
	return runs, nil
}
