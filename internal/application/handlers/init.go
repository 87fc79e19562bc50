// Package handlers contains application use case handlers.
package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/rulebook-core/internal/domain/ports"
	"github.com/ersonp/rulebook-core/internal/infrastructure/config"
)

// StoreOpener opens the source store described by a workspace config.
type StoreOpener func(cfg *config.Config) (ports.SourceStore, error)

// InitHandler handles workspace initialization.
type InitHandler struct {
	openStore StoreOpener
}

// NewInitHandler creates a new init handler. openStore may be nil to skip
// creating the source cache.
func NewInitHandler(openStore StoreOpener) *InitHandler {
	return &InitHandler{
		openStore: openStore,
	}
}

// InitResult contains the result of initialization.
type InitResult struct {
	ConfigPath string
	Sources    []string
}

// Handle initializes a rulebook workspace in basePath with the given
// default sources.
func (h *InitHandler) Handle(ctx context.Context, basePath string, sources []string) (*InitResult, error) {
	if config.Exists(basePath) {
		return nil, fmt.Errorf("rulebook already initialized in %s", basePath)
	}

	if err := config.WriteDefault(basePath); err != nil {
		return nil, fmt.Errorf("writing default config: %w", err)
	}

	cfg, err := config.Load(basePath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if len(sources) > 0 {
		for _, source := range sources {
			if err := cfg.AddSource(source); err != nil {
				return nil, err
			}
		}
		if err := config.Write(basePath, cfg); err != nil {
			return nil, fmt.Errorf("writing config: %w", err)
		}
	}

	if h.openStore != nil {
		store, err := h.openStore(cfg)
		if err != nil {
			return nil, fmt.Errorf("opening source cache: %w", err)
		}
		defer store.Close()

		if err := store.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("creating source cache: %w", err)
		}
	}

	return &InitResult{
		ConfigPath: config.ConfigFilePath(basePath),
		Sources:    cfg.Sources,
	}, nil
}
