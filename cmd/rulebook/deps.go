package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gofrs/flock"

	"github.com/ersonp/rulebook-core/internal/application/handlers"
	"github.com/ersonp/rulebook-core/internal/domain/ports"
	"github.com/ersonp/rulebook-core/internal/domain/services"
	"github.com/ersonp/rulebook-core/internal/infrastructure/config"
	"github.com/ersonp/rulebook-core/internal/infrastructure/fetcher"
	"github.com/ersonp/rulebook-core/internal/infrastructure/parsers"
	"github.com/ersonp/rulebook-core/internal/infrastructure/relationaldb/sqlite"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and repositories stay inside withDeps.
type Deps struct {
	Config         *config.Config
	BasePath       string
	CompileHandler *handlers.CompileHandler
	SourcesHandler *handlers.SourcesHandler
	HistoryHandler *handlers.HistoryHandler
}

// withDeps loads config and builds dependencies, then calls the provided function.
// It handles cleanup automatically.
func withDeps(fn func(*Deps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	repo, err := newRepository(cwd, cfg)
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := repo.EnsureSchema(context.Background()); err != nil {
		return fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	logger := newLogger()
	loader := services.NewLoaderService(
		fetcher.NewFetcher(cfg.Fetch, cwd),
		parsers.Auto{},
		repo,
		services.LoaderOptions{
			OfflineFallback: cfg.Fetch.OfflineFallback,
			Logger:          logger,
		},
	)

	deps := &Deps{
		Config:         cfg,
		BasePath:       cwd,
		CompileHandler: handlers.NewCompileHandler(loader, repo, logger),
		SourcesHandler: handlers.NewSourcesHandler(repo),
		HistoryHandler: handlers.NewHistoryHandler(repo),
	}

	return fn(deps)
}

// newRepository opens the workspace source cache.
func newRepository(basePath string, cfg *config.Config) (*sqlite.Repository, error) {
	repo, err := sqlite.NewRepository(config.SQLiteConfig{Path: cfg.SQLitePath(basePath)})
	if err != nil {
		return nil, fmt.Errorf("creating sqlite repository: %w", err)
	}
	return repo, nil
}

// openStore returns a StoreOpener for the workspace at basePath.
func openStore(basePath string) handlers.StoreOpener {
	return func(cfg *config.Config) (ports.SourceStore, error) {
		repo, err := newRepository(basePath, cfg)
		if err != nil {
			return nil, err
		}
		return repo, nil
	}
}

// newLogger returns a stderr logger when --verbose is set.
func newLogger() *log.Logger {
	if !globalVerbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "rulebook: ", log.Ltime)
}

// acquireWorkspaceLock prevents concurrent compiles from racing on the
// source cache. Returns the lock (caller must defer Unlock()) or error if
// lock held.
func acquireWorkspaceLock(ctx context.Context, basePath string) (*flock.Flock, error) {
	lockPath := config.LockFilePath(basePath)
	lock := flock.New(lockPath)

	ctx, cancel := context.WithTimeout(ctx, LockTimeout)
	defer cancel()

	locked, err := lock.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("lock acquisition failed: %w", err)
	}

	if !locked {
		return nil, fmt.Errorf("another compile is in progress (lock held: %s)", lockPath)
	}

	return lock, nil
}
