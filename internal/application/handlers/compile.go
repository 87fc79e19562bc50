package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ersonp/rulebook-core/internal/domain/document"
	"github.com/ersonp/rulebook-core/internal/domain/entities"
	"github.com/ersonp/rulebook-core/internal/domain/ports"
	"github.com/ersonp/rulebook-core/internal/domain/services"
)

// CompileHandler loads rulebook documents, compiles them and records the
// run in the source store.
type CompileHandler struct {
	loader *services.LoaderService
	store  ports.SourceStore
	logger *log.Logger
}

// NewCompileHandler creates a new compile handler. store and logger may
// be nil.
func NewCompileHandler(loader *services.LoaderService, store ports.SourceStore, logger *log.Logger) *CompileHandler {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &CompileHandler{
		loader: loader,
		store:  store,
		logger: logger,
	}
}

// CompileRequest describes one compile run.
type CompileRequest struct {
	// Addresses are document addresses, core rulebook first.
	Addresses []string
	Strict    bool
	// Cached compiles from the source cache without fetching.
	Cached bool
}

// CompileResult contains the result of a compile run.
type CompileResult struct {
	Rulebook    *entities.Rulebook
	Compilation *entities.Compilation
}

// Handle compiles the requested documents. Failed runs are recorded too.
func (h *CompileHandler) Handle(ctx context.Context, req CompileRequest) (*CompileResult, error) {
	if len(req.Addresses) == 0 {
		return nil, errors.New("no sources to compile (add one with 'rulebook sources add')")
	}

	run := &entities.Compilation{
		ID:        uuid.New().String(),
		Sources:   req.Addresses,
		CreatedAt: time.Now().UTC(),
	}

	docs, err := h.load(ctx, req)
	if err != nil {
		h.recordFailure(ctx, run, err)
		return nil, err
	}

	h.logger.Printf("compiling %d document(s)", len(docs))
	rb, err := services.Compile(docs, services.CompileOptions{Strict: req.Strict})
	if err != nil {
		h.recordFailure(ctx, run, err)
		return nil, fmt.Errorf("compiling rulebook: %w", err)
	}

	run.Mechanisms = len(rb.Mechanisms)
	run.Playbooks = len(rb.PlaybookNames)
	run.Warnings = len(rb.Warnings)

	if h.store != nil {
		if err := h.store.SaveCompilation(ctx, run); err != nil {
			return nil, fmt.Errorf("recording compilation: %w", err)
		}
	}
	h.logger.Printf("compiled %d mechanism(s), %d playbook(s), %d warning(s)", run.Mechanisms, run.Playbooks, run.Warnings)

	return &CompileResult{
		Rulebook:    rb,
		Compilation: run,
	}, nil
}

func (h *CompileHandler) load(ctx context.Context, req CompileRequest) ([]*document.Map, error) {
	if !req.Cached {
		return h.loader.LoadAll(ctx, req.Addresses)
	}

	docs := make([]*document.Map, 0, len(req.Addresses))
	for _, address := range req.Addresses {
		doc, err := h.loader.LoadCached(ctx, address)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// recordFailure stores a failed run; a store error is only logged so the
// compile error reaches the caller.
func (h *CompileHandler) recordFailure(ctx context.Context, run *entities.Compilation, cause error) {
	if h.store == nil {
		return
	}
	run.Error = cause.Error()
	if err := h.store.SaveCompilation(ctx, run); err != nil {
		h.logger.Printf("recording failed compilation: %v", err)
	}
}
