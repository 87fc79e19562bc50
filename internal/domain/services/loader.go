package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/ersonp/rulebook-core/internal/domain/document"
	"github.com/ersonp/rulebook-core/internal/domain/entities"
	"github.com/ersonp/rulebook-core/internal/domain/ports"
)

// LoaderOptions configures a LoaderService.
type LoaderOptions struct {
	// OfflineFallback serves the cached copy when a fetch fails.
	OfflineFallback bool
	Logger          *log.Logger
}

// LoaderService fetches and decodes rulebook documents, caching the raw
// bytes in the source store when one is configured.
type LoaderService struct {
	fetcher ports.Fetcher
	decoder ports.Decoder
	store   ports.SourceStore
	offline bool
	logger  *log.Logger
}

// NewLoaderService creates a new LoaderService. store may be nil.
func NewLoaderService(fetcher ports.Fetcher, decoder ports.Decoder, store ports.SourceStore, opts LoaderOptions) *LoaderService {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &LoaderService{
		fetcher: fetcher,
		decoder: decoder,
		store:   store,
		offline: opts.OfflineFallback,
		logger:  logger,
	}
}

// Load fetches and decodes the document at address.
func (s *LoaderService) Load(ctx context.Context, address string) (*document.Map, error) {
	data, err := s.fetcher.Fetch(ctx, address)
	if err != nil {
		cached, cacheErr := s.cached(ctx, address)
		if cacheErr != nil || cached == nil {
			return nil, fmt.Errorf("fetching %s: %w", address, err)
		}
		s.logger.Printf("fetch %s failed (%v), using copy cached at %s", address, err, cached.FetchedAt.Format(time.RFC3339))
		return s.decode(address, cached.Content)
	}

	doc, err := s.decode(address, data)
	if err != nil {
		return nil, err
	}

	if s.store != nil {
		source := &entities.Source{
			Address:   address,
			Format:    s.decoder.Format(address, data),
			Checksum:  checksum(data),
			Content:   data,
			FetchedAt: time.Now().UTC(),
		}
		if err := s.store.SaveSource(ctx, source); err != nil {
			return nil, fmt.Errorf("caching %s: %w", address, err)
		}
		s.logger.Printf("cached %s (%s, %d bytes)", address, source.Format, len(data))
	}
	return doc, nil
}

// LoadAll loads every address in order.
func (s *LoaderService) LoadAll(ctx context.Context, addresses []string) ([]*document.Map, error) {
	docs := make([]*document.Map, 0, len(addresses))
	for _, address := range addresses {
		doc, err := s.Load(ctx, address)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// LoadCached decodes the cached copy of address without fetching it.
func (s *LoaderService) LoadCached(ctx context.Context, address string) (*document.Map, error) {
	if s.store == nil {
		return nil, fmt.Errorf("no source cache configured")
	}
	cached, err := s.store.FindSourceByAddress(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("finding cached %s: %w", address, err)
	}
	if cached == nil {
		return nil, fmt.Errorf("%s is not cached", address)
	}
	return s.decode(address, cached.Content)
}

func (s *LoaderService) cached(ctx context.Context, address string) (*entities.Source, error) {
	if !s.offline || s.store == nil {
		return nil, nil
	}
	return s.store.FindSourceByAddress(ctx, address)
}

func (s *LoaderService) decode(address string, data []byte) (*document.Map, error) {
	doc, err := s.decoder.Decode(address, data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", address, err)
	}
	return doc, nil
}

func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
