// Package fetcher provides a Fetcher implementation for local files and
// http(s) URLs.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/ersonp/rulebook-core/internal/infrastructure/config"
)

// MaxDocumentSize caps the bytes read from a single document.
const MaxDocumentSize = 16 << 20

// Fetcher implements the Fetcher interface.
type Fetcher struct {
	client  *http.Client
	baseDir string
}

// NewFetcher creates a fetcher. Relative file paths resolve against baseDir.
func NewFetcher(cfg config.FetchConfig, baseDir string) *Fetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultFetchTimeout
	}
	return &Fetcher{
		client:  &http.Client{Timeout: timeout},
		baseDir: baseDir,
	}
}

// Fetch reads the document at address, a file path or URL.
func (f *Fetcher) Fetch(ctx context.Context, address string) ([]byte, error) {
	if address == "" {
		return nil, errors.New("address is required")
	}

	u, err := url.Parse(address)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// Windows drive letters parse as one-letter schemes
		return f.readFile(address)
	}

	switch u.Scheme {
	case "http", "https":
		return f.get(ctx, u.String())
	case "file":
		return f.readFile(u.Path)
	default:
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
}

func (f *Fetcher) readFile(path string) ([]byte, error) {
	if !filepath.IsAbs(path) && f.baseDir != "" {
		path = filepath.Join(f.baseDir, path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	return readLimited(file)
}

func (f *Fetcher) get(ctx context.Context, address string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, address, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", strings.Join([]string{
		"application/yaml",
		"application/json",
		"application/toml",
		"text/plain;q=0.9",
		"*/*;q=0.8",
	}, ", "))

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	return readLimited(resp.Body)
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	if len(data) > MaxDocumentSize {
		return nil, fmt.Errorf("document exceeds %d bytes", MaxDocumentSize)
	}
	return data, nil
}
