package ports

import "context"

// Fetcher retrieves the raw bytes of a rulebook document.
type Fetcher interface {
	// Fetch reads the document at address, a file path or URL.
	Fetch(ctx context.Context, address string) ([]byte, error)
}
