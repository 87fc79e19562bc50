package mocks

import (
	"context"
	"fmt"
)

// Fetcher is a mock implementation of ports.Fetcher.
type Fetcher struct {
	Documents map[string][]byte
	Err       error
	Calls     []string
}

// NewFetcher creates a new mock Fetcher.
func NewFetcher() *Fetcher {
	return &Fetcher{Documents: make(map[string][]byte)}
}

// Fetch returns the stored document for address.
func (m *Fetcher) Fetch(_ context.Context, address string) ([]byte, error) {
	m.Calls = append(m.Calls, address)
	if m.Err != nil {
		return nil, m.Err
	}
	data, ok := m.Documents[address]
	if !ok {
		return nil, fmt.Errorf("%s: not found", address)
	}
	return data, nil
}
