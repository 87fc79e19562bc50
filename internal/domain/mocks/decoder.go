package mocks

import (
	"github.com/ersonp/rulebook-core/internal/domain/document"
)

// Decoder is a mock implementation of ports.Decoder that returns
// pre-built documents keyed by their raw content.
type Decoder struct {
	Documents map[string]*document.Map
	Err       error
}

// NewDecoder creates a new mock Decoder.
func NewDecoder() *Decoder {
	return &Decoder{Documents: make(map[string]*document.Map)}
}

// Format always reports "mock".
func (m *Decoder) Format(string, []byte) string {
	return "mock"
}

// Decode returns the document registered for data.
func (m *Decoder) Decode(_ string, data []byte) (*document.Map, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if doc, ok := m.Documents[string(data)]; ok {
		return doc, nil
	}
	return document.New(), nil
}
