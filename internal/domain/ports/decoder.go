package ports

import "github.com/ersonp/rulebook-core/internal/domain/document"

// Decoder turns raw document bytes into an ordered document tree.
type Decoder interface {
	// Format names the encoding Decode would use for data read from address.
	Format(address string, data []byte) string

	// Decode decodes data read from address. The address is used only to
	// pick a format.
	Decode(address string, data []byte) (*document.Map, error)
}
