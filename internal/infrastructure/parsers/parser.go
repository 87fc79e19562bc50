// Package parsers decodes rulebook documents from YAML, JSON and TOML into
// ordered document trees.
package parsers

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/ersonp/rulebook-core/internal/domain/document"
)

// Supported formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatTOML = "toml"
)

// Parser decodes one rulebook document. Mapping keys keep the order they
// were written in.
type Parser interface {
	Parse(r io.Reader) (*document.Map, error)
}

// ForFormat returns the appropriate parser for the given format.
// Supported formats: "yaml" (or "yml"), "json", "toml".
func ForFormat(format string) Parser {
	switch strings.ToLower(format) {
	case FormatYAML, "yml":
		return &YAMLParser{}
	case FormatJSON:
		return &JSONParser{}
	case FormatTOML:
		return &TOMLParser{}
	default:
		return nil
	}
}

// ForFile returns the appropriate parser based on file extension.
func ForFile(filename string) Parser {
	return ForFormat(formatForExt(filepath.Ext(filename)))
}

func formatForExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	default:
		return ""
	}
}

// Auto implements ports.Decoder. It picks the format from the address
// extension and falls back to sniffing the content.
type Auto struct{}

// Format names the format Decode would use.
func (Auto) Format(address string, data []byte) string {
	if format := formatForExt(addressExt(address)); format != "" {
		return format
	}
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		return FormatJSON
	}
	return FormatYAML
}

// Decode parses data in the format chosen for address.
func (a Auto) Decode(address string, data []byte) (*document.Map, error) {
	format := a.Format(address, data)
	p := ForFormat(format)
	if p == nil {
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	return p.Parse(bytes.NewReader(data))
}

func addressExt(address string) string {
	if u, err := url.Parse(address); err == nil && u.Scheme != "" && u.Host != "" {
		return path.Ext(u.Path)
	}
	return filepath.Ext(address)
}

func asDocument(format string, v any) (*document.Map, error) {
	switch val := v.(type) {
	case nil:
		return document.New(), nil
	case *document.Map:
		return val, nil
	default:
		return nil, fmt.Errorf("parsing %s: top level must be a mapping, got %T", strings.ToUpper(format), v)
	}
}
