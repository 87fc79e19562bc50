package parsers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/ersonp/rulebook-core/internal/domain/document"
)

// JSONParser parses rulebook documents from JSON, reading the token
// stream so object keys keep their order.
type JSONParser struct{}

// Parse reads one JSON object from the reader.
func (p *JSONParser) Parse(r io.Reader) (*document.Map, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()

	v, err := jsonValue(decoder)
	if errors.Is(err, io.EOF) {
		return document.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing JSON: unexpected data after top-level value")
	}
	return asDocument(FormatJSON, v)
}

func jsonValue(decoder *json.Decoder) (any, error) {
	tok, err := decoder.Token()
	if err != nil {
		return nil, err
	}
	v, err := jsonFromToken(decoder, tok)
	if errors.Is(err, io.EOF) {
		// EOF is only acceptable before the first token
		return nil, io.ErrUnexpectedEOF
	}
	return v, err
}

func jsonFromToken(decoder *json.Decoder, tok json.Token) (any, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			m := document.New()
			for decoder.More() {
				keyTok, err := decoder.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("expected object key, got %v", keyTok)
				}
				v, err := jsonValue(decoder)
				if err != nil {
					return nil, err
				}
				m.Set(key, v)
			}
			if _, err := decoder.Token(); err != nil {
				return nil, err
			}
			return m, nil
		case '[':
			out := make([]any, 0)
			for decoder.More() {
				v, err := jsonValue(decoder)
				if err != nil {
					return nil, err
				}
				out = append(out, v)
			}
			if _, err := decoder.Token(); err != nil {
				return nil, err
			}
			return out, nil
		default:
			return nil, fmt.Errorf("unexpected %v", t)
		}
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return int(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number %s: %w", t, err)
		}
		return f, nil
	default:
		// string, bool or nil
		return t, nil
	}
}
