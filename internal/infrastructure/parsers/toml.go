package parsers

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/ersonp/rulebook-core/internal/domain/document"
)

// TOMLParser parses rulebook documents from TOML. Key order follows the
// order keys appear in the file; keys the decoder does not report in
// order (inside arrays of tables) are sorted.
type TOMLParser struct{}

// Parse reads a TOML document from the reader.
func (p *TOMLParser) Parse(r io.Reader) (*document.Map, error) {
	var raw map[string]any
	md, err := toml.NewDecoder(r).Decode(&raw)
	if err != nil {
		return nil, fmt.Errorf("parsing TOML: %w", err)
	}

	root := document.New()
	for _, key := range md.Keys() {
		insertTOMLKey(root, raw, key)
	}
	fillTOML(root, raw)
	return root, nil
}

func insertTOMLKey(root *document.Map, raw map[string]any, key toml.Key) {
	parent, src := root, raw
	for i, part := range key {
		val, ok := src[part]
		if !ok {
			return
		}
		if sub, isTable := val.(map[string]any); isTable {
			existing, present := parent.Get(part)
			child, isMap := existing.(*document.Map)
			if present && !isMap {
				return
			}
			if !present {
				child = document.New()
				parent.Set(part, child)
			}
			parent, src = child, sub
			continue
		}
		if i == len(key)-1 && !parent.Has(part) {
			parent.Set(part, tomlValue(val))
		}
		return
	}
}

// fillTOML adds any key of src missing from dst, in sorted order.
func fillTOML(dst *document.Map, src map[string]any) {
	keys := make([]string, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		existing, ok := dst.Get(k)
		if !ok {
			dst.Set(k, tomlValue(src[k]))
			continue
		}
		if sub, isTable := src[k].(map[string]any); isTable {
			if child, isMap := existing.(*document.Map); isMap {
				fillTOML(child, sub)
			}
		}
	}
}

func tomlValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := document.New()
		fillTOML(m, val)
		return m
	case []map[string]any:
		out := make([]any, len(val))
		for i := range val {
			out[i] = tomlValue(val[i])
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i := range val {
			out[i] = tomlValue(val[i])
		}
		return out
	case time.Time:
		return val.Format(time.RFC3339)
	case fmt.Stringer:
		// local dates and times
		return val.String()
	default:
		return document.Normalize(v)
	}
}
