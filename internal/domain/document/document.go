// Package document provides the ordered key/value tree that rulebook
// sources decode into. Declaration order is significant to the compiler
// (types resolve top to bottom, later formulas shadow earlier ones), so the
// tree never goes through a plain Go map.
package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Map is an insertion-ordered mapping of string keys to values.
// Values are string, int, float64, bool, nil, []any or *Map.
type Map struct {
	keys   []string
	values map[string]any
}

// New returns an empty Map.
func New() *Map {
	return &Map{values: make(map[string]any)}
}

// Set stores value under key. Overwriting keeps the key's original position.
func (m *Map) Set(key string, value any) {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// GetString returns the value under key if it is a string.
func (m *Map) GetString(key string) (string, bool) {
	v, ok := m.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetMap returns the value under key if it is a nested Map.
func (m *Map) GetMap(key string) (*Map, bool) {
	v, ok := m.Get(key)
	if !ok {
		return nil, false
	}
	nested, ok := v.(*Map)
	return nested, ok
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Keys returns the keys in declaration order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Each calls fn for every entry in declaration order and stops at the first error.
func (m *Map) Each(fn func(key string, value any) error) error {
	if m == nil {
		return nil
	}
	for _, k := range m.keys {
		if err := fn(k, m.values[k]); err != nil {
			return err
		}
	}
	return nil
}

// FromMap converts a plain Go map into a Map. Go maps carry no order, so keys
// are sorted; nested map[string]any values are converted recursively.
func FromMap(raw map[string]any) *Map {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	m := New()
	for _, k := range keys {
		m.Set(k, Normalize(raw[k]))
	}
	return m
}

// Normalize converts decoder output into the value set a Map holds.
func Normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return FromMap(val)
	case []any:
		out := make([]any, len(val))
		for i := range val {
			out[i] = Normalize(val[i])
		}
		return out
	case []map[string]any:
		out := make([]any, len(val))
		for i := range val {
			out[i] = FromMap(val[i])
		}
		return out
	case int64:
		return int(val)
	case int32:
		return int(val)
	case uint64:
		return int(val)
	case float32:
		return float64(val)
	default:
		return v
	}
}

// ToMap converts the Map into plain Go values, losing key order.
func (m *Map) ToMap() map[string]any {
	out := make(map[string]any, m.Len())
	_ = m.Each(func(k string, v any) error {
		out[k] = toPlain(v)
		return nil
	})
	return out
}

func toPlain(v any) any {
	switch val := v.(type) {
	case *Map:
		return val.ToMap()
	case []any:
		out := make([]any, len(val))
		for i := range val {
			out[i] = toPlain(val[i])
		}
		return out
	default:
		return v
	}
}

// MarshalJSON writes the entries in declaration order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, fmt.Errorf("marshaling key %q: %w", k, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// IsEmpty reports whether v counts as "no value supplied": nil, an empty
// string, an empty sequence or an empty mapping.
func IsEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case []any:
		return len(val) == 0
	case *Map:
		return val.Len() == 0
	default:
		return false
	}
}
