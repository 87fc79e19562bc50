package entities

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ersonp/rulebook-core/internal/domain/document"
)

// TypeKind tags the variant a Type holds.
type TypeKind int

const (
	// KindPreset is a built-in primitive identified by name.
	KindPreset TypeKind = iota
	// KindComplex is an author-defined record of named field types.
	KindComplex
	// KindArray is a sequence of one element type.
	KindArray
)

// String returns the kind name.
func (k TypeKind) String() string {
	switch k {
	case KindPreset:
		return "preset"
	case KindComplex:
		return "complex"
	case KindArray:
		return "array"
	default:
		return fmt.Sprintf("TypeKind(%d)", int(k))
	}
}

// MarshalText renders the kind by name in exports.
func (k TypeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Type is a rulebook value type.
type Type struct {
	Kind    TypeKind    `json:"kind"`
	Name    string      `json:"name"`
	Fields  []TypeField `json:"fields,omitempty"`  // KindComplex only, declaration order
	Element *Type       `json:"element,omitempty"` // KindArray only
}

// TypeField is one named field of a complex type.
type TypeField struct {
	Name string `json:"name"`
	Type *Type  `json:"type"`
}

// NewPresetType creates a built-in type.
func NewPresetType(name string) *Type {
	return &Type{Kind: KindPreset, Name: name}
}

// NewComplexType creates a complex type from ordered fields.
func NewComplexType(name string, fields []TypeField) *Type {
	return &Type{Kind: KindComplex, Name: name, Fields: fields}
}

// NewArrayType wraps element in an array type named "<element> array".
func NewArrayType(element *Type) *Type {
	return &Type{Kind: KindArray, Name: element.Name + " array", Element: element}
}

// Renamed returns a shallow copy of t registered under another name.
func (t *Type) Renamed(name string) *Type {
	alias := *t
	alias.Name = name
	return &alias
}

// FieldType returns the type of a complex type's field.
func (t *Type) FieldType(name string) (*Type, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return nil, false
}

// FieldTypes returns the complex type's fields as a name→Type mapping.
func (t *Type) FieldTypes() map[string]*Type {
	out := make(map[string]*Type, len(t.Fields))
	for _, f := range t.Fields {
		out[f.Name] = f.Type
	}
	return out
}

var diceRegex = regexp.MustCompile(`^\d*d\d+([+-]\d+)?$`)

// ParseValue coerces a raw document value into a value of this type.
// Complex values come back as *document.Map in field declaration order.
func (t *Type) ParseValue(raw any) (any, error) {
	switch t.Kind {
	case KindArray:
		seq, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("expected a list of %s, got %T", t.Element.Name, raw)
		}
		out := make([]any, len(seq))
		for i, item := range seq {
			v, err := t.Element.ParseValue(item)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			out[i] = v
		}
		return out, nil

	case KindComplex:
		m, ok := raw.(*document.Map)
		if !ok {
			return nil, fmt.Errorf("expected a %s mapping, got %T", t.Name, raw)
		}
		for _, key := range m.Keys() {
			if _, ok := t.FieldType(key); !ok {
				return nil, fmt.Errorf("%s has no field %q", t.Name, key)
			}
		}
		out := document.New()
		for _, f := range t.Fields {
			v, ok := m.Get(f.Name)
			if !ok {
				continue
			}
			parsed, err := f.Type.ParseValue(v)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", f.Name, err)
			}
			out.Set(f.Name, parsed)
		}
		return out, nil

	default:
		return parsePresetValue(t.Name, raw)
	}
}

func parsePresetValue(name string, raw any) (any, error) {
	switch name {
	case PresetNumber:
		switch v := raw.(type) {
		case int, float64:
			return v, nil
		case string:
			if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				return i, nil
			}
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return nil, fmt.Errorf("expected a number, got %q", v)
			}
			return f, nil
		default:
			return nil, fmt.Errorf("expected a number, got %T", raw)
		}

	case PresetBoolean:
		switch v := raw.(type) {
		case bool:
			return v, nil
		case string:
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "true", "yes":
				return true, nil
			case "false", "no":
				return false, nil
			}
			return nil, fmt.Errorf("expected yes or no, got %q", v)
		default:
			return nil, fmt.Errorf("expected yes or no, got %T", raw)
		}

	case PresetDice:
		s, ok := raw.(string)
		if !ok || !diceRegex.MatchString(strings.TrimSpace(s)) {
			return nil, fmt.Errorf("expected dice notation like 2d6+1, got %v", raw)
		}
		return strings.TrimSpace(s), nil

	default:
		// text-like presets take any scalar as text
		switch v := raw.(type) {
		case string:
			return v, nil
		case int, float64, bool:
			return fmt.Sprint(v), nil
		default:
			return nil, fmt.Errorf("expected %s, got %T", name, raw)
		}
	}
}
