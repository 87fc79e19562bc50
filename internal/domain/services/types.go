package services

import (
	"github.com/ersonp/rulebook-core/internal/domain/document"
	"github.com/ersonp/rulebook-core/internal/domain/entities"
	"github.com/ersonp/rulebook-core/internal/domain/grammar"
	"github.com/ersonp/rulebook-core/internal/domain/ruleerr"
)

var arrayFlag = grammar.Suffix("array")

// TypeRegistry holds the named types visible to one mechanism compile.
// Types resolve only against names registered before them.
type TypeRegistry struct {
	types    []*entities.Type
	index    map[string]*entities.Type
	defining map[string]bool
}

// NewTypeRegistry creates a registry seeded with the preset types.
func NewTypeRegistry() *TypeRegistry {
	r := &TypeRegistry{
		index:    make(map[string]*entities.Type),
		defining: make(map[string]bool),
	}
	for _, t := range entities.PresetTypes() {
		r.register(t)
	}
	return r
}

func (r *TypeRegistry) register(t *entities.Type) {
	r.types = append(r.types, t)
	r.index[t.Name] = t
}

// Lookup returns the registered type named name.
func (r *TypeRegistry) Lookup(name string) (*entities.Type, bool) {
	t, ok := r.index[name]
	return t, ok
}

// Types returns every registered type in registration order.
func (r *TypeRegistry) Types() []*entities.Type {
	out := make([]*entities.Type, len(r.types))
	copy(out, r.types)
	return out
}

// ResolveUsage turns a usage such as "stat" or "stat array" into a type.
func (r *TypeRegistry) ResolveUsage(usage string) (*entities.Type, error) {
	if m := arrayFlag.Extract(usage); m.Matched {
		element, err := r.ResolveUsage(m.Remainder)
		if err != nil {
			return nil, err
		}
		return entities.NewArrayType(element), nil
	}

	if r.defining[usage] {
		return nil, ruleerr.RecursiveType(usage)
	}
	t, ok := r.index[usage]
	if !ok {
		return nil, ruleerr.UnknownType(usage)
	}
	return t, nil
}

// DefineType registers a type under name. A string definition aliases an
// existing type; a mapping defines a complex type whose fields are usages
// or nested definitions. Nothing is registered when an error is returned
// for a scalar definition; nested types defined before the failure stay.
func (r *TypeRegistry) DefineType(name string, definition any) (*entities.Type, error) {
	if _, exists := r.index[name]; exists || r.defining[name] {
		return nil, ruleerr.DuplicateType(name)
	}

	switch def := definition.(type) {
	case string:
		t, err := r.ResolveUsage(def)
		if err != nil {
			return nil, err
		}
		alias := t.Renamed(name)
		r.register(alias)
		return alias, nil

	case *document.Map:
		t, err := r.defineComplex(name, def)
		if err != nil {
			return nil, err
		}
		r.register(t)
		return t, nil

	default:
		return nil, ruleerr.Grammar("type %q must be a type name or a mapping of fields, got %T", name, definition).
			With(ruleerr.KeyName, name)
	}
}

func (r *TypeRegistry) defineComplex(name string, def *document.Map) (*entities.Type, error) {
	r.defining[name] = true
	defer delete(r.defining, name)

	fields := make([]entities.TypeField, 0, def.Len())
	err := def.Each(func(field string, usage any) error {
		var (
			ft  *entities.Type
			err error
		)
		if s, ok := usage.(string); ok {
			ft, err = r.ResolveUsage(s)
		} else {
			ft, err = r.defineNested(field, usage)
		}
		if err != nil {
			return err
		}
		fields = append(fields, entities.TypeField{Name: field, Type: ft})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entities.NewComplexType(name, fields), nil
}

// defineNested defines a type written inline as a field. The first nested
// definition of a name is registered; later ones only type their field.
func (r *TypeRegistry) defineNested(name string, definition any) (*entities.Type, error) {
	def, ok := definition.(*document.Map)
	if !ok || r.defining[name] {
		return r.DefineType(name, definition)
	}
	if _, exists := r.index[name]; !exists {
		return r.DefineType(name, def)
	}
	return r.defineComplex(name, def)
}
