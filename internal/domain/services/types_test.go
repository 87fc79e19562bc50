package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/rulebook-core/internal/domain/document"
	"github.com/ersonp/rulebook-core/internal/domain/entities"
	"github.com/ersonp/rulebook-core/internal/domain/ruleerr"
)

// doc builds an ordered document from key/value pairs.
func doc(pairs ...any) *document.Map {
	m := document.New()
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i].(string), pairs[i+1])
	}
	return m
}

func TestTypeRegistry_SeededWithPresets(t *testing.T) {
	r := NewTypeRegistry()

	types := r.Types()
	require.Len(t, types, len(entities.PresetTypeNames))
	for i, ty := range types {
		assert.Equal(t, entities.PresetTypeNames[i], ty.Name)
	}
}

func TestTypeRegistry_ResolveUsage(t *testing.T) {
	r := NewTypeRegistry()

	tests := []struct {
		usage    string
		wantName string
		wantKind entities.TypeKind
	}{
		{usage: "text", wantName: "text", wantKind: entities.KindPreset},
		{usage: "long text", wantName: "long text", wantKind: entities.KindPreset},
		{usage: "number array", wantName: "number array", wantKind: entities.KindArray},
		{usage: "dice array array", wantName: "dice array array", wantKind: entities.KindArray},
	}

	for _, tt := range tests {
		t.Run(tt.usage, func(t *testing.T) {
			got, err := r.ResolveUsage(tt.usage)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, got.Name)
			assert.Equal(t, tt.wantKind, got.Kind)
		})
	}
}

func TestTypeRegistry_ResolveUnknown(t *testing.T) {
	r := NewTypeRegistry()

	_, err := r.ResolveUsage("stat array")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ruleerr.ErrTypeResolution))
	assert.Equal(t, "stat", ruleerr.MetadataOf(err, ruleerr.KeyName))
}

func TestTypeRegistry_DefineAlias(t *testing.T) {
	r := NewTypeRegistry()

	alias, err := r.DefineType("names", "text array")
	require.NoError(t, err)
	assert.Equal(t, "names", alias.Name)
	assert.Equal(t, entities.KindArray, alias.Kind)
	assert.Equal(t, "text", alias.Element.Name)

	got, ok := r.Lookup("names")
	require.True(t, ok)
	assert.Same(t, alias, got)
}

func TestTypeRegistry_DefineComplexReferencingEarlier(t *testing.T) {
	r := NewTypeRegistry()

	_, err := r.DefineType("stat", doc("value", "number", "label", "text"))
	require.NoError(t, err)

	sheet, err := r.DefineType("sheet", doc(
		"strength", "stat",
		"bonds", "text array",
		"gear", doc("weight", "number", "items", "stat array"),
	))
	require.NoError(t, err)

	assert.Equal(t, entities.KindComplex, sheet.Kind)
	strength, ok := sheet.FieldType("strength")
	require.True(t, ok)
	assert.Equal(t, entities.KindComplex, strength.Kind)
	value, ok := strength.FieldType("value")
	require.True(t, ok)
	assert.Equal(t, "number", value.Name)

	gear, ok := sheet.FieldType("gear")
	require.True(t, ok)
	items, ok := gear.FieldType("items")
	require.True(t, ok)
	assert.Equal(t, entities.KindArray, items.Kind)
	assert.Equal(t, "stat", items.Element.Name)

	// nested definition is registered under its field name
	_, ok = r.Lookup("gear")
	assert.True(t, ok)

	names := make([]string, 0)
	for _, ty := range r.Types()[len(entities.PresetTypeNames):] {
		names = append(names, ty.Name)
	}
	assert.Equal(t, []string{"stat", "gear", "sheet"}, names)
}

func TestTypeRegistry_DefineErrors(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(r *TypeRegistry)
		typeName string
		def      any
		wantErr  error
	}{
		{
			name:     "unknown field type",
			typeName: "sheet",
			def:      doc("a", "number", "b", "missing"),
			wantErr:  ruleerr.ErrTypeResolution,
		},
		{
			name:     "forward reference",
			typeName: "sheet",
			def:      doc("later", "defined later"),
			wantErr:  ruleerr.ErrTypeResolution,
		},
		{
			name:     "self reference",
			typeName: "node",
			def:      doc("children", "node array"),
			wantErr:  ruleerr.ErrTypeResolution,
		},
		{
			name:     "redefining a preset",
			typeName: "text",
			def:      "long text",
			wantErr:  ruleerr.ErrTypeResolution,
		},
		{
			name: "redefining a custom type",
			setup: func(r *TypeRegistry) {
				_, _ = r.DefineType("stat", "number")
			},
			typeName: "stat",
			def:      "text",
			wantErr:  ruleerr.ErrTypeResolution,
		},
		{
			name:     "non-text definition",
			typeName: "count",
			def:      3,
			wantErr:  ruleerr.ErrGrammar,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewTypeRegistry()
			if tt.setup != nil {
				tt.setup(r)
			}
			before := len(r.Types())

			got, err := r.DefineType(tt.typeName, tt.def)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Len(t, r.Types(), before)
		})
	}
}

func TestTypeRegistry_RecursiveMessage(t *testing.T) {
	r := NewTypeRegistry()
	_, err := r.DefineType("node", doc("next", "node"))
	assert.EqualError(t, err, `recursive type "node"`)
}

func TestTypeRegistry_NestedNameReused(t *testing.T) {
	r := NewTypeRegistry()

	hero, err := r.DefineType("hero", doc("stats", doc("might", "number")))
	require.NoError(t, err)
	villain, err := r.DefineType("villain", doc("stats", doc("menace", "number", "lair", "text")))
	require.NoError(t, err)

	heroStats, _ := hero.FieldType("stats")
	villainStats, ok := villain.FieldType("stats")
	require.True(t, ok)
	_, ok = villainStats.FieldType("menace")
	assert.True(t, ok)

	// the first nested definition keeps the name
	registered, ok := r.Lookup("stats")
	require.True(t, ok)
	assert.Same(t, heroStats, registered)
	assert.Len(t, r.Types(), len(entities.PresetTypeNames)+3)

	// top-level definitions still may not reuse a name
	_, err = r.DefineType("stats", "number")
	assert.ErrorIs(t, err, ruleerr.ErrTypeResolution)
}
