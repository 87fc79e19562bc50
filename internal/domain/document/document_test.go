package document

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_KeepsInsertionOrder(t *testing.T) {
	m := New()
	m.Set("zeta", 1)
	m.Set("alpha", 2)
	m.Set("mid", 3)
	m.Set("zeta", 4)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, m.Keys())
	v, ok := m.Get("zeta")
	require.True(t, ok)
	assert.Equal(t, 4, v)
}

func TestMap_NilSafe(t *testing.T) {
	var m *Map
	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Keys())
	_, ok := m.Get("x")
	assert.False(t, ok)
	assert.NoError(t, m.Each(func(string, any) error { return nil }))
}

func TestFromMap_SortsAndConvertsNested(t *testing.T) {
	m := FromMap(map[string]any{
		"b": map[string]any{"y": int64(2), "x": 1},
		"a": []any{map[string]any{"k": "v"}},
	})

	assert.Equal(t, []string{"a", "b"}, m.Keys())
	nested, ok := m.GetMap("b")
	require.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, nested.Keys())
	y, _ := nested.Get("y")
	assert.Equal(t, 2, y)

	seq, _ := m.Get("a")
	require.Len(t, seq, 1)
	assert.IsType(t, &Map{}, seq.([]any)[0])
}

func TestMap_MarshalJSONOrdered(t *testing.T) {
	m := New()
	m.Set("second", "b")
	m.Set("first", []any{1, 2})
	inner := New()
	inner.Set("z", true)
	inner.Set("a", nil)
	m.Set("inner", inner)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"second":"b","first":[1,2],"inner":{"z":true,"a":null}}`, string(data))
}

func TestIsEmpty(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{name: "nil", value: nil, want: true},
		{name: "empty string", value: "", want: true},
		{name: "empty sequence", value: []any{}, want: true},
		{name: "empty mapping", value: New(), want: true},
		{name: "text", value: "x", want: false},
		{name: "zero", value: 0, want: false},
		{name: "false", value: false, want: false},
		{name: "sequence", value: []any{1}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEmpty(tt.value))
		})
	}
}

func TestMerge(t *testing.T) {
	core := New()
	core.Set("rulebook", "core")
	coreMechs := New()
	stats := New()
	stats.Set("types", "core types")
	coreMechs.Set("stats", stats)
	core.Set("mechanisms", coreMechs)
	core.Set("names", []any{"a"})

	expansion := New()
	expansion.Set("rulebook", "expansion")
	expMechs := New()
	expStats := New()
	expStats.Set("choices", "new")
	expMechs.Set("stats", expStats)
	expMechs.Set("gear", New())
	expansion.Set("mechanisms", expMechs)
	expansion.Set("names", []any{"b"})

	merged := Merge(core, expansion)

	tag, _ := merged.GetString("rulebook")
	assert.Equal(t, "expansion", tag)

	mechs, ok := merged.GetMap("mechanisms")
	require.True(t, ok)
	assert.Equal(t, []string{"stats", "gear"}, mechs.Keys())

	mergedStats, _ := mechs.GetMap("stats")
	assert.Equal(t, []string{"types", "choices"}, mergedStats.Keys())

	names, _ := merged.Get("names")
	assert.Equal(t, []any{"a", "b"}, names)

	// inputs untouched
	assert.Equal(t, []string{"types"}, stats.Keys())
	assert.Equal(t, []string{"stats"}, coreMechs.Keys())
}

func TestMerge_ScalarReplacesMapping(t *testing.T) {
	a := New()
	a.Set("x", New())
	b := New()
	b.Set("x", "scalar")

	merged := Merge(a, b)
	v, _ := merged.Get("x")
	assert.Equal(t, "scalar", v)
}

func TestClone_IsDeep(t *testing.T) {
	inner := New()
	inner.Set("k", []any{"v"})
	outer := New()
	outer.Set("inner", inner)

	cloned := Clone(outer).(*Map)
	clonedInner, _ := cloned.GetMap("inner")
	clonedInner.Set("k", "changed")

	v, _ := inner.Get("k")
	assert.Equal(t, []any{"v"}, v)
}
