package parsers

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/rulebook-core/internal/domain/document"
)

const yamlRulebook = `
rulebook: core
parser: 1.0
mechanisms:
  basics:
    types:
      stat:
        value: number
        label: text
    choices:
      name: text
      look: long text
playbooks:
  fighter:
    damage: d10
    base hp: 10
`

func TestYAMLParser_KeepsKeyOrder(t *testing.T) {
	doc, err := (&YAMLParser{}).Parse(strings.NewReader(yamlRulebook))
	require.NoError(t, err)

	assert.Equal(t, []string{"rulebook", "parser", "mechanisms", "playbooks"}, doc.Keys())

	mechanisms, _ := doc.GetMap("mechanisms")
	basics, _ := mechanisms.GetMap("basics")
	assert.Equal(t, []string{"types", "choices"}, basics.Keys())

	types, _ := basics.GetMap("types")
	stat, _ := types.GetMap("stat")
	assert.Equal(t, []string{"value", "label"}, stat.Keys())

	parser, _ := doc.Get("parser")
	assert.Equal(t, 1.0, parser)

	playbooks, _ := doc.GetMap("playbooks")
	fighter, _ := playbooks.GetMap("fighter")
	hp, _ := fighter.Get("base hp")
	assert.Equal(t, 10, hp)
}

func TestYAMLParser_AnchorsAndMergeKeys(t *testing.T) {
	input := `
base: &base
  damage: d6
  base hp: 8
playbooks:
  fighter:
    <<: *base
    damage: d10
  cleric: *base
list: [a, b]
when: 2024-01-02
empty:
`
	doc, err := (&YAMLParser{}).Parse(strings.NewReader(input))
	require.NoError(t, err)

	playbooks, _ := doc.GetMap("playbooks")
	fighter, _ := playbooks.GetMap("fighter")
	assert.Equal(t, []string{"damage", "base hp"}, fighter.Keys())
	damage, _ := fighter.GetString("damage")
	assert.Equal(t, "d10", damage)

	cleric, _ := playbooks.GetMap("cleric")
	hp, _ := cleric.Get("base hp")
	assert.Equal(t, 8, hp)

	list, _ := doc.Get("list")
	assert.Equal(t, []any{"a", "b"}, list)

	when, _ := doc.GetString("when")
	assert.Equal(t, "2024-01-02", when)

	empty, ok := doc.Get("empty")
	assert.True(t, ok)
	assert.Nil(t, empty)
}

func TestYAMLParser_ExcessiveAliasing(t *testing.T) {
	var b strings.Builder
	b.WriteString("l0: &l0 [x, x, x, x, x, x, x, x, x, x]\n")
	for i := 1; i <= 8; i++ {
		fmt.Fprintf(&b, "l%d: &l%d [", i, i)
		for j := 0; j < 10; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "*l%d", i-1)
		}
		b.WriteString("]\n")
	}

	start := time.Now()
	_, err := (&YAMLParser{}).Parse(strings.NewReader(b.String()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "excessive aliasing")
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestYAMLParser_ModestAliasing(t *testing.T) {
	input := `
stat: &stat {value: number, modifier: number}
mechanisms:
  basics:
    types:
      str: *stat
      dex: *stat
      con: *stat
`
	doc, err := (&YAMLParser{}).Parse(strings.NewReader(input))
	require.NoError(t, err)

	mechanisms, _ := doc.GetMap("mechanisms")
	basics, _ := mechanisms.GetMap("basics")
	types, _ := basics.GetMap("types")
	assert.Equal(t, []string{"str", "dex", "con"}, types.Keys())
}

func TestYAMLParser_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "not a mapping", input: "- a\n- b\n"},
		{name: "malformed", input: "a: [b\n"},
		{name: "complex key", input: "? [a, b]\n: c\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (&YAMLParser{}).Parse(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestYAMLParser_Empty(t *testing.T) {
	doc, err := (&YAMLParser{}).Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Len())
}

func TestJSONParser_KeepsKeyOrder(t *testing.T) {
	input := `{"rulebook": "core", "parser": 1, "mechanisms": {"zeta": {}, "alpha": {"choices": {"b": "text", "a": "text"}}}, "ratio": 1.5, "tags": ["x", null, true]}`

	doc, err := (&JSONParser{}).Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"rulebook", "parser", "mechanisms", "ratio", "tags"}, doc.Keys())
	mechanisms, _ := doc.GetMap("mechanisms")
	assert.Equal(t, []string{"zeta", "alpha"}, mechanisms.Keys())
	alpha, _ := mechanisms.GetMap("alpha")
	choices, _ := alpha.GetMap("choices")
	assert.Equal(t, []string{"b", "a"}, choices.Keys())

	parser, _ := doc.Get("parser")
	assert.Equal(t, 1, parser)
	ratio, _ := doc.Get("ratio")
	assert.Equal(t, 1.5, ratio)
	tags, _ := doc.Get("tags")
	assert.Equal(t, []any{"x", nil, true}, tags)
}

func TestJSONParser_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "array at top level", input: `["a"]`},
		{name: "truncated", input: `{"a": {"b": 1}`},
		{name: "trailing data", input: `{"a": 1} {"b": 2}`},
		{name: "invalid syntax", input: `{a: 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (&JSONParser{}).Parse(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestTOMLParser_KeepsKeyOrder(t *testing.T) {
	input := `
rulebook = "core"
parser = 1.0

[mechanisms.basics.types.stat]
value = "number"
label = "text"

[mechanisms.basics.choices]
name = "text"
look = "long text"

[playbooks.fighter]
damage = "d10"
"base hp" = 10
`
	doc, err := (&TOMLParser{}).Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"rulebook", "parser", "mechanisms", "playbooks"}, doc.Keys())

	mechanisms, _ := doc.GetMap("mechanisms")
	basics, _ := mechanisms.GetMap("basics")
	assert.Equal(t, []string{"types", "choices"}, basics.Keys())

	types, _ := basics.GetMap("types")
	stat, _ := types.GetMap("stat")
	assert.Equal(t, []string{"value", "label"}, stat.Keys())

	playbooks, _ := doc.GetMap("playbooks")
	fighter, _ := playbooks.GetMap("fighter")
	hp, _ := fighter.Get("base hp")
	assert.Equal(t, 10, hp)
}

func TestTOMLParser_InlineTablesAndArrays(t *testing.T) {
	input := `
stat = { value = "number", label = "text" }
moves = [ { name = "hack" }, { name = "slash" } ]
tags = ["a", "b"]
`
	doc, err := (&TOMLParser{}).Parse(strings.NewReader(input))
	require.NoError(t, err)

	stat, ok := doc.GetMap("stat")
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"value", "label"}, stat.Keys())

	moves, _ := doc.Get("moves")
	list, ok := moves.([]any)
	require.True(t, ok)
	require.Len(t, list, 2)
	first, ok := list[0].(*document.Map)
	require.True(t, ok)
	name, _ := first.GetString("name")
	assert.Equal(t, "hack", name)

	tags, _ := doc.Get("tags")
	assert.Equal(t, []any{"a", "b"}, tags)
}

func TestTOMLParser_Error(t *testing.T) {
	_, err := (&TOMLParser{}).Parse(strings.NewReader("a = "))
	assert.ErrorContains(t, err, "parsing TOML")
}

func TestForFormat(t *testing.T) {
	tests := []struct {
		format string
		want   Parser
	}{
		{format: "yaml", want: &YAMLParser{}},
		{format: "YML", want: &YAMLParser{}},
		{format: "json", want: &JSONParser{}},
		{format: "toml", want: &TOMLParser{}},
		{format: "csv", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			assert.Equal(t, tt.want, ForFormat(tt.format))
		})
	}
}

func TestForFile(t *testing.T) {
	assert.IsType(t, &YAMLParser{}, ForFile("rules/core.yaml"))
	assert.IsType(t, &JSONParser{}, ForFile("core.JSON"))
	assert.IsType(t, &TOMLParser{}, ForFile("core.toml"))
	assert.Nil(t, ForFile("core.txt"))
}

func TestAuto_Format(t *testing.T) {
	tests := []struct {
		address string
		data    string
		want    string
	}{
		{address: "core.yml", data: "a: 1", want: FormatYAML},
		{address: "https://example.com/rules/core.toml?ref=main", data: "a = 1", want: FormatTOML},
		{address: "https://example.com/rules", data: ` {"a": 1}`, want: FormatJSON},
		{address: "rules", data: "a: 1", want: FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.address, func(t *testing.T) {
			assert.Equal(t, tt.want, Auto{}.Format(tt.address, []byte(tt.data)))
		})
	}
}

func TestAuto_Decode(t *testing.T) {
	doc, err := Auto{}.Decode("core.json", []byte(`{"rulebook": "core"}`))
	require.NoError(t, err)
	tag, _ := doc.GetString("rulebook")
	assert.Equal(t, "core", tag)

	_, err = Auto{}.Decode("core.json", []byte(`rulebook: core`))
	assert.Error(t, err)
}
