package entities

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingAnswers struct{}

func (failingAnswers) CreationChoice(context.Context, string) (any, bool, error) {
	return nil, false, errors.New("store offline")
}

func TestChoice_Value(t *testing.T) {
	ctx := context.Background()
	c := NewTypeChoice("look", AllPlaybooks, NewPresetType(PresetText))

	answers := CreationChoices{"look": "scarred"}
	v, ok, err := c.Value(ctx, answers)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "scarred", v)

	_, ok, err = c.Value(ctx, CreationChoices{})
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = c.Value(ctx, failingAnswers{})
	assert.ErrorContains(t, err, `reading choice "look"`)
}

func TestChoice_Match(t *testing.T) {
	c := NewFieldChoice("stats", "fighter", FieldChoice{From: "stat options"})
	assert.True(t, c.Match("stats"))
	assert.False(t, c.Match("Stats"))
	assert.Equal(t, ChoiceKindField, c.Type.Kind)
	assert.Equal(t, "fighter", c.Playbook)
}

func TestAssignment_Keys(t *testing.T) {
	var none Assignment
	assert.Nil(t, none.Keys())

	a := Assignment{{Key: "str"}, {Key: "dex", Value: "+1"}}
	assert.Equal(t, []string{"str", "dex"}, a.Keys())
}

func TestCharacterField_Kinds(t *testing.T) {
	manual := NewManualField("hp", "10")
	assert.Equal(t, ManualField, manual.Kind)
	assert.Equal(t, "10", manual.InitializationFormula)

	auto := NewAutomaticField("armor", "value of armor")
	assert.Equal(t, AutomaticField, auto.Kind)
	assert.Equal(t, "value of armor", auto.CalculationFormula)

	data, err := json.Marshal(NewChoiceField("look", NewTypeChoice("look", AllPlaybooks, NewPresetType(PresetText))))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"kind":"choice"`)
}

func TestRulebook_Lookups(t *testing.T) {
	rb := &Rulebook{
		Mechanisms: []*Mechanism{{Name: "core"}},
		Playbooks: map[string]*Playbook{
			"b": {Name: "b"},
			"a": {Name: "a"},
		},
		PlaybookNames: []string{"b", "a"},
	}

	m, ok := rb.Mechanism("core")
	require.True(t, ok)
	assert.Equal(t, "core", m.Name)

	_, ok = rb.Playbook("c")
	assert.False(t, ok)

	ordered := rb.OrderedPlaybooks()
	require.Len(t, ordered, 2)
	assert.Equal(t, "b", ordered[0].Name)
	assert.Equal(t, "a", ordered[1].Name)
}

func TestTrigger_IsAutomatic(t *testing.T) {
	assert.True(t, Trigger{Formula: "hp below 1"}.IsAutomatic())
	assert.False(t, Trigger{Text: "when you act under fire"}.IsAutomatic())
}
