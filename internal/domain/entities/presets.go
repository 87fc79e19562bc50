package entities

// Built-in type names.
const (
	PresetText     = "text"
	PresetLongText = "long text"
	PresetNumber   = "number"
	PresetBoolean  = "boolean"
	PresetDice     = "dice"
	PresetFormula  = "formula"
	PresetEffect   = "effect"
	PresetMove     = "move"
)

// PresetTypeNames lists the built-in types in registry order.
var PresetTypeNames = []string{
	PresetText,
	PresetLongText,
	PresetNumber,
	PresetBoolean,
	PresetDice,
	PresetFormula,
	PresetEffect,
	PresetMove,
}

// PresetTypes returns fresh built-in types in registry order.
func PresetTypes() []*Type {
	types := make([]*Type, len(PresetTypeNames))
	for i, name := range PresetTypeNames {
		types[i] = NewPresetType(name)
	}
	return types
}

// IsPresetType checks if a type name is built in.
func IsPresetType(name string) bool {
	for _, n := range PresetTypeNames {
		if n == name {
			return true
		}
	}
	return false
}

// presetFormulas are tried after author formulas, in this order.
var presetFormulas = []struct{ pattern, call string }{
	{"roll <dice>", "roll(dice)"},
	{"modifier for <stat>", "modifier(stat)"},
	{"<value> plus <other>", "add(value, other)"},
	{"<value> minus <other>", "subtract(value, other)"},
	{"highest of <values>", "max(values)"},
	{"lowest of <values>", "min(values)"},
	{"value of <field>", "field(field)"},
}

// presetEffects are tried after author effects, in this order.
var presetEffects = []struct{ pattern, call string }{
	{"show <text>", "show(text)"},
	{"set <field> to <value>", "set(field, value)"},
	{"add <value> to <field>", "add(field, value)"},
	{"take <value> from <field>", "subtract(field, value)"},
	{"choose <choice>", "choose(choice)"},
	{"trigger <move>", "trigger(move)"},
}

// PresetFormulas returns the built-in formula dispatch list.
func PresetFormulas() []FormulaDefinition {
	out := make([]FormulaDefinition, len(presetFormulas))
	for i, p := range presetFormulas {
		out[i] = NewFormulaDefinition(p.pattern, p.call)
	}
	return out
}

// PresetEffects returns the built-in effect dispatch list.
func PresetEffects() []EffectDefinition {
	out := make([]EffectDefinition, len(presetEffects))
	for i, p := range presetEffects {
		out[i] = NewEffectDefinition(p.pattern, p.call)
	}
	return out
}
