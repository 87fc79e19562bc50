package entities

import "fmt"

// GlobalField is a rulebook-wide constant.
type GlobalField struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// PlaybookField is a value every playbook using the mechanism supplies.
type PlaybookField struct {
	Name     string `json:"name"`
	Type     *Type  `json:"type"`
	Optional bool   `json:"optional,omitempty"`
}

// CharacterFieldKind tags the variant a CharacterField holds.
type CharacterFieldKind int

const (
	// ManualField is set once at character creation.
	ManualField CharacterFieldKind = iota
	// AutomaticField is recomputed from other fields.
	AutomaticField
	// ChoiceField is answered by a player choice.
	ChoiceField
)

// MarshalText renders the kind by name in exports.
func (k CharacterFieldKind) MarshalText() ([]byte, error) {
	switch k {
	case ManualField:
		return []byte("manual"), nil
	case AutomaticField:
		return []byte("automatic"), nil
	case ChoiceField:
		return []byte("choice"), nil
	default:
		return nil, fmt.Errorf("unknown character field kind %d", int(k))
	}
}

// CharacterField is a per-character value.
type CharacterField struct {
	Name                  string             `json:"name"`
	Kind                  CharacterFieldKind `json:"kind"`
	InitializationFormula string             `json:"initialization_formula,omitempty"` // ManualField
	CalculationFormula    string             `json:"calculation_formula,omitempty"`    // AutomaticField
	Choice                *Choice            `json:"choice,omitempty"`                 // ChoiceField
}

// NewManualField creates a field initialised once from formula.
func NewManualField(name, formula string) CharacterField {
	return CharacterField{Name: name, Kind: ManualField, InitializationFormula: formula}
}

// NewAutomaticField creates a field calculated from formula.
func NewAutomaticField(name, formula string) CharacterField {
	return CharacterField{Name: name, Kind: AutomaticField, CalculationFormula: formula}
}

// NewChoiceField creates a field answered by choice.
func NewChoiceField(name string, choice *Choice) CharacterField {
	return CharacterField{Name: name, Kind: ChoiceField, Choice: choice}
}
