package entities

// Mechanism is a named bundle of rules, the unit of composition.
type Mechanism struct {
	Name            string              `json:"name"`
	Types           []*Type             `json:"types"`
	Formulas        []FormulaDefinition `json:"formulas"`
	Effects         []EffectDefinition  `json:"effects"`
	Choices         []*Choice           `json:"choices,omitempty"`
	GlobalFields    []GlobalField       `json:"global_fields,omitempty"`
	PlaybookFields  []PlaybookField     `json:"playbook_fields,omitempty"`
	CharacterFields []CharacterField    `json:"character_fields,omitempty"`
	Moves           []Move              `json:"moves,omitempty"`
}

// Type returns the mechanism's type named name.
func (m *Mechanism) Type(name string) (*Type, bool) {
	for _, t := range m.Types {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// Choice returns the mechanism's choice named name.
func (m *Mechanism) Choice(name string) (*Choice, bool) {
	for _, c := range m.Choices {
		if c.Match(name) {
			return c, true
		}
	}
	return nil, false
}

// PlaybookField returns the mechanism's playbook field named name.
func (m *Mechanism) PlaybookField(name string) (PlaybookField, bool) {
	for _, f := range m.PlaybookFields {
		if f.Name == name {
			return f, true
		}
	}
	return PlaybookField{}, false
}
