package entities

// Playbook is a character archetype with its resolved rules and values.
type Playbook struct {
	Name            string           `json:"name"`
	Mechanisms      []*Mechanism     `json:"-"`
	Fields          map[string]any   `json:"fields"`
	CharacterFields []CharacterField `json:"character_fields,omitempty"`
	Choices         []*Choice        `json:"choices,omitempty"`
	// Rules is the de-duplicated union of every contributing mechanism.
	Rules *Mechanism `json:"rules"`
}

// MechanismNames returns the names of the contributing mechanisms in order.
func (p *Playbook) MechanismNames() []string {
	names := make([]string, len(p.Mechanisms))
	for i, m := range p.Mechanisms {
		names[i] = m.Name
	}
	return names
}

// Rulebook is the compiled rule set.
type Rulebook struct {
	Mechanisms    []*Mechanism         `json:"mechanisms"`
	Playbooks     map[string]*Playbook `json:"playbooks"`
	PlaybookNames []string             `json:"playbook_names"` // declaration order
	Warnings      []string             `json:"warnings,omitempty"`
}

// Mechanism returns the rulebook-level mechanism named name.
func (r *Rulebook) Mechanism(name string) (*Mechanism, bool) {
	for _, m := range r.Mechanisms {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// Playbook returns the playbook named name.
func (r *Rulebook) Playbook(name string) (*Playbook, bool) {
	p, ok := r.Playbooks[name]
	return p, ok
}

// OrderedPlaybooks returns the playbooks in declaration order.
func (r *Rulebook) OrderedPlaybooks() []*Playbook {
	out := make([]*Playbook, 0, len(r.PlaybookNames))
	for _, name := range r.PlaybookNames {
		out = append(out, r.Playbooks[name])
	}
	return out
}
