package entities

import (
	"context"
	"fmt"
)

// AllPlaybooks scopes a choice declared at rulebook level.
const AllPlaybooks = "all"

// ChoiceKind tags the variant a ChoiceType holds.
type ChoiceKind int

const (
	// ChoiceKindType is a direct answer of a resolved type.
	ChoiceKindType ChoiceKind = iota
	// ChoiceKindField picks options sourced from another field.
	ChoiceKindField
)

// MarshalText renders the kind by name in exports.
func (k ChoiceKind) MarshalText() ([]byte, error) {
	switch k {
	case ChoiceKindType:
		return []byte("type"), nil
	case ChoiceKindField:
		return []byte("field"), nil
	default:
		return nil, fmt.Errorf("unknown choice kind %d", int(k))
	}
}

// AssignmentEntry is one key of a field choice's assignment list.
type AssignmentEntry struct {
	Key   string `json:"key"`
	Value string `json:"value,omitempty"`
}

// Assignment lists the keys a picked option is assigned to. A nil
// Assignment means the choice assigns nothing.
type Assignment []AssignmentEntry

// Keys returns the assignment keys in written order.
func (a Assignment) Keys() []string {
	if a == nil {
		return nil
	}
	keys := make([]string, len(a))
	for i, e := range a {
		keys[i] = e.Key
	}
	return keys
}

// FieldChoice is a choice whose options come from another field.
type FieldChoice struct {
	From       string     `json:"from"`
	Free       bool       `json:"free"`
	Assignment Assignment `json:"assignment,omitempty"`
}

// ChoiceType is either a resolved Type or a FieldChoice.
type ChoiceType struct {
	Kind  ChoiceKind   `json:"kind"`
	Type  *Type        `json:"type,omitempty"`
	Field *FieldChoice `json:"field,omitempty"`
}

// Choice is a player-facing decision made at character creation.
type Choice struct {
	Name     string     `json:"name"`
	Playbook string     `json:"playbook"`
	Type     ChoiceType `json:"type"`
}

// NewTypeChoice creates a choice answered with a value of t.
func NewTypeChoice(name, playbook string, t *Type) *Choice {
	return &Choice{Name: name, Playbook: playbook, Type: ChoiceType{Kind: ChoiceKindType, Type: t}}
}

// NewFieldChoice creates a choice picking from another field.
func NewFieldChoice(name, playbook string, fc FieldChoice) *Choice {
	return &Choice{Name: name, Playbook: playbook, Type: ChoiceType{Kind: ChoiceKindField, Field: &fc}}
}

// Match reports whether raw names this choice.
func (c *Choice) Match(raw string) bool {
	return raw == c.Name
}

// ChoiceAnswers exposes a character's stored creation choices.
type ChoiceAnswers interface {
	CreationChoice(ctx context.Context, name string) (any, bool, error)
}

// CreationChoices is an in-memory ChoiceAnswers.
type CreationChoices map[string]any

// CreationChoice returns the stored answer for name.
func (c CreationChoices) CreationChoice(_ context.Context, name string) (any, bool, error) {
	v, ok := c[name]
	return v, ok, nil
}

// Value reads the player's answer to this choice from answers.
func (c *Choice) Value(ctx context.Context, answers ChoiceAnswers) (any, bool, error) {
	v, ok, err := answers.CreationChoice(ctx, c.Name)
	if err != nil {
		return nil, false, fmt.Errorf("reading choice %q: %w", c.Name, err)
	}
	return v, ok, nil
}
