package services

import (
	"fmt"

	"github.com/ersonp/rulebook-core/internal/domain/document"
	"github.com/ersonp/rulebook-core/internal/domain/entities"
	"github.com/ersonp/rulebook-core/internal/domain/ruleerr"
)

// composePlaybook builds a playbook from its raw document, the shared
// mechanisms of rb and any mechanisms the playbook declares itself.
func composePlaybook(name string, raw any, rb *entities.Rulebook, mc *MechanismCompiler) (*entities.Playbook, error) {
	var doc *document.Map
	switch v := raw.(type) {
	case nil:
		doc = document.New()
	case *document.Map:
		doc = v
	default:
		return nil, ruleerr.Schema("playbook %q must be a mapping, got %T", name, raw).With(ruleerr.KeyPlaybook, name)
	}

	local, err := compileLocalMechanisms(name, doc, mc)
	if err != nil {
		return nil, err
	}

	mechanisms := make([]*entities.Mechanism, 0, len(rb.Mechanisms)+len(local))
	mechanisms = append(mechanisms, rb.Mechanisms...)
	mechanisms = append(mechanisms, local...)
	mechanisms = uniqueBy(mechanisms, func(m *entities.Mechanism) string { return m.Name })

	rules := flattenRules(name, mechanisms)

	globals := make(map[string]any, len(rules.GlobalFields))
	for _, g := range rules.GlobalFields {
		globals[g.Name] = g.Value
	}

	fields, err := resolvePlaybookFields(name, doc, rules.PlaybookFields, globals)
	if err != nil {
		return nil, err
	}

	return &entities.Playbook{
		Name:            name,
		Mechanisms:      mechanisms,
		Fields:          fields,
		CharacterFields: rules.CharacterFields,
		Choices:         rules.Choices,
		Rules:           rules,
	}, nil
}

func compileLocalMechanisms(playbook string, doc *document.Map, mc *MechanismCompiler) ([]*entities.Mechanism, error) {
	raw, ok := doc.Get("mechanisms")
	if !ok || raw == nil {
		return nil, nil
	}
	declared, ok := raw.(*document.Map)
	if !ok {
		return nil, ruleerr.Schema("mechanisms of playbook %q must be a mapping, got %T", playbook, raw).
			With(ruleerr.KeyPlaybook, playbook)
	}

	var local []*entities.Mechanism
	err := declared.Each(func(name string, rawMechanism any) error {
		m, err := mc.CompileForPlaybook(playbook, name, rawMechanism)
		if err != nil {
			return err
		}
		local = append(local, m)
		return nil
	})
	return local, err
}

// flattenRules unions the per-category lists of mechanisms, first
// occurrence winning.
func flattenRules(name string, mechanisms []*entities.Mechanism) *entities.Mechanism {
	typeName := func(t *entities.Type) string { return t.Name }
	choiceName := func(c *entities.Choice) string { return c.Name }

	return &entities.Mechanism{
		Name: name,
		Types: uniqueBy(flatMap(mechanisms, func(m *entities.Mechanism) []*entities.Type { return m.Types }), typeName),
		Formulas: uniqueBy(flatMap(mechanisms, func(m *entities.Mechanism) []entities.FormulaDefinition { return m.Formulas }),
			func(f entities.FormulaDefinition) string { return f.Pattern.Raw }),
		Effects: uniqueBy(flatMap(mechanisms, func(m *entities.Mechanism) []entities.EffectDefinition { return m.Effects }),
			func(e entities.EffectDefinition) string { return e.Pattern.Raw }),
		Choices: uniqueBy(flatMap(mechanisms, func(m *entities.Mechanism) []*entities.Choice { return m.Choices }), choiceName),
		GlobalFields: uniqueBy(flatMap(mechanisms, func(m *entities.Mechanism) []entities.GlobalField { return m.GlobalFields }),
			func(f entities.GlobalField) string { return f.Name }),
		PlaybookFields: uniqueBy(flatMap(mechanisms, func(m *entities.Mechanism) []entities.PlaybookField { return m.PlaybookFields }),
			func(f entities.PlaybookField) string { return f.Name }),
		CharacterFields: uniqueBy(flatMap(mechanisms, func(m *entities.Mechanism) []entities.CharacterField { return m.CharacterFields }),
			func(f entities.CharacterField) string { return f.Name }),
		Moves: uniqueBy(flatMap(mechanisms, func(m *entities.Mechanism) []entities.Move { return m.Moves }),
			func(mv entities.Move) string { return mv.Name }),
	}
}

// resolvePlaybookFields reads each playbook field from doc, seeded with
// the global field values.
func resolvePlaybookFields(playbook string, doc *document.Map, defs []entities.PlaybookField, globals map[string]any) (map[string]any, error) {
	fields := make(map[string]any, len(globals)+len(defs))
	for k, v := range globals {
		fields[k] = v
	}

	for _, def := range defs {
		raw, _ := doc.Get(def.Name)
		if document.IsEmpty(raw) {
			if def.Optional {
				continue
			}
			return nil, ruleerr.MissingField(def.Name, playbook)
		}

		value, err := def.Type.ParseValue(raw)
		if err != nil {
			return nil, fmt.Errorf("playbook %q: %w",
				playbook, ruleerr.InvalidField(def.Name, err).With(ruleerr.KeyPlaybook, playbook))
		}
		fields[def.Name] = value
	}
	return fields, nil
}
