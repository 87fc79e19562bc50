package services

import (
	"strings"

	"github.com/ersonp/rulebook-core/internal/domain/entities"
	"github.com/ersonp/rulebook-core/internal/domain/grammar"
	"github.com/ersonp/rulebook-core/internal/domain/ruleerr"
)

var (
	assignFlag = grammar.Parameter("and assign")
	freelyFlag = grammar.Prefix("freely")
	fromFlag   = grammar.Prefix("from")
)

// parseChoice reads choice text such as "text array", "from moves" or
// "freely from stats and assign {str,dex}".
func parseChoice(cc *compileContext, name string, raw any) (*entities.Choice, error) {
	text, ok := raw.(string)
	if !ok {
		return nil, ruleerr.Grammar("choice %q must be text, got %T", name, raw)
	}

	var assignment entities.Assignment
	if m := assignFlag.Extract(text); m.Matched {
		pairs, err := grammar.ParseAssignment(m.Capture)
		if err != nil {
			return nil, err
		}
		assignment = make(entities.Assignment, len(pairs))
		for i, p := range pairs {
			assignment[i] = entities.AssignmentEntry{Key: p.Key, Value: p.Value}
		}
		text = m.Remainder
	}

	free := false
	if m := freelyFlag.Extract(text); m.Matched {
		free = true
		text = m.Remainder
	}

	return grammar.Execute(fromFlag, text,
		func(field string) (*entities.Choice, error) {
			field = strings.TrimSpace(field)
			if field == "" {
				return nil, ruleerr.Grammar("choice %q names no field after \"from\"", name)
			}
			return entities.NewFieldChoice(name, cc.playbook, entities.FieldChoice{
				From:       field,
				Free:       free,
				Assignment: assignment,
			}), nil
		},
		func(any) (*entities.Choice, error) {
			if free || assignment != nil {
				cc.warnf("choice %q: \"freely\" and \"and assign\" only apply to \"from\" choices", name)
			}
			t, err := cc.types.ResolveUsage(text)
			if err != nil {
				return nil, err
			}
			return entities.NewTypeChoice(name, cc.playbook, t), nil
		},
	)
}
