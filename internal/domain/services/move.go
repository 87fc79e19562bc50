package services

import (
	"github.com/ersonp/rulebook-core/internal/domain/document"
	"github.com/ersonp/rulebook-core/internal/domain/entities"
	"github.com/ersonp/rulebook-core/internal/domain/grammar"
	"github.com/ersonp/rulebook-core/internal/domain/ruleerr"
)

var onFlag = grammar.Prefix("on")

// parseMove reads a move given either as its text or as a mapping of
// text, type, trigger and effect.
func parseMove(cc *compileContext, name string, raw any) (entities.Move, error) {
	switch v := raw.(type) {
	case string:
		return entities.Move{Name: name, Text: v}, nil
	case *document.Map:
		move := entities.Move{Name: name}
		err := v.Each(func(key string, value any) error {
			switch grammar.NormalizeKey(key) {
			case "text":
				s, ok := value.(string)
				if !ok {
					return ruleerr.Grammar("move %q: text must be text, got %T", name, value)
				}
				move.Text = s
			case "type":
				s, ok := value.(string)
				if !ok {
					return ruleerr.Grammar("move %q: type must be text, got %T", name, value)
				}
				move.Type = s
			case "trigger":
				s, ok := value.(string)
				if !ok {
					return ruleerr.Grammar("move %q: trigger must be text, got %T", name, value)
				}
				move.Trigger = parseTrigger(s)
			case "effect":
				move.Effect = document.Clone(value)
			default:
				cc.warnf("move %q: unknown key %q ignored", name, key)
			}
			return nil
		})
		if err != nil {
			return entities.Move{}, err
		}
		return move, nil
	default:
		return entities.Move{}, ruleerr.Grammar("move %q must be text or a mapping, got %T", name, raw)
	}
}

func parseTrigger(text string) *entities.Trigger {
	if m := onFlag.Extract(text); m.Matched {
		return &entities.Trigger{Formula: m.Remainder}
	}
	return &entities.Trigger{Text: text}
}
