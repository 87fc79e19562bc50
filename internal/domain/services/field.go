package services

import (
	"fmt"

	"github.com/ersonp/rulebook-core/internal/domain/document"
	"github.com/ersonp/rulebook-core/internal/domain/entities"
	"github.com/ersonp/rulebook-core/internal/domain/grammar"
	"github.com/ersonp/rulebook-core/internal/domain/ruleerr"
)

// largeMarker defers a global field's value to the same-named root key.
const largeMarker = "large"

var (
	optionalPrefix = grammar.Prefix("optional")
	optionalSuffix = grammar.Suffix("optional")
	startAsFlag    = grammar.Prefix("start as")
	chooseFlag     = grammar.Prefix("choose")
	autoFlag       = grammar.Prefix("auto")
)

func parseGlobalField(cc *compileContext, name string, raw any) (entities.GlobalField, error) {
	if raw == largeMarker {
		v, ok := cc.root.Get(name)
		if !ok {
			return entities.GlobalField{}, ruleerr.New(ruleerr.CodeFieldValidation,
				fmt.Sprintf("large field %q has no value at the rulebook root", name)).With(ruleerr.KeyName, name)
		}
		raw = v
	}
	return entities.GlobalField{Name: name, Value: document.Clone(raw)}, nil
}

func parsePlaybookField(cc *compileContext, name string, raw any) (entities.PlaybookField, error) {
	usage, ok := raw.(string)
	if !ok {
		return entities.PlaybookField{}, ruleerr.Grammar("playbook field %q must be a type name, got %T", name, raw)
	}

	optional := false
	if m := optionalPrefix.Extract(usage); m.Matched {
		optional, usage = true, m.Remainder
	} else if m := optionalSuffix.Extract(usage); m.Matched {
		optional, usage = true, m.Remainder
	}

	t, err := cc.types.ResolveUsage(usage)
	if err != nil {
		return entities.PlaybookField{}, err
	}
	return entities.PlaybookField{Name: name, Type: t, Optional: optional}, nil
}

// parseCharacterField reads "start as <formula>" as a manual field and
// anything else as a calculated one. "choose <choice>" and "auto <formula>"
// are accepted as explicit forms.
func parseCharacterField(cc *compileContext, name string, raw any) (entities.CharacterField, error) {
	var text string
	switch v := raw.(type) {
	case string:
		text = v
	case int, float64, bool:
		text = fmt.Sprint(v)
	default:
		return entities.CharacterField{}, ruleerr.Grammar("character field %q must be a formula, got %T", name, raw)
	}

	if m := startAsFlag.Extract(text); m.Matched {
		return entities.NewManualField(name, m.Remainder), nil
	}
	if m := chooseFlag.Extract(text); m.Matched {
		if c, ok := cc.choice(m.Remainder); ok {
			return entities.NewChoiceField(name, c), nil
		}
		c, err := parseChoice(cc, name, m.Remainder)
		if err != nil {
			return entities.CharacterField{}, err
		}
		return entities.NewChoiceField(name, c), nil
	}
	if m := autoFlag.Extract(text); m.Matched {
		return entities.NewAutomaticField(name, m.Remainder), nil
	}
	return entities.NewAutomaticField(name, text), nil
}
