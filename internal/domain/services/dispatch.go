package services

import (
	"fmt"

	"github.com/ersonp/rulebook-core/internal/domain/entities"
	"github.com/ersonp/rulebook-core/internal/domain/ruleerr"
)

func parseCall(kind, pattern string, raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		if v == "" {
			return "", ruleerr.Grammar("%s %q has an empty call", kind, pattern)
		}
		return v, nil
	case int, float64, bool:
		return fmt.Sprint(v), nil
	default:
		return "", ruleerr.Grammar("%s %q must map to a call expression, got %T", kind, pattern, raw)
	}
}

func parseFormula(_ *compileContext, pattern string, raw any) (entities.FormulaDefinition, error) {
	call, err := parseCall("formula", pattern, raw)
	if err != nil {
		return entities.FormulaDefinition{}, err
	}
	return entities.NewFormulaDefinition(pattern, call), nil
}

func parseEffect(_ *compileContext, pattern string, raw any) (entities.EffectDefinition, error) {
	call, err := parseCall("effect", pattern, raw)
	if err != nil {
		return entities.EffectDefinition{}, err
	}
	return entities.NewEffectDefinition(pattern, call), nil
}

// prependDeclared puts declared entries ahead of presets, latest first,
// so authors shadow built-ins without removing them.
func prependDeclared[T any](declared, presets []T) []T {
	out := make([]T, 0, len(declared)+len(presets))
	for i := len(declared) - 1; i >= 0; i-- {
		out = append(out, declared[i])
	}
	return append(out, presets...)
}
