package entities

import "regexp"

var paramRegex = regexp.MustCompile(`<([^<>]+)>`)

// Pattern is the dispatch key of a formula or effect, e.g.
// "modifier for <stat>". Params are the placeholder names in order.
type Pattern struct {
	Raw    string   `json:"raw"`
	Params []string `json:"params,omitempty"`
}

// NewPattern parses the placeholders out of raw.
func NewPattern(raw string) Pattern {
	var params []string
	for _, m := range paramRegex.FindAllStringSubmatch(raw, -1) {
		params = append(params, m[1])
	}
	return Pattern{Raw: raw, Params: params}
}

// FormulaDefinition maps a formula pattern to the call evaluated when it matches.
type FormulaDefinition struct {
	Pattern Pattern `json:"pattern"`
	Call    string  `json:"call"`
}

// NewFormulaDefinition creates a formula definition.
func NewFormulaDefinition(pattern, call string) FormulaDefinition {
	return FormulaDefinition{Pattern: NewPattern(pattern), Call: call}
}

// EffectDefinition maps an effect pattern to the call evaluated when it matches.
type EffectDefinition struct {
	Pattern Pattern `json:"pattern"`
	Call    string  `json:"call"`
}

// NewEffectDefinition creates an effect definition.
func NewEffectDefinition(pattern, call string) EffectDefinition {
	return EffectDefinition{Pattern: NewPattern(pattern), Call: call}
}
