package grammar

import (
	"strings"

	"github.com/ersonp/rulebook-core/internal/domain/ruleerr"
)

// Pair is one entry of an inline assignment list.
type Pair struct {
	Key   string
	Value string // the key itself for bare keys
}

// ParseAssignment reads an inline list such as "{str,dex}" or
// "{str:+2,dex:+1}". Entries keep their written order.
func ParseAssignment(text string) ([]Pair, error) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "{") || !strings.HasSuffix(text, "}") || len(text) < 2 {
		return nil, ruleerr.Grammar("assignment %q must be enclosed in braces", text)
	}

	body := text[1 : len(text)-1]
	if strings.ContainsAny(body, "{}") {
		return nil, ruleerr.Grammar("assignment %q has unbalanced braces", text)
	}

	parts := strings.Split(body, ",")
	pairs := make([]Pair, 0, len(parts))
	seen := make(map[string]bool, len(parts))
	for _, part := range parts {
		key, value, found := strings.Cut(part, ":")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if !found {
			value = key
		}
		if key == "" {
			return nil, ruleerr.Grammar("assignment %q has an empty key", text)
		}
		if seen[key] {
			return nil, ruleerr.Grammar("assignment %q repeats key %q", text, key)
		}
		seen[key] = true
		pairs = append(pairs, Pair{Key: key, Value: value})
	}
	return pairs, nil
}
