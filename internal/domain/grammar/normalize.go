package grammar

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lower = cases.Lower(language.Und)

// NormalizeKey folds a document key to its canonical spaced lower-case
// form, so "globalFields", "Global_Fields" and "global  fields" all read
// as "global fields".
func NormalizeKey(key string) string {
	var b strings.Builder
	prev := rune(0)
	for _, r := range key {
		switch {
		case r == '_' || r == '-' || unicode.IsSpace(r):
			b.WriteRune(' ')
		case unicode.IsUpper(r) && prev != 0 && unicode.IsLower(prev):
			b.WriteRune(' ')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
		prev = r
	}
	return lower.String(strings.Join(strings.Fields(b.String()), " "))
}
