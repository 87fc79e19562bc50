package a

import (
	"grammar"
	"regexp"
)

func bad(texts []string) {
	for _, text := range texts {
		optional := grammar.Prefix("optional") // want "grammar.Prefix called inside loop"
		_ = optional.Extract(text)
	}
	for i := 0; i < len(texts); i++ {
		_ = grammar.Suffix("array").Extract(texts[i]) // want "grammar.Suffix called inside loop"
	}
}

func badRegexp(texts []string) {
	for _, text := range texts {
		re := regexp.MustCompile(`<(\w+)>`) // want "regexp.MustCompile called inside loop"
		_ = re.FindAllString(text, -1)
	}
}

var optionalFlag = grammar.Prefix("optional")

func good(texts []string) {
	for _, text := range texts {
		_ = optionalFlag.Extract(text)
	}
}
