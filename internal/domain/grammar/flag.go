// Package grammar implements the rule-text mini-language: literal word
// flags recognised at the start, end or middle of a single line of text.
package grammar

import "strings"

// Match is the result of testing a flag against a value.
type Match struct {
	Matched bool
	// Capture is the fragment the flag extracts. For prefix and suffix
	// flags it equals Remainder; for parameter flags it is the text after
	// the marker.
	Capture string
	// Remainder is the text left once the flag is removed. For parameter
	// flags it is the text before the marker.
	Remainder string
}

// Flag is a literal textual marker.
type Flag interface {
	// Extract tests raw against the flag. Non-string values never match.
	Extract(raw any) Match
	// Word returns the marker word.
	Word() string
}

type prefixFlag struct{ word string }

// Prefix matches text starting with "<word> ".
func Prefix(word string) Flag {
	return prefixFlag{word: word}
}

func (f prefixFlag) Word() string { return f.word }

func (f prefixFlag) Extract(raw any) Match {
	text, ok := raw.(string)
	if !ok {
		return Match{}
	}
	rest, found := strings.CutPrefix(text, f.word+" ")
	if !found {
		return Match{Remainder: text}
	}
	return Match{Matched: true, Capture: rest, Remainder: rest}
}

type suffixFlag struct{ word string }

// Suffix matches text ending with " <word>".
func Suffix(word string) Flag {
	return suffixFlag{word: word}
}

func (f suffixFlag) Word() string { return f.word }

func (f suffixFlag) Extract(raw any) Match {
	text, ok := raw.(string)
	if !ok {
		return Match{}
	}
	rest, found := strings.CutSuffix(text, " "+f.word)
	if !found {
		return Match{Remainder: text}
	}
	return Match{Matched: true, Capture: rest, Remainder: rest}
}

type parameterFlag struct{ word string }

// Parameter matches text containing " <word> " and splits it around the
// first occurrence.
func Parameter(word string) Flag {
	return parameterFlag{word: word}
}

func (f parameterFlag) Word() string { return f.word }

func (f parameterFlag) Extract(raw any) Match {
	text, ok := raw.(string)
	if !ok {
		return Match{}
	}
	before, after, found := strings.Cut(text, " "+f.word+" ")
	if !found {
		return Match{Remainder: text}
	}
	return Match{Matched: true, Capture: after, Remainder: before}
}

// Execute tests raw against f and calls onMatched with the capture, or
// onUnmatched with the untouched value.
func Execute[T any](f Flag, raw any, onMatched func(capture string) (T, error), onUnmatched func(raw any) (T, error)) (T, error) {
	m := f.Extract(raw)
	if m.Matched {
		return onMatched(m.Capture)
	}
	return onUnmatched(raw)
}
