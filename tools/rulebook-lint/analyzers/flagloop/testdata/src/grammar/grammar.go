package grammar

type Flag struct{ word string }

func Prefix(word string) Flag { return Flag{word: word} }

func Suffix(word string) Flag { return Flag{word: word} }

func (f Flag) Extract(raw any) bool { return raw != nil }
