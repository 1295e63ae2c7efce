// Package tokenizer normalises free text into index terms. It lower-cases
// input, preserves hashtags and mentions as distinct units, drops very short
// tokens, and applies a single-pass suffix-stripping stemmer.
package tokenizer

import (
	"strings"
	"unicode"
)

// Tokenize breaks text into a slice of stemmed, lowercased tokens.
// Identical input always yields an identical token sequence; empty or
// whitespace-only input yields an empty slice.
func Tokenize(text string) []string {
	text = strings.ToLower(text)
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if isWordRune(r) || unicode.IsSpace(r) || r == '#' || r == '@' {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	words := strings.Fields(b.String())
	tokens := make([]string, 0, len(words))
	for _, word := range words {
		if len(word) <= 2 {
			continue
		}
		tokens = append(tokens, stem(word))
	}
	return tokens
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// stem strips at most one suffix per word, checked in order: "ing", then
// "ed", then a plural "s" on words longer than three characters. The first
// matching rule wins; there is no iterative re-stemming.
func stem(word string) string {
	switch {
	case strings.HasSuffix(word, "ing"):
		return word[:len(word)-3]
	case strings.HasSuffix(word, "ed"):
		return word[:len(word)-2]
	case strings.HasSuffix(word, "s") && len(word) > 3:
		return word[:len(word)-1]
	}
	return word
}
