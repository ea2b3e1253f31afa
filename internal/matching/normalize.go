package matching

import (
	"strings"
	"unicode"
)

// NormalizeKey reduces a term to its canonical comparison key: lowercase with
// every non-alphanumeric rune removed. Spacing and punctuation variants
// collapse onto one key ("Node.js", "node js" and "nodejs" are all "nodejs").
func NormalizeKey(term string) string {
	var b strings.Builder
	b.Grow(len(term))
	for _, r := range strings.ToLower(term) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// compactLower lowercases a term and removes whitespace, keeping punctuation.
// It is used by matchers that need to tell "C#" apart from "C", which the
// alphanumeric key cannot do.
func compactLower(term string) string {
	var b strings.Builder
	b.Grow(len(term))
	for _, r := range strings.ToLower(term) {
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
