package tfidf

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Tokenize lower-cases s, decomposes it (NFKD) and splits it into runs of
// ASCII letters and digits. Every other rune, including the combining marks
// left by the decomposition, acts as a separator, so "Café" yields "cafe".
// Duplicates are kept in order of appearance.
func Tokenize(s string) []string {
	if s == "" {
		return nil
	}

	decomposed := norm.NFKD.String(strings.ToLower(s))
	folded := strings.Map(foldRune, decomposed)

	tokens := strings.Fields(folded)
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

func foldRune(r rune) rune {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return r
	case unicode.IsSpace(r):
		return r
	default:
		return ' '
	}
}
