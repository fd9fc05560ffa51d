// Package textnorm canonicalizes guesses, answers, synonyms and categories
// so they can be compared independently of case, accents and punctuation.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize folds text into the comparison form: diacritics stripped,
// lowercased, restricted to [a-z0-9 -], single-spaced and trimmed.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	// Transformers carry state, so a fresh chain is built per call.
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	folded, _, err := transform.String(stripMarks, text)
	if err != nil {
		folded = text
	}
	folded = strings.ToLower(folded)

	kept := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		case unicode.IsSpace(r):
			return ' '
		default:
			return -1
		}
	}, folded)

	return strings.Join(strings.Fields(kept), " ")
}

// Tokenize splits normalized text on whitespace, dropping empty tokens.
func Tokenize(normalized string) []string {
	return strings.Fields(normalized)
}
