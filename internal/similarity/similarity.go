// Package similarity scores how alike two normalized strings are.
package similarity

import (
	"unicode/utf8"

	"github.com/adrg/strutil/metrics"
)

// levenshtein is configured once; Distance does not mutate it, so it is
// safe to share between goroutines.
var levenshtein = &metrics.Levenshtein{
	CaseSensitive: true,
	InsertCost:    1,
	DeleteCost:    1,
	ReplaceCost:   1,
}

// Distance returns the unit-cost Levenshtein edit distance between a and b.
func Distance(a, b string) int {
	return levenshtein.Distance(a, b)
}

// Score returns (maxLen - distance) / maxLen in [0,1]. It is symmetric and
// Score(x, x) == 1, including for two empty strings.
func Score(a, b string) float64 {
	longer, shorter := a, b
	if utf8.RuneCountInString(shorter) > utf8.RuneCountInString(longer) {
		longer, shorter = shorter, longer
	}

	maxLen := utf8.RuneCountInString(longer)
	if maxLen == 0 {
		return 1
	}

	d := Distance(longer, shorter)
	return float64(maxLen-d) / float64(maxLen)
}
