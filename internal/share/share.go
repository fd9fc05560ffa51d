// Package share renders the plain-text result summary players paste into
// chats. Nothing here is persisted.
package share

import (
	"fmt"
	"strings"

	"github.com/vytor/sense/internal/models"
)

const (
	GlyphCorrect = "🟩"
	GlyphClose   = "🟨"
	GlyphNeutral = "⬜"
)

// Summary is everything needed to render a share text.
type Summary struct {
	Date        string
	Attempts    int
	MaxAttempts int
	Guesses     []models.GuessResult
	Won         bool
	// URL is the optional attribution link; empty omits the line.
	URL string
}

// Glyph maps a tier to its share square.
func Glyph(t models.Tier) string {
	switch t {
	case models.TierCorrect:
		return GlyphCorrect
	case models.TierClose:
		return GlyphClose
	default:
		return GlyphNeutral
	}
}

// Fraction is "attempts/max" for a win and "X/max" otherwise.
func Fraction(won bool, attempts, maxAttempts int) string {
	if won {
		return fmt.Sprintf("%d/%d", attempts, maxAttempts)
	}
	return fmt.Sprintf("X/%d", maxAttempts)
}

// Text renders s as
//
//	SENSE 2026-10-17 3/6
//
//	⬜🟨🟩
//
//	Play at: https://example.com
func Text(s Summary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "SENSE %s %s\n\n", s.Date, Fraction(s.Won, s.Attempts, s.MaxAttempts))
	for _, g := range s.Guesses {
		sb.WriteString(Glyph(g.Tier))
	}
	if s.URL != "" {
		sb.WriteString("\n\nPlay at: ")
		sb.WriteString(s.URL)
	}
	return sb.String()
}
