package evaluator

import (
	"fmt"
	"math"
	"strings"

	"github.com/vytor/sense/internal/models"
	"github.com/vytor/sense/internal/textnorm"
)

type rule struct {
	name  string
	apply func(c *candidate) (models.GuessResult, bool)
}

func matchEmpty(c *candidate) (models.GuessResult, bool) {
	if c.guess != "" {
		return models.GuessResult{}, false
	}
	return models.GuessResult{
		Tier:        models.TierNeutral,
		MatchKind:   models.MatchNone,
		Similarity:  0,
		Explanation: "Type a word to get feedback on your guess.",
	}, true
}

func matchExact(c *candidate) (models.GuessResult, bool) {
	if c.guess != c.answer {
		return models.GuessResult{}, false
	}
	return models.GuessResult{
		Tier:        models.TierCorrect,
		MatchKind:   models.MatchExact,
		Similarity:  1,
		Explanation: "Spot on! That's today's sense.",
	}, true
}

func matchSynonym(c *candidate) (models.GuessResult, bool) {
	for _, s := range c.synonyms {
		if s == c.guess {
			return models.GuessResult{
				Tier:        models.TierClose,
				MatchKind:   models.MatchSynonym,
				Similarity:  SynonymConfidence,
				Explanation: "So close! That's another word for the answer.",
			}, true
		}
	}
	return models.GuessResult{}, false
}

// matchCategory fires when the guess contains the whole category word. The
// direction (guess contains category) is kept even though incidental
// substrings can trigger it.
func matchCategory(c *candidate) (models.GuessResult, bool) {
	if c.category == "" || !strings.Contains(c.guess, c.category) {
		return models.GuessResult{}, false
	}
	return models.GuessResult{
		Tier:        models.TierClose,
		MatchKind:   models.MatchCategory,
		Similarity:  CategoryConfidence,
		Explanation: fmt.Sprintf("Right sense! The answer is a %s, now narrow it down.", c.category),
	}, true
}

func matchSubstring(c *candidate) (models.GuessResult, bool) {
	if c.answer == "" {
		return models.GuessResult{}, false
	}
	if !strings.Contains(c.answer, c.guess) && !strings.Contains(c.guess, c.answer) {
		return models.GuessResult{}, false
	}
	return models.GuessResult{
		Tier:        models.TierClose,
		MatchKind:   models.MatchSubstring,
		Similarity:  SubstringConfidence,
		Explanation: "Close! Your guess overlaps with the answer.",
	}, true
}

func (e *Evaluator) matchFuzzy(c *candidate) (models.GuessResult, bool) {
	best := c.bestSimilarity()
	switch {
	case best >= e.thresholds.Strong:
		return models.GuessResult{
			Tier:        models.TierClose,
			MatchKind:   models.MatchFuzzy,
			Similarity:  best,
			Explanation: fmt.Sprintf("Very close! Your guess is %d%% similar to the answer.", percent(best)),
		}, true
	case best >= e.thresholds.Weak:
		return models.GuessResult{
			Tier:        models.TierClose,
			MatchKind:   models.MatchFuzzy,
			Similarity:  best,
			Explanation: fmt.Sprintf("Good progress: %d%% similar to the answer.", percent(best)),
		}, true
	}
	return models.GuessResult{}, false
}

func matchCategoryToken(c *candidate) (models.GuessResult, bool) {
	for _, tok := range textnorm.Tokenize(c.category) {
		if tok != "" && strings.Contains(c.guess, tok) {
			return models.GuessResult{
				Tier:        models.TierClose,
				MatchKind:   models.MatchCategory,
				Similarity:  CategoryTokenConfidence,
				Explanation: fmt.Sprintf("You're touching on %s. Keep going!", c.category),
			}, true
		}
	}
	return models.GuessResult{}, false
}

func noMatch(c *candidate) models.GuessResult {
	return models.GuessResult{
		Tier:        models.TierNeutral,
		MatchKind:   models.MatchNone,
		Similarity:  c.bestSimilarity(),
		Explanation: "No strong connection yet. Try another angle.",
	}
}

func percent(v float64) int {
	return int(math.Round(v * 100))
}
