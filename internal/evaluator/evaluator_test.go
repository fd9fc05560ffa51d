package evaluator_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/sense/internal/evaluator"
	"github.com/vytor/sense/internal/models"
)

// edited returns a string of length n that differs from strings.Repeat("a", n)
// by exactly d substitutions, so its similarity to that string is (n-d)/n.
func edited(n, d int) string {
	return strings.Repeat("z", d) + strings.Repeat("a", n-d)
}

func TestEvaluate_CinnamonScenario(t *testing.T) {
	answer := "cinnamon"
	synonyms := []string{"spice"}
	category := "smell"

	tests := []struct {
		name       string
		guess      string
		tier       models.Tier
		kind       models.MatchKind
		similarity float64
	}{
		{name: "exact", guess: "cinnamon", tier: models.TierCorrect, kind: models.MatchExact, similarity: 1},
		{name: "exact with accents and case", guess: "  CinnaMón ", tier: models.TierCorrect, kind: models.MatchExact, similarity: 1},
		{name: "typo is a strong fuzzy match", guess: "cinamon", tier: models.TierClose, kind: models.MatchFuzzy, similarity: 0.875},
		{name: "synonym", guess: "spice", tier: models.TierClose, kind: models.MatchSynonym, similarity: 0.92},
		{name: "synonym ignores case", guess: "SPICE", tier: models.TierClose, kind: models.MatchSynonym, similarity: 0.92},
		{name: "category", guess: "smell", tier: models.TierClose, kind: models.MatchCategory, similarity: 0.70},
		{name: "substring of answer", guess: "cinna", tier: models.TierClose, kind: models.MatchSubstring, similarity: 0.75},
		{name: "answer inside guess", guess: "cinnamon roll", tier: models.TierClose, kind: models.MatchSubstring, similarity: 0.75},
		{name: "unrelated", guess: "xyz", tier: models.TierNeutral, kind: models.MatchNone, similarity: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := evaluator.Evaluate(tt.guess, answer, synonyms, category)
			assert.Equal(t, tt.tier, res.Tier)
			assert.Equal(t, tt.kind, res.MatchKind)
			assert.InDelta(t, tt.similarity, res.Similarity, 1e-9)
			assert.NotEmpty(t, res.Explanation)
			assert.Equal(t, tt.guess, res.Guess, "guess text should be preserved as given")
		})
	}
}

func TestEvaluate_EmptyGuess(t *testing.T) {
	for _, g := range []string{"", "   ", "?!", "\t"} {
		res := evaluator.Evaluate(g, "cinnamon", nil, "smell")
		assert.Equal(t, models.TierNeutral, res.Tier)
		assert.Equal(t, models.MatchNone, res.MatchKind)
		assert.Equal(t, 0.0, res.Similarity)
		assert.Contains(t, res.Explanation, "Type a word")
	}
}

func TestEvaluate_AnswerIsAlwaysExact(t *testing.T) {
	for _, a := range []string{"salty", "velvet", "petrichor", "sour cream"} {
		res := evaluator.Evaluate(a, a, nil, "taste")
		assert.Equal(t, models.TierCorrect, res.Tier)
		assert.Equal(t, models.MatchExact, res.MatchKind)
	}
}

func TestEvaluate_RuleOrder(t *testing.T) {
	t.Run("exact beats synonym", func(t *testing.T) {
		res := evaluator.Evaluate("umami", "umami", []string{"umami"}, "taste")
		assert.Equal(t, models.MatchExact, res.MatchKind)
	})
	t.Run("synonym beats category", func(t *testing.T) {
		res := evaluator.Evaluate("taste", "umami", []string{"taste"}, "taste")
		assert.Equal(t, models.MatchSynonym, res.MatchKind)
	})
	t.Run("category beats substring", func(t *testing.T) {
		res := evaluator.Evaluate("smell", "smelly socks", nil, "smell")
		assert.Equal(t, models.MatchCategory, res.MatchKind)
		assert.Equal(t, evaluator.CategoryConfidence, res.Similarity)
	})
	t.Run("category matches incidental substring", func(t *testing.T) {
		res := evaluator.Evaluate("aftertaste", "bitter", nil, "taste")
		assert.Equal(t, models.MatchCategory, res.MatchKind)
	})
	t.Run("substring beats fuzzy", func(t *testing.T) {
		res := evaluator.Evaluate("cinnamo", "cinnamon", nil, "smell")
		assert.Equal(t, models.MatchSubstring, res.MatchKind)
	})
}

func TestEvaluate_StrongThresholdBoundary(t *testing.T) {
	answer := strings.Repeat("a", 50)

	res := evaluator.Evaluate(edited(50, 9), answer, nil, "smell")
	require.Equal(t, models.MatchFuzzy, res.MatchKind)
	assert.Equal(t, models.TierClose, res.Tier)
	assert.Equal(t, 0.82, res.Similarity)
	assert.Contains(t, res.Explanation, "Very close")
	assert.Contains(t, res.Explanation, "82%")

	res = evaluator.Evaluate(edited(50, 10), answer, nil, "smell")
	require.Equal(t, models.MatchFuzzy, res.MatchKind)
	assert.Equal(t, 0.8, res.Similarity)
	assert.Contains(t, res.Explanation, "Good progress")
}

func TestEvaluate_WeakThresholdBoundary(t *testing.T) {
	answer := strings.Repeat("a", 50)

	res := evaluator.Evaluate(edited(50, 16), answer, nil, "smell")
	require.Equal(t, models.MatchFuzzy, res.MatchKind)
	assert.Equal(t, 0.68, res.Similarity)
	assert.Contains(t, res.Explanation, "Good progress")

	res = evaluator.Evaluate(edited(50, 17), answer, nil, "smell")
	assert.Equal(t, models.TierNeutral, res.Tier)
	assert.Equal(t, models.MatchNone, res.MatchKind)
	assert.Equal(t, 0.66, res.Similarity, "best similarity is carried into the neutral result")
}

func TestEvaluate_JustBelowWeakThreshold(t *testing.T) {
	answer := strings.Repeat("a", 1000)
	guess := edited(1000, 321)

	res := evaluator.Evaluate(guess, answer, nil, "smell")
	assert.Equal(t, models.MatchNone, res.MatchKind)
	assert.Equal(t, 0.679, res.Similarity)

	// A category token inside the guess rescues it.
	res = evaluator.Evaluate(guess, answer, nil, "zzz sense")
	assert.Equal(t, models.TierClose, res.Tier)
	assert.Equal(t, models.MatchCategory, res.MatchKind)
	assert.Equal(t, evaluator.CategoryTokenConfidence, res.Similarity)
}

func TestEvaluate_SynonymSimilarityCounts(t *testing.T) {
	// "cinamon" is far from the answer but one edit from a synonym.
	res := evaluator.Evaluate("cinamon", "nutmeg", []string{"cinnamon"}, "smell")
	assert.Equal(t, models.MatchFuzzy, res.MatchKind)
	assert.Equal(t, 0.875, res.Similarity)
}

func TestEvaluate_CustomThresholds(t *testing.T) {
	e := evaluator.New(evaluator.Thresholds{Strong: 0.9, Weak: 0.8})
	assert.Equal(t, 0.9, e.Thresholds().Strong)

	res := e.Evaluate("cinamon", "cinnamon", nil, "smell")
	assert.Equal(t, models.MatchFuzzy, res.MatchKind)
	assert.Contains(t, res.Explanation, "Good progress")

	strict := evaluator.New(evaluator.Thresholds{Strong: 0.95, Weak: 0.9})
	res = strict.Evaluate("cinamon", "cinnamon", nil, "smell")
	assert.Equal(t, models.MatchNone, res.MatchKind)
}

func TestEvaluate_Deterministic(t *testing.T) {
	first := evaluator.Evaluate("cinamon", "cinnamon", []string{"spice"}, "smell")
	second := evaluator.Evaluate("cinamon", "cinnamon", []string{"spice"}, "smell")
	assert.Equal(t, first, second)
}

func TestEvaluatePuzzle(t *testing.T) {
	p := models.Puzzle{Answer: "velvet", Category: models.CategoryTexture, Synonyms: []string{"plush"}}
	res := evaluator.Default().EvaluatePuzzle("plush", p)
	assert.Equal(t, models.MatchSynonym, res.MatchKind)
}

func TestEvaluate_ConcurrentUse(t *testing.T) {
	done := make(chan models.GuessResult, 16)
	for i := 0; i < 16; i++ {
		go func() {
			done <- evaluator.Evaluate("cinamon", "cinnamon", []string{"spice"}, "smell")
		}()
	}
	for i := 0; i < 16; i++ {
		res := <-done
		assert.Equal(t, 0.875, res.Similarity)
	}
}
