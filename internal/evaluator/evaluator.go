// Package evaluator grades a free-text guess against a puzzle answer.
//
// Evaluation is an ordered cascade of independent rules. The first rule
// that matches decides the result; later rules are never consulted. Cheap,
// explainable checks (exact, synonym, category, substring) run before the
// edit-distance comparison.
package evaluator

import (
	"github.com/vytor/sense/internal/models"
	"github.com/vytor/sense/internal/similarity"
	"github.com/vytor/sense/internal/textnorm"
)

// Default fuzzy cutoffs. Both tiers map to models.TierClose and differ only
// in the explanation shown to the player.
const (
	DefaultStrongThreshold = 0.82
	DefaultWeakThreshold   = 0.68
)

// Fixed confidence values reported by rules that do not measure similarity.
const (
	SynonymConfidence       = 0.92
	CategoryConfidence      = 0.70
	SubstringConfidence     = 0.75
	CategoryTokenConfidence = 0.65
)

// Thresholds holds the tunable fuzzy-match cutoffs.
type Thresholds struct {
	Strong float64
	Weak   float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{Strong: DefaultStrongThreshold, Weak: DefaultWeakThreshold}
}

// Evaluator is immutable after construction and safe for concurrent use.
type Evaluator struct {
	thresholds Thresholds
	rules      []rule
}

// New builds an Evaluator with the standard rule order.
func New(th Thresholds) *Evaluator {
	e := &Evaluator{thresholds: th}
	e.rules = []rule{
		{name: "empty", apply: matchEmpty},
		{name: "exact", apply: matchExact},
		{name: "synonym", apply: matchSynonym},
		{name: "category", apply: matchCategory},
		{name: "substring", apply: matchSubstring},
		{name: "fuzzy", apply: e.matchFuzzy},
		{name: "category_token", apply: matchCategoryToken},
	}
	return e
}

var defaultEvaluator = New(DefaultThresholds())

// Default returns the evaluator configured with DefaultThresholds.
func Default() *Evaluator {
	return defaultEvaluator
}

// Evaluate grades guess with the default thresholds.
func Evaluate(guess, answer string, synonyms []string, category string) models.GuessResult {
	return defaultEvaluator.Evaluate(guess, answer, synonyms, category)
}

// Thresholds returns the cutoffs this evaluator was built with.
func (e *Evaluator) Thresholds() Thresholds {
	return e.thresholds
}

// Evaluate grades guess against the answer, its synonyms and its category.
// The returned GuessResult carries guess exactly as given.
func (e *Evaluator) Evaluate(guess, answer string, synonyms []string, category string) models.GuessResult {
	c := newCandidate(guess, answer, synonyms, category)
	for _, r := range e.rules {
		if res, ok := r.apply(c); ok {
			res.Guess = guess
			return res
		}
	}
	res := noMatch(c)
	res.Guess = guess
	return res
}

// EvaluatePuzzle grades guess against a puzzle definition.
func (e *Evaluator) EvaluatePuzzle(guess string, p models.Puzzle) models.GuessResult {
	return e.Evaluate(guess, p.Answer, p.Synonyms, string(p.Category))
}

// candidate holds the normalized inputs shared by every rule.
type candidate struct {
	guess    string
	answer   string
	category string
	synonyms []string

	best     float64
	bestDone bool
}

func newCandidate(guess, answer string, synonyms []string, category string) *candidate {
	c := &candidate{
		guess:    textnorm.Normalize(guess),
		answer:   textnorm.Normalize(answer),
		category: textnorm.Normalize(category),
		synonyms: make([]string, 0, len(synonyms)),
	}
	for _, s := range synonyms {
		c.synonyms = append(c.synonyms, textnorm.Normalize(s))
	}
	return c
}

// bestSimilarity is the highest score of the guess against the answer and
// every synonym. It is computed once and reused by later rules.
func (c *candidate) bestSimilarity() float64 {
	if c.bestDone {
		return c.best
	}
	best := similarity.Score(c.guess, c.answer)
	for _, s := range c.synonyms {
		if v := similarity.Score(c.guess, s); v > best {
			best = v
		}
	}
	c.best = best
	c.bestDone = true
	return best
}
