// Package session is the stateful wrapper around the evaluator: it guards
// submissions, advances hints, tracks time and decides when a game ends.
package session

import (
	"time"

	"github.com/vytor/sense/internal/models"
)

// AttemptBudget is the number of guesses a player gets per puzzle.
const AttemptBudget = 6

// PlaceholderHint stands in for puzzles authored without hints.
const PlaceholderHint = "No hints available yet."

type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// State is one user's session for one puzzle date.
type State struct {
	UserID           string
	PuzzleDate       string
	Guesses          []models.GuessResult
	HintIndex        int
	Completed        bool
	Status           Status
	FirstGuessAt     *time.Time
	LastGuessAt      *time.Time
	TimeSpentSeconds int
	CompletedAt      *time.Time
}

// Fresh returns an empty playing session.
func Fresh(userID, date string) State {
	return State{
		UserID:     userID,
		PuzzleDate: date,
		Guesses:    []models.GuessResult{},
		Status:     StatusPlaying,
	}
}

func (s State) Attempts() int { return len(s.Guesses) }

func (s State) Terminal() bool {
	return s.Completed || s.Status == StatusWon || s.Status == StatusLost
}

func (s State) Won() bool { return s.Status == StatusWon }

// Remaining is the number of guesses left in the budget.
func (s State) Remaining() int {
	if n := AttemptBudget - len(s.Guesses); n > 0 {
		return n
	}
	return 0
}

// Progress converts the state into its persisted shape.
func (s State) Progress() models.Progress {
	raw := make([]string, len(s.Guesses))
	for i, g := range s.Guesses {
		raw[i] = g.Guess
	}
	feedback := make([]models.GuessResult, len(s.Guesses))
	copy(feedback, s.Guesses)

	return models.Progress{
		UserID:           s.UserID,
		PuzzleDate:       s.PuzzleDate,
		Guesses:          raw,
		Feedback:         feedback,
		Completed:        s.Completed,
		Attempts:         len(s.Guesses),
		HintIndex:        s.HintIndex,
		FirstGuessAt:     s.FirstGuessAt,
		LastGuessAt:      s.LastGuessAt,
		TimeSpentSeconds: s.TimeSpentSeconds,
		CompletedAt:      s.CompletedAt,
	}
}

func (s State) clone() State {
	out := s
	out.Guesses = make([]models.GuessResult, len(s.Guesses), len(s.Guesses)+1)
	copy(out.Guesses, s.Guesses)
	return out
}

// Hints returns the puzzle's hints, or the placeholder when it has none.
func Hints(p models.Puzzle) []string {
	if len(p.Hints) == 0 {
		return []string{PlaceholderHint}
	}
	return p.Hints
}

// HintIndexFor is min(non-correct guesses, hintCount-1), never negative.
// A correct guess does not advance it.
func HintIndexFor(guesses []models.GuessResult, hintCount int) int {
	misses := 0
	for _, g := range guesses {
		if g.Tier != models.TierCorrect {
			misses++
		}
	}
	maxIdx := hintCount - 1
	if maxIdx < 0 {
		maxIdx = 0
	}
	if misses > maxIdx {
		return maxIdx
	}
	return misses
}

// Hint is the hint currently visible to the player.
type Hint struct {
	Text   string `json:"text"`
	Number int    `json:"number"`
	Total  int    `json:"total"`
}

// CurrentHint resolves the visible hint for s against p.
func (s State) CurrentHint(p models.Puzzle) Hint {
	hints := Hints(p)
	idx := s.HintIndex
	if idx > len(hints)-1 {
		idx = len(hints) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return Hint{Text: hints[idx], Number: idx + 1, Total: len(hints)}
}
