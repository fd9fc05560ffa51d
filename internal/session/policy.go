package session

import (
	"strings"
	"time"

	"github.com/vytor/sense/internal/errors"
	"github.com/vytor/sense/internal/evaluator"
	"github.com/vytor/sense/internal/models"
	"github.com/vytor/sense/internal/stats"
)

// Policy applies guesses to session state. It holds no per-session data and
// is safe for concurrent use.
type Policy struct {
	evaluator *evaluator.Evaluator
	now       func() time.Time
}

// Option configures a Policy.
type Option func(*Policy)

// WithEvaluator sets the evaluator used to grade guesses.
func WithEvaluator(e *evaluator.Evaluator) Option {
	return func(p *Policy) {
		p.evaluator = e
	}
}

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(p *Policy) {
		p.now = now
	}
}

func NewPolicy(opts ...Option) *Policy {
	p := &Policy{
		evaluator: evaluator.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Submission is the result of an accepted guess. State is the candidate next
// state; it only becomes authoritative once the caller has persisted it.
type Submission struct {
	State  State
	Result models.GuessResult
	// Completion is set only when this guess ended the game.
	Completion *stats.Outcome
}

// Submit validates raw, evaluates it and returns the next state. Rejected
// guesses return an errors.AppError with code GUESS_REJECTED and leave
// state untouched.
func (p *Policy) Submit(state State, puzzle models.Puzzle, raw string) (Submission, error) {
	if state.Terminal() {
		return Submission{}, errors.NewRejectedError(errors.ReasonGameOver, "Today's puzzle is already finished. Come back tomorrow!")
	}

	guess := strings.TrimSpace(raw)
	if guess == "" {
		return Submission{}, errors.NewRejectedError(errors.ReasonEmptyGuess, "Please enter a guess before submitting.")
	}
	if len(state.Guesses) >= AttemptBudget {
		return Submission{}, errors.NewRejectedError(errors.ReasonBudgetExhausted, "You've used every guess for today's puzzle.")
	}
	for _, g := range state.Guesses {
		if strings.EqualFold(strings.TrimSpace(g.Guess), guess) {
			return Submission{}, errors.NewRejectedError(errors.ReasonDuplicateGuess, "You already tried that guess - mix it up!")
		}
	}

	result := p.evaluator.EvaluatePuzzle(guess, puzzle)

	next := state.clone()
	next.Guesses = append(next.Guesses, result)

	now := p.now().UTC()
	if next.FirstGuessAt == nil {
		first := now
		next.FirstGuessAt = &first
	}
	last := now
	next.LastGuessAt = &last

	elapsed := int(now.Sub(*next.FirstGuessAt) / time.Second)
	if elapsed > next.TimeSpentSeconds {
		next.TimeSpentSeconds = elapsed
	}

	if result.Tier != models.TierCorrect {
		next.HintIndex = HintIndexFor(next.Guesses, len(Hints(puzzle)))
	}

	sub := Submission{State: next, Result: result}

	won := result.Tier == models.TierCorrect
	if won || len(next.Guesses) >= AttemptBudget {
		completedAt := now
		sub.State.Completed = true
		sub.State.CompletedAt = &completedAt
		if won {
			sub.State.Status = StatusWon
		} else {
			sub.State.Status = StatusLost
		}
		sub.Completion = &stats.Outcome{
			UserID:           next.UserID,
			PuzzleDate:       next.PuzzleDate,
			Won:              won,
			Attempts:         len(next.Guesses),
			TimeSpentSeconds: float64(next.TimeSpentSeconds),
			PlayedAt:         now,
		}
	}

	return sub, nil
}

// LoadOrInit rebuilds a session from its persisted snapshot, or starts a
// fresh one when persisted is nil. Snapshots without structured feedback are
// backfilled by re-evaluating the raw guesses against the current puzzle;
// the second return value reports whether that happened.
func (p *Policy) LoadOrInit(userID, date string, puzzle models.Puzzle, persisted *models.Progress) (State, bool) {
	if persisted == nil {
		return Fresh(userID, date), false
	}

	st := Fresh(userID, date)
	backfilled := false

	if len(persisted.Feedback) > 0 {
		st.Guesses = append(st.Guesses, persisted.Feedback...)
	} else {
		for _, g := range persisted.Guesses {
			st.Guesses = append(st.Guesses, p.evaluator.EvaluatePuzzle(g, puzzle))
		}
		backfilled = len(persisted.Guesses) > 0
	}

	st.HintIndex = HintIndexFor(st.Guesses, len(Hints(puzzle)))
	st.FirstGuessAt = persisted.FirstGuessAt
	st.LastGuessAt = persisted.LastGuessAt
	st.CompletedAt = persisted.CompletedAt
	if persisted.TimeSpentSeconds > 0 {
		st.TimeSpentSeconds = persisted.TimeSpentSeconds
	}

	won := false
	for _, g := range st.Guesses {
		if g.Tier == models.TierCorrect {
			won = true
			break
		}
	}
	if persisted.Completed || won || len(st.Guesses) >= AttemptBudget {
		st.Completed = true
		if won {
			st.Status = StatusWon
		} else {
			st.Status = StatusLost
		}
	}

	return st, backfilled
}
