package models

import "time"

// Progress is the persisted snapshot of one user's session for one puzzle date.
type Progress struct {
	UserID     string   `json:"user_id"`
	PuzzleDate string   `json:"puzzle_date"`
	Guesses    []string `json:"guesses"`
	// Feedback is nil for snapshots written before structured feedback was stored.
	Feedback         []GuessResult `json:"guess_feedback"`
	Completed        bool          `json:"completed"`
	Attempts         int           `json:"attempts"`
	HintIndex        int           `json:"hint_index"`
	FirstGuessAt     *time.Time    `json:"first_guess_at"`
	LastGuessAt      *time.Time    `json:"last_guess_at"`
	TimeSpentSeconds int           `json:"time_spent_seconds"`
	CompletedAt      *time.Time    `json:"completed_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}
