package models

import "time"

type Outcome string

const (
	OutcomeWon  Outcome = "won"
	OutcomeLost Outcome = "lost"
)

// UserStats aggregates every completed puzzle for one user.
type UserStats struct {
	UserID                string     `json:"user_id"`
	CurrentStreak         int        `json:"current_streak"`
	MaxStreak             int        `json:"max_streak"`
	TotalPlayed           int        `json:"total_played"`
	TotalWins             int        `json:"total_wins"`
	TotalLosses           int        `json:"total_losses"`
	WinRate               float64    `json:"win_rate"`
	AverageAttempts       float64    `json:"average_attempts"`
	BestAttempts          *int       `json:"best_attempts"`
	TotalTimeSpentSeconds int        `json:"total_time_spent_seconds"`
	LastOutcome           Outcome    `json:"last_outcome"`
	LastAttemptCount      int        `json:"last_attempt_count"`
	LastPlayedAt          *time.Time `json:"last_played_at"`
	LastPuzzleDate        string     `json:"last_puzzle_date"`
	UpdatedAt             time.Time  `json:"updated_at"`
}
