package services

import (
	"github.com/vytor/sense/internal/models"
	"github.com/vytor/sense/internal/session"
)

// GuessFeedback is a guess result plus the tone a client colours it with.
type GuessFeedback struct {
	models.GuessResult
	Tone string `json:"tone"`
}

func feedbackFor(r models.GuessResult) GuessFeedback {
	return GuessFeedback{GuessResult: r, Tone: r.Tier.Tone()}
}

// Reveal is shown once a game is over.
type Reveal struct {
	Answer string `json:"answer"`
	Fact   string `json:"fact"`
}

// GameView is everything a client needs to render one day's game.
type GameView struct {
	Date             string          `json:"date"`
	Category         models.Category `json:"category"`
	Guesses          []GuessFeedback `json:"guesses"`
	Attempts         int             `json:"attempts"`
	MaxAttempts      int             `json:"max_attempts"`
	Remaining        int             `json:"remaining"`
	Status           session.Status  `json:"status"`
	Hint             session.Hint    `json:"hint"`
	TimeSpentSeconds int             `json:"time_spent_seconds"`
	TimeSpent        string          `json:"time_spent"`
	Reveal           *Reveal         `json:"reveal,omitempty"`
}

// GuessOutcome is the response to an accepted guess.
type GuessOutcome struct {
	Result GuessFeedback     `json:"result"`
	Game   GameView          `json:"game"`
	Stats  *models.UserStats `json:"stats,omitempty"`
}
