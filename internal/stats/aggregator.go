package stats

import (
	"math"
	"time"

	"github.com/vytor/sense/internal/models"
)

// Outcome is one finished puzzle, ready to be folded into UserStats.
type Outcome struct {
	UserID           string
	PuzzleDate       string
	Won              bool
	Attempts         int
	TimeSpentSeconds float64
	PlayedAt         time.Time
}

// ApplyOutcome folds o into existing (nil for a first-time player) and
// returns the new aggregate. A puzzle date that was already folded returns
// existing unchanged, so retries and reloads never double count.
func ApplyOutcome(existing *models.UserStats, o Outcome) models.UserStats {
	if existing != nil && existing.LastPuzzleDate == o.PuzzleDate {
		return *existing
	}

	var s models.UserStats
	if existing != nil {
		s = *existing
	} else {
		s.UserID = o.UserID
	}

	attempts := o.Attempts
	if attempts < 1 {
		attempts = 1
	}
	prevPlayed := s.TotalPlayed
	prevAverage := s.AverageAttempts

	s.TotalPlayed++
	if o.Won {
		s.TotalWins++
		s.CurrentStreak++
	} else {
		s.CurrentStreak = 0
	}
	s.TotalLosses = s.TotalPlayed - s.TotalWins
	if s.CurrentStreak > s.MaxStreak {
		s.MaxStreak = s.CurrentStreak
	}

	// Running mean over every play, wins and losses alike.
	s.AverageAttempts = (prevAverage*float64(prevPlayed) + float64(attempts)) / float64(s.TotalPlayed)

	if s.BestAttempts != nil {
		best := *s.BestAttempts
		s.BestAttempts = &best
	}
	if o.Won && (s.BestAttempts == nil || attempts < *s.BestAttempts) {
		best := attempts
		s.BestAttempts = &best
	}

	s.WinRate = round2(float64(s.TotalWins) / float64(s.TotalPlayed) * 100)
	s.TotalTimeSpentSeconds += int(math.Max(0, math.Round(o.TimeSpentSeconds)))

	if o.Won {
		s.LastOutcome = models.OutcomeWon
	} else {
		s.LastOutcome = models.OutcomeLost
	}
	playedAt := o.PlayedAt
	s.LastPlayedAt = &playedAt
	s.LastAttemptCount = attempts
	s.LastPuzzleDate = o.PuzzleDate

	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
