package sqlrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/vytor/sense/internal/logger"
	"github.com/vytor/sense/internal/models"
	"github.com/vytor/sense/internal/repository"
)

var statsColumns = []string{
	"user_id", "current_streak", "max_streak", "total_played", "total_wins", "total_losses",
	"win_rate", "average_attempts", "best_attempts", "total_time_spent_seconds",
	"last_outcome", "last_attempt_count", "last_played_at", "last_puzzle_date", "updated_at",
}

const statsUpsertSuffix = `ON CONFLICT (user_id) DO UPDATE SET
current_streak = excluded.current_streak,
max_streak = excluded.max_streak,
total_played = excluded.total_played,
total_wins = excluded.total_wins,
total_losses = excluded.total_losses,
win_rate = excluded.win_rate,
average_attempts = excluded.average_attempts,
best_attempts = excluded.best_attempts,
total_time_spent_seconds = excluded.total_time_spent_seconds,
last_outcome = excluded.last_outcome,
last_attempt_count = excluded.last_attempt_count,
last_played_at = excluded.last_played_at,
last_puzzle_date = excluded.last_puzzle_date,
updated_at = excluded.updated_at`

type statsRepository struct {
	db *sql.DB
	sb squirrel.StatementBuilderType
}

// NewStatsRepository creates a new StatsRepository implementation
func NewStatsRepository(db *sql.DB, sb squirrel.StatementBuilderType) repository.StatsRepository {
	return &statsRepository{db: db, sb: sb}
}

func (r *statsRepository) Get(ctx context.Context, userID string) (*models.UserStats, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("getting stats: user_id=%s", userID)

	var (
		s            models.UserStats
		best         sql.NullInt64
		lastOutcome  string
		lastPlayedAt sql.NullTime
	)
	err := r.sb.Select(statsColumns...).
		From("user_stats").
		Where(squirrel.Eq{"user_id": userID}).
		RunWith(r.db).
		QueryRowContext(ctx).
		Scan(&s.UserID, &s.CurrentStreak, &s.MaxStreak, &s.TotalPlayed, &s.TotalWins, &s.TotalLosses,
			&s.WinRate, &s.AverageAttempts, &best, &s.TotalTimeSpentSeconds,
			&lastOutcome, &s.LastAttemptCount, &lastPlayedAt, &s.LastPuzzleDate, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("stats not found: user_id=%s", userID)
			return nil, nil
		}
		log.Error("failed to get stats: %v", err)
		return nil, err
	}
	s.BestAttempts = intPtr(best)
	s.LastOutcome = models.Outcome(lastOutcome)
	s.LastPlayedAt = timePtr(lastPlayedAt)
	return &s, nil
}

func (r *statsRepository) Upsert(ctx context.Context, s models.UserStats) error {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("upserting stats: user_id=%s, played=%d, last_puzzle_date=%s", s.UserID, s.TotalPlayed, s.LastPuzzleDate)

	_, err := r.sb.Insert("user_stats").
		Columns(statsColumns...).
		Values(s.UserID, s.CurrentStreak, s.MaxStreak, s.TotalPlayed, s.TotalWins, s.TotalLosses,
			s.WinRate, s.AverageAttempts, nullInt(s.BestAttempts), s.TotalTimeSpentSeconds,
			string(s.LastOutcome), s.LastAttemptCount, nullTime(s.LastPlayedAt), s.LastPuzzleDate, time.Now().UTC()).
		Suffix(statsUpsertSuffix).
		RunWith(r.db).
		ExecContext(ctx)
	if err != nil {
		log.Error("failed to upsert stats: %v", err)
		return err
	}
	return nil
}
