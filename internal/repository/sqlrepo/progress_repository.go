package sqlrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/vytor/sense/internal/logger"
	"github.com/vytor/sense/internal/models"
	"github.com/vytor/sense/internal/repository"
)

var progressColumns = []string{
	"user_id", "puzzle_date", "guesses", "guess_feedback", "completed", "attempts", "hint_index",
	"first_guess_at", "last_guess_at", "time_spent_seconds", "completed_at", "updated_at",
}

const progressUpsertSuffix = `ON CONFLICT (user_id, puzzle_date) DO UPDATE SET
guesses = excluded.guesses,
guess_feedback = excluded.guess_feedback,
completed = excluded.completed,
attempts = excluded.attempts,
hint_index = excluded.hint_index,
first_guess_at = excluded.first_guess_at,
last_guess_at = excluded.last_guess_at,
time_spent_seconds = excluded.time_spent_seconds,
completed_at = excluded.completed_at,
updated_at = excluded.updated_at`

type progressRepository struct {
	db *sql.DB
	sb squirrel.StatementBuilderType
}

// NewProgressRepository creates a new ProgressRepository implementation
func NewProgressRepository(db *sql.DB, sb squirrel.StatementBuilderType) repository.ProgressRepository {
	return &progressRepository{db: db, sb: sb}
}

func (r *progressRepository) Get(ctx context.Context, userID, date string) (*models.Progress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("getting progress: user_id=%s, date=%s", userID, date)

	var (
		p                                      models.Progress
		guesses                                string
		feedback                               sql.NullString
		firstGuessAt, lastGuessAt, completedAt sql.NullTime
	)
	err := r.sb.Select(progressColumns...).
		From("user_progress").
		Where(squirrel.Eq{"user_id": userID, "puzzle_date": date}).
		RunWith(r.db).
		QueryRowContext(ctx).
		Scan(&p.UserID, &p.PuzzleDate, &guesses, &feedback, &p.Completed, &p.Attempts, &p.HintIndex,
			&firstGuessAt, &lastGuessAt, &p.TimeSpentSeconds, &completedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("progress not found: user_id=%s, date=%s", userID, date)
			return nil, nil
		}
		log.Error("failed to get progress: %v", err)
		return nil, err
	}

	if p.Guesses, err = decodeList(guesses); err != nil {
		log.Error("failed to decode guesses: %v", err)
		return nil, err
	}
	if feedback.Valid && feedback.String != "" {
		if err := json.Unmarshal([]byte(feedback.String), &p.Feedback); err != nil {
			log.Error("failed to decode guess feedback: %v", err)
			return nil, err
		}
	}
	p.FirstGuessAt = timePtr(firstGuessAt)
	p.LastGuessAt = timePtr(lastGuessAt)
	p.CompletedAt = timePtr(completedAt)

	log.Debug("progress found: attempts=%d, completed=%t", p.Attempts, p.Completed)
	return &p, nil
}

func (r *progressRepository) Upsert(ctx context.Context, p models.Progress) error {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("upserting progress: user_id=%s, date=%s, attempts=%d", p.UserID, p.PuzzleDate, p.Attempts)

	guesses, err := encodeList(p.Guesses)
	if err != nil {
		log.Error("failed to encode guesses: %v", err)
		return err
	}
	var feedback sql.NullString
	if p.Feedback != nil {
		b, err := json.Marshal(p.Feedback)
		if err != nil {
			log.Error("failed to encode guess feedback: %v", err)
			return err
		}
		feedback = sql.NullString{String: string(b), Valid: true}
	}

	_, err = r.sb.Insert("user_progress").
		Columns(progressColumns...).
		Values(p.UserID, p.PuzzleDate, guesses, feedback, p.Completed, p.Attempts, p.HintIndex,
			nullTime(p.FirstGuessAt), nullTime(p.LastGuessAt), p.TimeSpentSeconds, nullTime(p.CompletedAt), time.Now().UTC()).
		Suffix(progressUpsertSuffix).
		RunWith(r.db).
		ExecContext(ctx)
	if err != nil {
		log.Error("failed to upsert progress: %v", err)
		return err
	}
	return nil
}

func (r *progressRepository) Delete(ctx context.Context, userID, date string) error {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("deleting progress: user_id=%s, date=%s", userID, date)

	_, err := r.sb.Delete("user_progress").
		Where(squirrel.Eq{"user_id": userID, "puzzle_date": date}).
		RunWith(r.db).
		ExecContext(ctx)
	if err != nil {
		log.Error("failed to delete progress: %v", err)
		return err
	}
	return nil
}
