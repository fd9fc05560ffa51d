package repository

import (
	"context"

	"github.com/vytor/sense/internal/models"
)

// ProgressRepository handles per-user, per-date session snapshots. Upsert
// replaces the row for (user_id, puzzle_date) so repeating it is harmless.
type ProgressRepository interface {
	Get(ctx context.Context, userID, date string) (*models.Progress, error)
	Upsert(ctx context.Context, progress models.Progress) error
	Delete(ctx context.Context, userID, date string) error
}
