package repository

import (
	"context"

	"github.com/vytor/sense/internal/models"
)

// StatsRepository handles the per-user aggregate record.
type StatsRepository interface {
	Get(ctx context.Context, userID string) (*models.UserStats, error)
	Upsert(ctx context.Context, stats models.UserStats) error
}
