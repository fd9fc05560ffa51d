package repository

import (
	"context"

	"github.com/vytor/sense/internal/models"
)

// PuzzleRepository handles daily puzzle data access. Get returns (nil, nil)
// when no puzzle exists for the date.
type PuzzleRepository interface {
	Get(ctx context.Context, date string) (*models.Puzzle, error)
	ListRecent(ctx context.Context, limit int) ([]models.Puzzle, error)
	Upsert(ctx context.Context, puzzle models.Puzzle) error
	UpsertBatch(ctx context.Context, puzzles []models.Puzzle) error
}
