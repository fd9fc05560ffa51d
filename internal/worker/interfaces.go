package worker

import (
	"context"

	"github.com/vytor/sense/internal/models"
)

// PuzzleImporter validates and stores puzzles.
// This avoids import cycles by not importing the services package
type PuzzleImporter interface {
	Import(ctx context.Context, puzzles []models.Puzzle) (int, error)
}

// PuzzleFetcher downloads puzzles from a remote feed.
type PuzzleFetcher interface {
	Fetch(ctx context.Context, url string) ([]models.Puzzle, error)
}
