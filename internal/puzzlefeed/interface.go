package puzzlefeed

import (
	"context"

	"github.com/vytor/sense/internal/models"
)

// Fetcher downloads authored puzzles from a remote feed.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]models.Puzzle, error)
}

// Ensure Client implements the interface
var _ Fetcher = (*Client)(nil)
