package jobs

import "github.com/vytor/sense/internal/models"

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	EnqueueImport(source string, puzzles []models.Puzzle) error
	EnqueueSeedFile(path string) error
	EnqueueFeed(url string) error
}
