package jobs

import (
	"github.com/vytor/sense/internal/metrics"
	"github.com/vytor/sense/internal/models"
	"github.com/vytor/sense/internal/worker"
)

// WorkerQueue implements JobQueue using worker pools
type WorkerQueue struct {
	importPool *worker.Pool
	importer   worker.PuzzleImporter
	fetcher    worker.PuzzleFetcher
	metrics    *metrics.Metrics
}

// NewWorkerQueue creates a new WorkerQueue implementation. fetcher may be nil
// when no remote feed is configured.
func NewWorkerQueue(importPool *worker.Pool, importer worker.PuzzleImporter, fetcher worker.PuzzleFetcher, m *metrics.Metrics) JobQueue {
	return &WorkerQueue{
		importPool: importPool,
		importer:   importer,
		fetcher:    fetcher,
		metrics:    m,
	}
}

func (q *WorkerQueue) EnqueueImport(source string, puzzles []models.Puzzle) error {
	if puzzles == nil {
		puzzles = []models.Puzzle{}
	}
	return q.importPool.Submit(&worker.ImportPuzzlesJob{
		Importer: q.importer,
		Metrics:  q.metrics,
		Source:   source,
		Puzzles:  puzzles,
	})
}

func (q *WorkerQueue) EnqueueSeedFile(path string) error {
	return q.importPool.Submit(&worker.ImportPuzzlesJob{
		Importer: q.importer,
		Metrics:  q.metrics,
		Source:   "seed:" + path,
		Path:     path,
	})
}

func (q *WorkerQueue) EnqueueFeed(url string) error {
	return q.importPool.Submit(&worker.ImportPuzzlesJob{
		Importer: q.importer,
		Fetcher:  q.fetcher,
		Metrics:  q.metrics,
		Source:   "feed",
		URL:      url,
	})
}
