package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/vytor/sense/internal/logger"
	"github.com/vytor/sense/internal/metrics"
	"github.com/vytor/sense/internal/models"
)

// ImportPuzzlesJob writes a batch of authored puzzles. When Puzzles is nil
// the batch is read from the JSON file at Path, or fetched from URL.
type ImportPuzzlesJob struct {
	Importer PuzzleImporter
	Fetcher  PuzzleFetcher
	Metrics  *metrics.Metrics
	Source   string
	Puzzles  []models.Puzzle
	Path     string
	URL      string
}

func (j *ImportPuzzlesJob) Name() string { return "import_puzzles" }

func (j *ImportPuzzlesJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("source", j.Source)

	puzzles, err := j.load(ctx)
	if err != nil {
		log.Error("failed to load puzzles: %v", err)
		j.Metrics.ObserveImport("failed", 0)
		return err
	}

	log.Info("importing %d puzzles", len(puzzles))
	n, err := j.Importer.Import(ctx, puzzles)
	if err != nil {
		j.Metrics.ObserveImport("failed", 0)
		return err
	}
	j.Metrics.ObserveImport("ok", n)
	log.Info("imported %d puzzles", n)
	return nil
}

func (j *ImportPuzzlesJob) load(ctx context.Context) ([]models.Puzzle, error) {
	switch {
	case j.Puzzles != nil:
		return j.Puzzles, nil
	case j.Path != "":
		return LoadPuzzleFile(j.Path)
	case j.URL != "":
		if j.Fetcher == nil {
			return nil, fmt.Errorf("no feed fetcher configured for %s", j.URL)
		}
		return j.Fetcher.Fetch(ctx, j.URL)
	}
	return nil, nil
}

// LoadPuzzleFile reads a JSON array of puzzles.
func LoadPuzzleFile(path string) ([]models.Puzzle, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var puzzles []models.Puzzle
	if err := json.Unmarshal(b, &puzzles); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return puzzles, nil
}
