package services

import (
	"context"
	"strings"
	"time"

	"github.com/vytor/sense/internal/errors"
	"github.com/vytor/sense/internal/logger"
	"github.com/vytor/sense/internal/models"
	"github.com/vytor/sense/internal/repository"
	"github.com/vytor/sense/internal/textnorm"
)

// PuzzleService handles puzzle authoring and lookup.
type PuzzleService interface {
	GetPuzzle(ctx context.Context, date string) (*models.Puzzle, error)
	ListRecent(ctx context.Context, limit int) ([]models.Puzzle, error)
	// Import validates every puzzle first and writes nothing if any is invalid.
	Import(ctx context.Context, puzzles []models.Puzzle) (int, error)
}

type puzzleService struct {
	puzzleRepo repository.PuzzleRepository
}

// NewPuzzleService creates a new PuzzleService
func NewPuzzleService(puzzleRepo repository.PuzzleRepository) PuzzleService {
	return &puzzleService{puzzleRepo: puzzleRepo}
}

func (s *puzzleService) GetPuzzle(ctx context.Context, date string) (*models.Puzzle, error) {
	log := logger.FromContext(ctx).WithPrefix("puzzle_service")
	log.Debug("getting puzzle: date=%s", date)

	p, err := s.puzzleRepo.Get(ctx, date)
	if err != nil {
		log.Error("failed to get puzzle: %v", err)
		return nil, errors.NewStoreError("puzzle_fetch", err)
	}
	if p == nil {
		return nil, errors.NewNotFoundError("puzzle", date)
	}
	return p, nil
}

func (s *puzzleService) ListRecent(ctx context.Context, limit int) ([]models.Puzzle, error) {
	log := logger.FromContext(ctx).WithPrefix("puzzle_service")
	log.Debug("listing recent puzzles: limit=%d", limit)

	if limit <= 0 || limit > 100 {
		limit = 10
	}
	puzzles, err := s.puzzleRepo.ListRecent(ctx, limit)
	if err != nil {
		log.Error("failed to list puzzles: %v", err)
		return nil, errors.NewStoreError("puzzle_fetch", err)
	}
	return puzzles, nil
}

func (s *puzzleService) Import(ctx context.Context, puzzles []models.Puzzle) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("puzzle_service")
	log.Info("importing %d puzzles", len(puzzles))

	clean := make([]models.Puzzle, 0, len(puzzles))
	seen := make(map[string]bool, len(puzzles))
	for _, p := range puzzles {
		p, err := cleanPuzzle(p)
		if err != nil {
			return 0, err
		}
		if seen[p.Date] {
			return 0, errors.NewValidationError("date", "duplicate puzzle date "+p.Date)
		}
		seen[p.Date] = true
		clean = append(clean, p)
	}

	if err := s.puzzleRepo.UpsertBatch(ctx, clean); err != nil {
		log.Error("failed to import puzzles: %v", err)
		return 0, errors.NewStoreError("puzzle_upsert", err)
	}
	log.Info("imported %d puzzles", len(clean))
	return len(clean), nil
}

func cleanPuzzle(p models.Puzzle) (models.Puzzle, error) {
	p.Date = strings.TrimSpace(p.Date)
	if _, err := time.Parse(models.DateLayout, p.Date); err != nil {
		return p, errors.NewValidationError("date", "must be YYYY-MM-DD, got "+p.Date)
	}
	p.Answer = strings.TrimSpace(p.Answer)
	if textnorm.Normalize(p.Answer) == "" {
		return p, errors.NewValidationError("answer", "cannot be empty for "+p.Date)
	}
	category, ok := models.ParseCategory(string(p.Category))
	if !ok {
		return p, errors.NewValidationError("category", "must be taste, smell or texture for "+p.Date)
	}
	p.Category = category
	p.Synonyms = trimAll(p.Synonyms)
	p.Hints = trimAll(p.Hints)
	p.Fact = strings.TrimSpace(p.Fact)
	return p, nil
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
