package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/sense/internal/models"
)

// MockPuzzleRepository is a mock implementation of repository.PuzzleRepository
type MockPuzzleRepository struct {
	mock.Mock
}

func (m *MockPuzzleRepository) Get(ctx context.Context, date string) (*models.Puzzle, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Puzzle), args.Error(1)
}

func (m *MockPuzzleRepository) ListRecent(ctx context.Context, limit int) ([]models.Puzzle, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Puzzle), args.Error(1)
}

func (m *MockPuzzleRepository) Upsert(ctx context.Context, puzzle models.Puzzle) error {
	args := m.Called(ctx, puzzle)
	return args.Error(0)
}

func (m *MockPuzzleRepository) UpsertBatch(ctx context.Context, puzzles []models.Puzzle) error {
	args := m.Called(ctx, puzzles)
	return args.Error(0)
}
