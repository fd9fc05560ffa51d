package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/sense/internal/models"
)

// MockStatsRepository is a mock implementation of repository.StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) Get(ctx context.Context, userID string) (*models.UserStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserStats), args.Error(1)
}

func (m *MockStatsRepository) Upsert(ctx context.Context, stats models.UserStats) error {
	args := m.Called(ctx, stats)
	return args.Error(0)
}
