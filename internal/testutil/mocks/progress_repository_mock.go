package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/sense/internal/models"
)

// MockProgressRepository is a mock implementation of repository.ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) Get(ctx context.Context, userID, date string) (*models.Progress, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Progress), args.Error(1)
}

func (m *MockProgressRepository) Upsert(ctx context.Context, progress models.Progress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

func (m *MockProgressRepository) Delete(ctx context.Context, userID, date string) error {
	args := m.Called(ctx, userID, date)
	return args.Error(0)
}
