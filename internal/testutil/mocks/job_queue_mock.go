package mocks

import (
	"github.com/stretchr/testify/mock"
	"github.com/vytor/sense/internal/models"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueImport(source string, puzzles []models.Puzzle) error {
	args := m.Called(source, puzzles)
	return args.Error(0)
}

func (m *MockJobQueue) EnqueueSeedFile(path string) error {
	args := m.Called(path)
	return args.Error(0)
}

func (m *MockJobQueue) EnqueueFeed(url string) error {
	args := m.Called(url)
	return args.Error(0)
}
