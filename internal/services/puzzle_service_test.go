package services

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vytor/sense/internal/errors"
	"github.com/vytor/sense/internal/models"
	"github.com/vytor/sense/internal/testutil"
	"github.com/vytor/sense/internal/testutil/mocks"
)

func TestPuzzleService_ImportCleansInput(t *testing.T) {
	repo := new(mocks.MockPuzzleRepository)
	svc := NewPuzzleService(repo)

	raw := models.Puzzle{
		Date:     " 2026-10-17 ",
		Answer:   "  Cinnamon ",
		Category: " Smell",
		Synonyms: []string{" spice ", "", "canela"},
		Hints:    []string{"warm", "  "},
		Fact:     " bark ",
	}
	repo.On("UpsertBatch", mock.Anything, []models.Puzzle{{
		Date:     "2026-10-17",
		Answer:   "Cinnamon",
		Category: models.CategorySmell,
		Synonyms: []string{"spice", "canela"},
		Hints:    []string{"warm"},
		Fact:     "bark",
	}}).Return(nil)

	n, err := svc.Import(context.Background(), []models.Puzzle{raw})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	repo.AssertExpectations(t)
}

func TestPuzzleService_ImportRejectsInvalid(t *testing.T) {
	good := testutil.Puzzle("2026-10-17")

	tests := []struct {
		name   string
		mutate func(p *models.Puzzle)
		field  string
	}{
		{"bad date", func(p *models.Puzzle) { p.Date = "17/10/2026" }, "date"},
		{"empty answer", func(p *models.Puzzle) { p.Answer = " !! " }, "answer"},
		{"unknown category", func(p *models.Puzzle) { p.Category = "sound" }, "category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockPuzzleRepository)
			bad := good
			tt.mutate(&bad)

			_, err := NewPuzzleService(repo).Import(context.Background(), []models.Puzzle{good, bad})
			appErr, ok := errors.As(err)
			require.True(t, ok)
			assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
			assert.Contains(t, appErr.Message, tt.field)
			repo.AssertNotCalled(t, "UpsertBatch", mock.Anything, mock.Anything)
		})
	}
}

func TestPuzzleService_ImportRejectsDuplicateDates(t *testing.T) {
	repo := new(mocks.MockPuzzleRepository)
	p := testutil.Puzzle("2026-10-17")

	_, err := NewPuzzleService(repo).Import(context.Background(), []models.Puzzle{p, p})
	assert.Error(t, err)
	repo.AssertNotCalled(t, "UpsertBatch", mock.Anything, mock.Anything)
}

func TestPuzzleService_ImportStoreFailure(t *testing.T) {
	repo := new(mocks.MockPuzzleRepository)
	repo.On("UpsertBatch", mock.Anything, mock.Anything).Return(stderrors.New("locked"))

	_, err := NewPuzzleService(repo).Import(context.Background(), []models.Puzzle{testutil.Puzzle("2026-10-17")})
	assert.True(t, errors.IsStoreFailure(err))
}

func TestPuzzleService_GetPuzzle(t *testing.T) {
	repo := new(mocks.MockPuzzleRepository)
	p := testutil.Puzzle("2026-10-17")
	repo.On("Get", mock.Anything, "2026-10-17").Return(&p, nil)
	repo.On("Get", mock.Anything, "2026-10-18").Return(nil, nil)
	svc := NewPuzzleService(repo)

	got, err := svc.GetPuzzle(context.Background(), "2026-10-17")
	require.NoError(t, err)
	assert.Equal(t, "cinnamon", got.Answer)

	_, err = svc.GetPuzzle(context.Background(), "2026-10-18")
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.Status)
}

func TestPuzzleService_ListRecentClampsLimit(t *testing.T) {
	repo := new(mocks.MockPuzzleRepository)
	repo.On("ListRecent", mock.Anything, 10).Return([]models.Puzzle{}, nil).Twice()
	svc := NewPuzzleService(repo)

	_, err := svc.ListRecent(context.Background(), 0)
	require.NoError(t, err)
	_, err = svc.ListRecent(context.Background(), 5000)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
