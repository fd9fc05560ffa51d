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
	"github.com/vytor/sense/internal/testutil/mocks"
)

func TestStatsService_GetStats(t *testing.T) {
	repo := new(mocks.MockStatsRepository)
	repo.On("Get", mock.Anything, "user_1").Return(&models.UserStats{UserID: "user_1", TotalPlayed: 4, TotalTimeSpentSeconds: 185}, nil)
	repo.On("Get", mock.Anything, "user_new").Return(nil, nil)
	repo.On("Get", mock.Anything, "user_err").Return(nil, stderrors.New("boom"))
	svc := NewStatsService(repo)

	view, err := svc.GetStats(context.Background(), "user_1")
	require.NoError(t, err)
	assert.Equal(t, 4, view.TotalPlayed)
	assert.Equal(t, "3m 05s", view.TotalTimeSpent)

	view, err = svc.GetStats(context.Background(), "user_new")
	assert.NoError(t, err)
	assert.Nil(t, view)

	_, err = svc.GetStats(context.Background(), "user_err")
	assert.True(t, errors.IsStoreFailure(err))
}
