package services

import (
	"context"

	"github.com/vytor/sense/internal/errors"
	"github.com/vytor/sense/internal/logger"
	"github.com/vytor/sense/internal/models"
	"github.com/vytor/sense/internal/repository"
	"github.com/vytor/sense/internal/stats"
)

// StatsView is the stats record plus preformatted tile values.
type StatsView struct {
	models.UserStats
	TotalTimeSpent string `json:"total_time_spent"`
}

// StatsService handles statistics retrieval
type StatsService interface {
	// GetStats returns (nil, nil) for a player who has never finished a game.
	GetStats(ctx context.Context, userID string) (*StatsView, error)
}

type statsService struct {
	statsRepo repository.StatsRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(statsRepo repository.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

func (s *statsService) GetStats(ctx context.Context, userID string) (*StatsView, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_service")
	log.Debug("getting stats: user_id=%s", userID)

	st, err := s.statsRepo.Get(ctx, userID)
	if err != nil {
		log.Error("failed to get stats: %v", err)
		return nil, errors.NewStoreError("stats_fetch", err)
	}
	if st == nil {
		return nil, nil
	}
	return &StatsView{UserStats: *st, TotalTimeSpent: stats.FormatDuration(st.TotalTimeSpentSeconds)}, nil
}
