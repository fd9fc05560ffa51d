package api

import (
	"context"
	"time"

	"github.com/vytor/sense/internal/jobs"
	"github.com/vytor/sense/internal/metrics"
	"github.com/vytor/sense/internal/services"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	GameService   services.GameService
	StatsService  services.StatsService
	PuzzleService services.PuzzleService
	JobQueue      jobs.JobQueue
	Metrics       *metrics.Metrics
	DB            Pinger
	// FeedURL is the remote puzzle feed refreshed by POST /dev/puzzles/refresh.
	FeedURL string
	// DevTools enables the ?date= override and the /dev routes.
	DevTools bool
	// Now defaults to time.Now.
	Now func() time.Time
}

func (s *Server) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
