package api

import (
	stderrors "errors"
	"net/http"

	"github.com/vytor/sense/internal/errors"
	"github.com/vytor/sense/internal/logger"
	"github.com/vytor/sense/internal/models"
	"github.com/vytor/sense/internal/worker"
)

const recentPuzzleLimit = 10

func (s *Server) handleRecentPuzzles(w http.ResponseWriter, r *http.Request) {
	puzzles, err := s.PuzzleService.ListRecent(r.Context(), recentPuzzleLimit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if puzzles == nil {
		puzzles = []models.Puzzle{}
	}
	writeJSON(w, http.StatusOK, puzzles)
}

func (s *Server) handleImportPuzzles(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var puzzles []models.Puzzle
	if err := decodeJSON(r, &puzzles); err != nil {
		handleError(w, r, err)
		return
	}
	if len(puzzles) == 0 {
		handleError(w, r, errors.NewValidationError("puzzles", "at least one puzzle is required"))
		return
	}

	if err := s.JobQueue.EnqueueImport("dev", puzzles); err != nil {
		handleError(w, r, queueError(err))
		return
	}
	log.Info("queued import of %d puzzles", len(puzzles))
	writeJSON(w, http.StatusAccepted, map[string]int{"queued": len(puzzles)})
}

func (s *Server) handleRefreshFeed(w http.ResponseWriter, r *http.Request) {
	if s.FeedURL == "" {
		handleError(w, r, errors.NewBadRequestError("no puzzle feed is configured"))
		return
	}
	if err := s.JobQueue.EnqueueFeed(s.FeedURL); err != nil {
		handleError(w, r, queueError(err))
		return
	}
	logger.FromContext(r.Context()).Info("queued puzzle feed refresh")
	w.WriteHeader(http.StatusAccepted)
}

func queueError(err error) error {
	if stderrors.Is(err, worker.ErrQueueFull) || stderrors.Is(err, worker.ErrPoolStopped) {
		return errors.NewUnavailableError("The import queue is busy. Try again shortly.", err)
	}
	return err
}

func (s *Server) handleResetProgress(w http.ResponseWriter, r *http.Request) {
	date, err := s.gameDate(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.GameService.ResetProgress(r.Context(), userIDFromContext(r.Context()), date); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
