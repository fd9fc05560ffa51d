package api

import (
	"net/http"

	"github.com/vytor/sense/internal/models"
	"github.com/vytor/sense/internal/services"
	"github.com/vytor/sense/internal/stats"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	view, err := s.StatsService.GetStats(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if view == nil {
		// No finished games yet.
		view = &services.StatsView{UserStats: models.UserStats{UserID: userID}, TotalTimeSpent: stats.FormatDuration(0)}
	}
	writeJSON(w, http.StatusOK, view)
}
