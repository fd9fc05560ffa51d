package api

import (
	"net/http"

	"github.com/vytor/sense/internal/logger"
)

type guessRequest struct {
	Guess string `json:"guess"`
}

func (s *Server) handleGame(w http.ResponseWriter, r *http.Request) {
	date, err := s.gameDate(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	view, err := s.GameService.LoadGame(r.Context(), userIDFromContext(r.Context()), date)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleSubmitGuess(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	date, err := s.gameDate(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req guessRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	out, err := s.GameService.SubmitGuess(r.Context(), userIDFromContext(r.Context()), date, req.Guess)
	if err != nil {
		handleError(w, r, err)
		return
	}
	log.Debug("guess scored: tier=%s", out.Result.Tier)
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	date, err := s.gameDate(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	text, err := s.GameService.ShareText(r.Context(), userIDFromContext(r.Context()), date)
	if err != nil {
		handleError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}
