package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)
	if s.Metrics != nil {
		r.Handle("/metrics", s.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(identityMiddleware)
		r.Get("/game", s.handleGame)
		r.Post("/game/guesses", s.handleSubmitGuess)
		r.Get("/game/share", s.handleShare)
		r.Get("/stats", s.handleStats)
	})

	r.Route("/dev", func(r chi.Router) {
		r.Use(s.devToolsMiddleware)
		r.Use(identityMiddleware)
		r.Get("/puzzles", s.handleRecentPuzzles)
		r.Post("/puzzles/import", s.handleImportPuzzles)
		r.Post("/puzzles/refresh", s.handleRefreshFeed)
		r.Delete("/progress", s.handleResetProgress)
	})

	return r
}
