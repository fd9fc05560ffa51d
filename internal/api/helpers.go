package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vytor/sense/internal/errors"
	"github.com/vytor/sense/internal/logger"
	"github.com/vytor/sense/internal/models"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Default().Warn("failed to encode response: %v", err)
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return errors.NewBadRequestError("request body must be valid JSON")
	}
	return nil
}

// gameDate is today's UTC date, or the ?date= override when dev tools are on.
func (s *Server) gameDate(r *http.Request) (string, error) {
	today := models.DateKey(s.now())
	if !s.DevTools {
		return today, nil
	}
	raw := strings.TrimSpace(r.URL.Query().Get("date"))
	if raw == "" {
		return today, nil
	}
	if _, err := time.Parse(models.DateLayout, raw); err != nil {
		return "", errors.NewValidationError("date", "must be YYYY-MM-DD")
	}
	return raw, nil
}
