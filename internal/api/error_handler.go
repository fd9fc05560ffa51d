package api

import (
	"net/http"

	"github.com/vytor/sense/internal/errors"
	"github.com/vytor/sense/internal/logger"
)

func errorBody(appErr *errors.AppError) map[string]any {
	body := map[string]any{
		"code":    appErr.Code,
		"message": appErr.Message,
	}
	if appErr.Reason != "" {
		body["reason"] = appErr.Reason
	}
	return map[string]any{"error": body}
}

// handleError centralizes error handling for HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	appErr, ok := errors.As(err)
	if !ok {
		// Wrap unknown errors as internal errors
		appErr = errors.NewInternalError(err)
	}

	if appErr.Status >= 500 {
		log.Error("server error: %v", appErr)
	} else if appErr.Status >= 400 {
		log.Warn("client error: %v", appErr)
	} else {
		log.Debug("error: %v", appErr)
	}

	writeJSON(w, appErr.Status, errorBody(appErr))
}
