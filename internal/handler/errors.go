package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"cipherstudio/internal/domain"
	"cipherstudio/internal/httputil"
)

// handleError converts domain errors to HTTP responses.
// Anything that does not carry a status code is logged and reported as 500.
func handleError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) {
		httputil.RespondError(w, httpErr.StatusCode(), httpErr.Error())
		return
	}

	logger.Error("request failed",
		"error", err,
		"path", r.URL.Path,
		"method", r.Method,
	)
	httputil.RespondError(w, http.StatusInternalServerError, err.Error())
}

// requireUserID rejects requests that reached a handler without an identity
func requireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := httputil.GetUserID(r)
	if userID == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return "", false
	}
	return userID, true
}
