package handler

import (
	"net/http"

	"cipherstudio/internal/httputil"
)

// HealthCheck reports that the server is up
// GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondSuccessWithFields(w, http.StatusOK, "", map[string]interface{}{
		"status": "ok",
	})
}
