package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"cipherstudio/internal/auth"
	"cipherstudio/internal/httputil"
)

// Auth verifies the bearer token and stores the caller's identity in the
// request context. Health checks and CORS preflight requests pass through.
func Auth(verifier auth.JWTVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions || r.URL.Path == "/health" {
				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized - No token provided")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				logger.Debug("token rejected",
					"path", r.URL.Path,
					"method", r.Method,
					"error", err,
				)
				httputil.RespondError(w, http.StatusUnauthorized, "Not authorized")
				return
			}

			next.ServeHTTP(w, httputil.WithUserID(r, claims.GetUserID()))
		})
	}
}

// bearerToken extracts the token from an Authorization header.
// A bare token without the "Bearer " prefix is accepted too.
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if strings.EqualFold(header, "bearer") {
		return ""
	}
	if scheme, token, found := strings.Cut(header, " "); found && strings.EqualFold(scheme, "bearer") {
		return strings.TrimSpace(token)
	}
	return header
}
