package auth

import (
	"log/slog"

	"cipherstudio/internal/domain"
	"cipherstudio/internal/domain/models"
)

// checkClaims enforces the claim rules shared by every verifier
func checkClaims(claims *models.Claims, logger *slog.Logger) error {
	if claims.GetUserID() == "" {
		logger.Debug("token missing subject claim")
		return domain.ErrUnauthorized
	}

	if claims.IsAnonymous || claims.Role == "anon" {
		logger.Debug("anonymous token rejected", "user_id", claims.GetUserID())
		return domain.ErrUnauthorized
	}

	return nil
}
