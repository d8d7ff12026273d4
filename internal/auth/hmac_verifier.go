package auth

import (
	"errors"
	"log/slog"

	"cipherstudio/internal/domain"
	"cipherstudio/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
)

// HMACVerifier validates HS256 tokens signed with a shared secret (JWT_SECRET)
type HMACVerifier struct {
	secret []byte
	logger *slog.Logger
}

// NewHMACVerifier creates a verifier for tokens signed with secret
func NewHMACVerifier(secret string, logger *slog.Logger) (JWTVerifier, error) {
	if secret == "" {
		return nil, errors.New("JWT secret cannot be empty")
	}

	return &HMACVerifier{
		secret: []byte(secret),
		logger: logger,
	}, nil
}

// VerifyToken validates a token and extracts its claims
func (v *HMACVerifier) VerifyToken(tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return v.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		v.logger.Debug("token parse failed", "error", err)
		return nil, domain.ErrUnauthorized
	}

	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	if err := checkClaims(claims, v.logger); err != nil {
		return nil, err
	}

	return claims, nil
}

// Close is a no-op; the verifier holds no external resources
func (v *HMACVerifier) Close() error {
	return nil
}
