package auth

import "cipherstudio/internal/domain/models"

// JWTVerifier checks bearer tokens. Implementations: HMACVerifier for a
// shared secret, JWKSVerifier for keys published at a JWKS endpoint.
type JWTVerifier interface {
	// VerifyToken returns the claims of a valid token. Expired, badly signed
	// and anonymous tokens, and tokens without an identity, are rejected.
	VerifyToken(token string) (*models.Claims, error)

	// Close releases any resources held by the verifier
	Close() error
}
