package models

import "github.com/golang-jwt/jwt/v5"

// Claims is the JWT claim set accepted by the API.
// Tokens carry the identity in "sub"; older tokens put it in "userId".
type Claims struct {
	jwt.RegisteredClaims        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	LegacyUserID         string `json:"userId,omitempty"`
	Email                string `json:"email,omitempty"`
	Role                 string `json:"role,omitempty"` // "anon" tokens are rejected
	IsAnonymous          bool   `json:"is_anonymous,omitempty"`
}

// GetUserID returns the caller's identity
func (c *Claims) GetUserID() string {
	if c.Subject != "" {
		return c.Subject
	}
	return c.LegacyUserID
}
