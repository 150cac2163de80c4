package model

import (
	"time"

	"github.com/google/uuid"
)

// TokenManager issues and verifies session tokens.
type TokenManager interface {
	Issue(claims SessionClaims) (string, error)
	Parse(token string) (SessionClaims, error)
}

// SessionClaims is the identity encoded in a session token.
type SessionClaims struct {
	PublicID  uuid.UUID
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// LoginResult is returned after a successful login.
type LoginResult struct {
	AccessToken string  `json:"accessToken"`
	UserDetails Profile `json:"userDetails"`
}
