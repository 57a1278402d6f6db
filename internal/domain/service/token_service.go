package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims of an access token.
type Claims struct {
	AccountID uuid.UUID `json:"-"` // Parsed from the registered subject.
	Role      string    `json:"role"`
	Type      string    `json:"type"`
	jwt.RegisteredClaims
}

// TokenService verifies access tokens issued by the identity provider.
type TokenService interface {
	// ValidateToken checks the validity of a token string.
	ValidateToken(tokenString string) (*Claims, error)
}
