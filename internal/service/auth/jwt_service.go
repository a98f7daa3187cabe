// Package auth provides token issuance/verification and password hashing
// for the authentication layer.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed bearer token carrying the user's
	// identity. Returns the token string or an error if signing fails.
	GenerateToken(ctx context.Context, userID uuid.UUID, username string) (string, error)

	// ValidateToken validates the provided token string and extracts the
	// claims. Returns the claims containing the user's identity if the token
	// is valid, or an error if validation fails (expired, invalid signature,
	// malformed, etc.).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the verified identity extracted from a bearer token.
// Username is carried for display purposes only; authorization decisions use
// UserID exclusively.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID `json:"uid,omitempty"`

	// Username is the user's display name at issuance time.
	Username string `json:"username,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
