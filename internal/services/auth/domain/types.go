// Package domain defines the identity types and ports for the auth service
package domain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Identity is a resolved caller
type Identity struct {
	ID    string
	Email string
}

// TokenRecord is one persisted API token row joined with its subject
type TokenRecord struct {
	UserID    string
	Email     string
	ExpiresAt time.Time
}

// Expired reports whether the token is past its expiry at the given instant.
// A zero ExpiresAt means the token does not expire
func (t TokenRecord) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && now.After(t.ExpiresAt)
}

// VerifierPort resolves a bearer token to an identity
type VerifierPort interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// Repo is the persistence surface for token verification
type Repo interface {
	// TokenByHash returns the token row for a hash, or a NotFound-coded error
	TokenByHash(ctx context.Context, hash string) (TokenRecord, error)
	// Touch records a successful use of the token
	Touch(ctx context.Context, hash string, at time.Time) error
}

// HashToken derives the stored lookup key for a raw bearer token.
// Tokens are never persisted in the clear
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
