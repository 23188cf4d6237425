package store

import (
	"context"

	"github.com/google/uuid"
)

// SessionStore persists the active bearer tokens for each user.
//
// A token's signature proves who minted it, but only membership in this
// store makes it valid: logging out deletes the row, so a syntactically
// valid, unexpired token that has been revoked is rejected.
type SessionStore interface {
	// Create records token as an active session for userID.
	Create(ctx context.Context, userID uuid.UUID, token string) error

	// Exists reports whether token is an active session for userID.
	Exists(ctx context.Context, userID uuid.UUID, token string) (bool, error)

	// Delete removes exactly one session, identified by the exact token
	// string. Returns ErrSessionNotFound if no such session exists.
	Delete(ctx context.Context, userID uuid.UUID, token string) error

	// DeleteAllForUser removes every active session for userID.
	// Deleting zero rows is not an error.
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) error
}
