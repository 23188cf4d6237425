package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/ruyichen/task-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
//
// Implementations persist the hashed password only; hashing itself is the
// responsibility of the service layer, which guarantees a password is hashed
// exactly once per change.
type UserStore interface {
	// Create saves a new user to the store.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their normalized email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update persists the user's current field values, including the avatar
	// and hashed password, and refreshes the updated_at timestamp.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrEmailExists if updating to an email that already exists.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user from the store by their ID.
	// Returns ErrUserNotFound if the user does not exist.
	// Owned tasks and sessions are removed by the service layer before this
	// call; Delete itself touches only the user row.
	Delete(ctx context.Context, id uuid.UUID) error
}
