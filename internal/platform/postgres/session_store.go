package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ruyichen/task-api/internal/platform/logger"
	"github.com/ruyichen/task-api/internal/store"
)

// SessionStore implements the store.SessionStore interface using a
// PostgreSQL database as the storage backend. Each row is one active bearer
// token; revocation is row deletion.
type SessionStore struct {
	db store.DBTX
}

// NewSessionStore creates a new PostgreSQL implementation of the
// SessionStore interface.
func NewSessionStore(db store.DBTX) *SessionStore {
	return &SessionStore{db: db}
}

// Ensure SessionStore implements store.SessionStore interface
var _ store.SessionStore = (*SessionStore)(nil)

// Create implements store.SessionStore.Create
func (s *SessionStore) Create(ctx context.Context, userID uuid.UUID, token string) error {
	log := logger.FromContext(ctx)

	query := `
		INSERT INTO sessions (user_id, token, created_at)
		VALUES ($1, $2, $3)
	`

	_, err := s.db.ExecContext(ctx, query, userID, token, time.Now().UTC())
	if err != nil {
		log.Error("failed to insert session",
			"user_id", userID,
			"error", err)
		return fmt.Errorf("failed to insert session: %w", err)
	}

	return nil
}

// Exists implements store.SessionStore.Exists
func (s *SessionStore) Exists(ctx context.Context, userID uuid.UUID, token string) (bool, error) {
	log := logger.FromContext(ctx)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM sessions WHERE user_id = $1 AND token = $2
		)
	`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, userID, token).Scan(&exists); err != nil {
		log.Error("failed to check session",
			"user_id", userID,
			"error", err)
		return false, fmt.Errorf("failed to check session: %w", err)
	}

	return exists, nil
}

// Delete implements store.SessionStore.Delete. It removes exactly the row
// matching the presented token, leaving the user's other sessions intact.
func (s *SessionStore) Delete(ctx context.Context, userID uuid.UUID, token string) error {
	log := logger.FromContext(ctx)

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE user_id = $1 AND token = $2`,
		userID, token,
	)
	if err != nil {
		log.Error("failed to delete session",
			"user_id", userID,
			"error", err)
		return fmt.Errorf("failed to delete session: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return store.ErrSessionNotFound
	}

	return nil
}

// DeleteAllForUser implements store.SessionStore.DeleteAllForUser
func (s *SessionStore) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	log := logger.FromContext(ctx)

	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	if err != nil {
		log.Error("failed to delete sessions",
			"user_id", userID,
			"error", err)
		return fmt.Errorf("failed to delete sessions: %w", err)
	}

	return nil
}
