package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/ruyichen/task-api/internal/store"
)

// MockSessionStore implements store.SessionStore for testing. The default
// behavior keeps active tokens per user in memory.
type MockSessionStore struct {
	// Function fields for customizable behavior
	CreateFn           func(ctx context.Context, userID uuid.UUID, token string) error
	ExistsFn           func(ctx context.Context, userID uuid.UUID, token string) (bool, error)
	DeleteFn           func(ctx context.Context, userID uuid.UUID, token string) error
	DeleteAllForUserFn func(ctx context.Context, userID uuid.UUID) error

	// Data for the default implementation
	Sessions map[uuid.UUID]map[string]bool
}

// Ensure MockSessionStore implements store.SessionStore
var _ store.SessionStore = (*MockSessionStore)(nil)

// NewMockSessionStore creates a new mock store with initialized defaults.
func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{Sessions: make(map[uuid.UUID]map[string]bool)}
}

// Create implements the SessionStore interface
func (m *MockSessionStore) Create(ctx context.Context, userID uuid.UUID, token string) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, userID, token)
	}

	if m.Sessions[userID] == nil {
		m.Sessions[userID] = make(map[string]bool)
	}
	m.Sessions[userID][token] = true
	return nil
}

// Exists implements the SessionStore interface
func (m *MockSessionStore) Exists(
	ctx context.Context,
	userID uuid.UUID,
	token string,
) (bool, error) {
	if m.ExistsFn != nil {
		return m.ExistsFn(ctx, userID, token)
	}

	return m.Sessions[userID][token], nil
}

// Delete implements the SessionStore interface
func (m *MockSessionStore) Delete(ctx context.Context, userID uuid.UUID, token string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, userID, token)
	}

	if !m.Sessions[userID][token] {
		return store.ErrSessionNotFound
	}
	delete(m.Sessions[userID], token)
	return nil
}

// DeleteAllForUser implements the SessionStore interface
func (m *MockSessionStore) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	if m.DeleteAllForUserFn != nil {
		return m.DeleteAllForUserFn(ctx, userID)
	}

	delete(m.Sessions, userID)
	return nil
}

// Count returns the number of active sessions for userID.
func (m *MockSessionStore) Count(userID uuid.UUID) int {
	return len(m.Sessions[userID])
}
