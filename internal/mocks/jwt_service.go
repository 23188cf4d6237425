package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ruyichen/task-api/internal/service/auth"
)

// MockJWTService implements auth.JWTService for testing. The default
// behavior mints tokens of the form "token-<n>" and validates any token it
// has minted, attributing it to the user it was minted for.
type MockJWTService struct {
	// Function fields for customizable behavior
	GenerateTokenFn func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateTokenFn func(ctx context.Context, token string) (*auth.Claims, error)

	// Data for the default implementation
	Minted map[string]uuid.UUID
}

// Ensure MockJWTService implements auth.JWTService
var _ auth.JWTService = (*MockJWTService)(nil)

// NewMockJWTService creates a new mock service with initialized defaults.
func NewMockJWTService() *MockJWTService {
	return &MockJWTService{Minted: make(map[string]uuid.UUID)}
}

// GenerateToken implements the JWTService interface
func (m *MockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, userID)
	}

	token := "token-" + uuid.New().String()
	m.Minted[token] = userID
	return token, nil
}

// ValidateToken implements the JWTService interface
func (m *MockJWTService) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, token)
	}

	userID, ok := m.Minted[token]
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	now := time.Now().UTC()
	return &auth.Claims{
		UserID:    userID,
		Subject:   userID.String(),
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
		ID:        uuid.New().String(),
	}, nil
}
