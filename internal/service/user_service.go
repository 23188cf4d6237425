package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ruyichen/task-api/internal/domain"
	"github.com/ruyichen/task-api/internal/email"
	"github.com/ruyichen/task-api/internal/imaging"
	"github.com/ruyichen/task-api/internal/service/auth"
	"github.com/ruyichen/task-api/internal/store"
)

// UserUpdate carries the fields of a profile update. A nil field was not
// present in the request and is left untouched; this explicit dirty set is
// what guarantees the password is re-hashed only when it actually changed.
type UserUpdate struct {
	Name     *string
	Email    *string
	Password *string
	Age      *int
}

// UserService owns the account workflows that span multiple stores:
// registration, login, session revocation, profile updates, avatar handling,
// and the account-deletion cascade.
type UserService struct {
	users      store.UserStore
	tasks      store.TaskStore
	sessions   store.SessionStore
	jwtService auth.JWTService
	hasher     auth.PasswordHasher
	mailer     email.Mailer
	normalizer imaging.Normalizer
	logger     *slog.Logger
}

// NewUserService creates a UserService with the given collaborators.
func NewUserService(
	users store.UserStore,
	tasks store.TaskStore,
	sessions store.SessionStore,
	jwtService auth.JWTService,
	hasher auth.PasswordHasher,
	mailer email.Mailer,
	normalizer imaging.Normalizer,
	logger *slog.Logger,
) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{
		users:      users,
		tasks:      tasks,
		sessions:   sessions,
		jwtService: jwtService,
		hasher:     hasher,
		mailer:     mailer,
		normalizer: normalizer,
		logger:     logger.With(slog.String("component", "user_service")),
	}
}

// Register validates and creates a new account, hashes the password exactly
// once, opens the first session, and dispatches the welcome notification.
// Returns the created user and its session token.
func (s *UserService) Register(
	ctx context.Context,
	name, emailAddr, password string,
	age int,
) (*domain.User, string, error) {
	user, err := domain.NewUser(name, emailAddr, password, age)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	if err := s.mailer.SendWelcome(ctx, user.Email, user.Name); err != nil {
		// Notification delivery never fails a signup.
		s.logger.Warn("failed to send welcome email",
			"error", err,
			"user_id", user.ID)
	}

	token, err := s.openSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return user, token, nil
}

// Login authenticates an email/password pair and opens a new session.
// Both an unknown email and a wrong password yield auth.ErrInvalidCredentials;
// callers cannot probe which emails are registered.
func (s *UserService) Login(
	ctx context.Context,
	emailAddr, password string,
) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, domain.NormalizeEmail(emailAddr))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, "", auth.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		return nil, "", auth.ErrInvalidCredentials
	}

	token, err := s.openSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Logout revokes exactly the presented token. Other sessions of the same
// user stay valid.
func (s *UserService) Logout(ctx context.Context, userID uuid.UUID, token string) error {
	if err := s.sessions.Delete(ctx, userID, token); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// LogoutAll revokes every session of the user.
func (s *UserService) LogoutAll(ctx context.Context, userID uuid.UUID) error {
	if err := s.sessions.DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	return nil
}

// Update applies a profile update to the user. Only fields present in upd
// are touched; the password is hashed if and only if upd.Password is set, so
// unrelated updates can never re-hash an already-hashed value.
// Returns the updated user.
func (s *UserService) Update(
	ctx context.Context,
	user *domain.User,
	upd UserUpdate,
) (*domain.User, error) {
	if upd.Name != nil {
		user.Name = *upd.Name
	}
	if upd.Email != nil {
		user.Email = domain.NormalizeEmail(*upd.Email)
	}
	if upd.Age != nil {
		user.Age = *upd.Age
	}
	if upd.Password != nil {
		if err := domain.ValidatePassword(*upd.Password); err != nil {
			return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
		}
		hashed, err := s.hasher.Hash(*upd.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.HashedPassword = hashed
	}

	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the account as explicit ordered steps: owned tasks first,
// then sessions, then the user row, then the cancellation notification.
// The steps are sequential, not transactional; a crash mid-cascade can leave
// orphaned tasks behind, which is logged rather than masked.
func (s *UserService) Delete(ctx context.Context, user *domain.User) error {
	if err := s.tasks.DeleteAllForOwner(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to cascade-delete tasks: %w", err)
	}

	if err := s.sessions.DeleteAllForUser(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}

	if err := s.users.Delete(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if err := s.mailer.SendCancellation(ctx, user.Email, user.Name); err != nil {
		s.logger.Warn("failed to send cancellation email",
			"error", err,
			"user_id", user.ID)
	}

	s.logger.Info("user deleted", "user_id", user.ID)
	return nil
}

// SetAvatar normalizes the uploaded image and stores it on the user.
func (s *UserService) SetAvatar(ctx context.Context, user *domain.User, data []byte) error {
	normalized, err := s.normalizer.Normalize(data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidImage, err)
	}

	user.Avatar = normalized
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to store avatar: %w", err)
	}
	return nil
}

// ClearAvatar removes the user's stored avatar.
func (s *UserService) ClearAvatar(ctx context.Context, user *domain.User) error {
	user.Avatar = nil
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to clear avatar: %w", err)
	}
	return nil
}

// GetAvatar returns the stored avatar bytes for any user by ID. A missing
// user and a user without an avatar both yield ErrAvatarNotFound.
func (s *UserService) GetAvatar(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrAvatarNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if len(user.Avatar) == 0 {
		return nil, ErrAvatarNotFound
	}
	return user.Avatar, nil
}

// openSession issues a token and records it as an active session.
func (s *UserService) openSession(ctx context.Context, userID uuid.UUID) (string, error) {
	token, err := s.jwtService.GenerateToken(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	if err := s.sessions.Create(ctx, userID, token); err != nil {
		return "", fmt.Errorf("failed to record session: %w", err)
	}
	return token, nil
}
