// Package middleware provides HTTP middleware for the API.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ruyichen/task-api/internal/api/shared"
	"github.com/ruyichen/task-api/internal/domain"
	"github.com/ruyichen/task-api/internal/service/auth"
	"github.com/ruyichen/task-api/internal/store"
)

// unauthenticatedMessage is the single body every authentication failure
// produces. Missing header, bad signature, expired token, revoked session,
// and deleted account are deliberately indistinguishable to the caller.
const unauthenticatedMessage = "please authenticate"

// AuthMiddleware is the authentication gate for protected routes. A request
// passes only when it carries a bearer token whose signature verifies, whose
// session is still active, and whose user still exists.
type AuthMiddleware struct {
	jwtService auth.JWTService
	sessions   store.SessionStore
	users      store.UserStore
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(
	jwtService auth.JWTService,
	sessions store.SessionStore,
	users store.UserStore,
) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		sessions:   sessions,
		users:      users,
	}
}

// Authenticate validates bearer tokens from the Authorization header and
// adds the resolved user and the raw token string to the request context
// for authorized requests.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := extractBearerToken(r)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusUnauthorized, unauthenticatedMessage)
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			if !errors.Is(err, auth.ErrInvalidToken) && !errors.Is(err, auth.ErrExpiredToken) {
				slog.Error("unexpected token validation failure", "error", err)
			}
			shared.RespondWithError(w, r, http.StatusUnauthorized, unauthenticatedMessage)
			return
		}

		// The signature only proves we minted the token. It must also still
		// be an active session: a logged-out token verifies but is revoked.
		active, err := m.sessions.Exists(r.Context(), claims.UserID, token)
		if err != nil {
			slog.Error("failed to check session", "error", err, "user_id", claims.UserID)
			shared.RespondWithError(w, r, http.StatusInternalServerError, "authentication error")
			return
		}
		if !active {
			shared.RespondWithError(w, r, http.StatusUnauthorized, unauthenticatedMessage)
			return
		}

		// A stale token can outlive its account; a deleted user is
		// unauthenticated no matter what they present.
		user, err := m.users.GetByID(r.Context(), claims.UserID)
		if err != nil {
			if !errors.Is(err, store.ErrUserNotFound) {
				slog.Error("failed to resolve user", "error", err, "user_id", claims.UserID)
				shared.RespondWithError(w, r, http.StatusInternalServerError, "authentication error")
				return
			}
			shared.RespondWithError(w, r, http.StatusUnauthorized, unauthenticatedMessage)
			return
		}

		ctx := context.WithValue(r.Context(), shared.UserContextKey, user)
		ctx = context.WithValue(ctx, shared.TokenContextKey, token)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractBearerToken pulls the token out of the Authorization header.
// Returns auth.ErrMissingToken when the header is absent or malformed.
func extractBearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", auth.ErrMissingToken
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", auth.ErrMissingToken
	}

	return parts[1], nil
}

// GetUser extracts the authenticated user from the request context.
// Returns the user and a boolean indicating if it was found.
func GetUser(r *http.Request) (*domain.User, bool) {
	user, ok := r.Context().Value(shared.UserContextKey).(*domain.User)
	return user, ok && user != nil
}

// GetToken extracts the raw bearer token from the request context.
func GetToken(r *http.Request) (string, bool) {
	token, ok := r.Context().Value(shared.TokenContextKey).(string)
	return token, ok && token != ""
}
