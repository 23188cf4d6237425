package api

import (
	"errors"
	"net/http"

	"github.com/ruyichen/task-api/internal/domain"
	"github.com/ruyichen/task-api/internal/service"
	"github.com/ruyichen/task-api/internal/service/auth"
	"github.com/ruyichen/task-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
//
// Two deliberate asymmetries: login failures are 400 (the login endpoint
// itself rejected the credentials), while token failures on protected routes
// are 401; and ownership misses are 404, identical to true absence, so a
// response code never confirms that another user's resource exists.
func MapErrorToStatusCode(err error) int {
	switch {
	// Validation and disallowed input
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrDisallowedField),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, service.ErrInvalidImage):
		return http.StatusBadRequest

	// Failed login and duplicate signup email both read as "could not
	// create/authenticate", never as "that email is taken by someone".
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, store.ErrEmailExists):
		return http.StatusBadRequest

	// Authentication errors on protected routes
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrRevokedToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Not found errors, including the ownership-masking case
	case store.IsNotFoundError(err),
		errors.Is(err, service.ErrAvatarNotFound):
		return http.StatusNotFound

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "an unexpected error occurred"
	}

	switch {
	case errors.Is(err, domain.ErrDisallowedField):
		return "invalid updates"

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation):
		return "invalid request data"

	case errors.Is(err, service.ErrInvalidImage):
		return "please upload an image"

	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, store.ErrEmailExists):
		return "unable to create or authenticate account"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrRevokedToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return "please authenticate"

	case errors.Is(err, store.ErrTaskNotFound):
		return "task not found"

	case errors.Is(err, service.ErrAvatarNotFound),
		store.IsNotFoundError(err):
		return "not found"

	default:
		return "an unexpected error occurred"
	}
}

// HandleAPIError writes the response for err using the mapped status code
// and a safe message. An empty override falls back to the mapped message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	if message == "" {
		message = GetSafeErrorMessage(err)
	}
	respondError(w, r, MapErrorToStatusCode(err), message, err)
}
