package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrRevokedToken indicates a well-formed, correctly signed token that is
	// no longer in the user's active session list (logged out)
	ErrRevokedToken = errors.New("authentication token has been revoked")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrInvalidCredentials indicates a failed email/password login. It is
	// deliberately generic: callers never learn whether the email was unknown
	// or the password wrong.
	ErrInvalidCredentials = errors.New("unable to login")
)
