// Package service provides application-level workflows for user accounts.
//
// Error handling principles:
//  1. Service methods return sentinel errors for expected error conditions
//  2. Unexpected errors are wrapped with context via fmt.Errorf("%w")
//  3. Callers use errors.Is to check for specific error conditions
//  4. The API layer maps service errors to appropriate HTTP status codes
package service

import "errors"

var (
	// ErrAvatarNotFound indicates the requested user has no stored avatar
	// (or does not exist at all; the two are not distinguished).
	ErrAvatarNotFound = errors.New("avatar not found")

	// ErrInvalidImage indicates an avatar upload could not be decoded as an
	// image.
	ErrInvalidImage = errors.New("invalid image data")
)
