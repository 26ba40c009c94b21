// Package common defines shared constants and sentinel errors used across the
// eulark server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal   = errors.New("internal error")
	ErrorValidation = errors.New("validation error")
	ErrorConflict   = errors.New("player name or email already registered")

	// Credential errors.
	ErrInvalidCredentials = errors.New("invalid player name or password")

	// Verification workflow errors.
	ErrInvalidCode = errors.New("invalid verification code")
	ErrCodeExpired = errors.New("verification code expired, please register again")

	// Password reset errors.
	ErrInvalidResetToken = errors.New("invalid reset token")
	ErrResetTokenExpired = errors.New("reset token expired")

	// Auth errors.
	ErrUnauthenticated = errors.New("no token provided")
	ErrInvalidToken    = errors.New("invalid token")
	ErrTokenExpired    = errors.New("token expired")
	ErrForbidden       = errors.New("admin privileges required")
	ErrPlayerOnly      = errors.New("player account required")

	// Upstream errors.
	ErrMailDelivery = errors.New("mail delivery failed")
)
