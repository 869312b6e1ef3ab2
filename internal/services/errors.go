package services

import "errors"

// Sentinel errors mapped to HTTP statuses by the handlers.
var (
	// ErrNotFound covers both a genuinely absent record and one owned by
	// another user; callers must not be able to tell the two apart.
	ErrNotFound = errors.New("record not found")

	// ErrEmailTaken signals a duplicate email on signup.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials covers missing user and wrong password alike,
	// to avoid account enumeration.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError reports a rejected input with a client-facing message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
