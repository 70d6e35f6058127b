package domain

import "errors"

// Failures surfaced by the services. Handlers translate them into flash
// messages (HTML) or status codes (JSON API).
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("access forbidden")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrStoreUnavailable   = errors.New("record store unavailable")
	ErrAlreadySeeded      = errors.New("store already has users")
	ErrInvalidRole        = errors.New("invalid role")
	ErrUserNotFound       = errors.New("user not found")
	ErrSessionNotFound    = errors.New("session not found")
)
