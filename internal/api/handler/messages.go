package handler

import (
	"errors"

	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/domain"
)

// flashMessage turns a service error into the text shown on the next page.
func flashMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "Wrong email or password"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return "Could not create user: email already exists"
	case errors.Is(err, domain.ErrInvalidRole):
		return "Could not create user: unknown role"
	case errors.Is(err, domain.ErrUnauthenticated):
		return "Please log in"
	case errors.Is(err, domain.ErrForbidden):
		return "Administrators only"
	case errors.Is(err, domain.ErrStoreUnavailable):
		return "Service temporarily unavailable, please try again"
	default:
		return "Something went wrong"
	}
}
