package domain

import (
	"fmt"
	"time"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleGuard Role = "guard"
)

// ParseRole maps a submitted role onto the enumeration. An empty value
// yields RoleGuard.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case "", RoleGuard:
		return RoleGuard, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
}

// User is a staff account. Credential is whatever the configured
// CredentialVerifier stores: the raw password by default, a bcrypt hash
// otherwise.
type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Credential string    `json:"-"`
	Name       string    `json:"name"`
	Role       Role      `json:"role"`
	CreatedAt  time.Time `json:"created_at"`
}
