package service

import (
	"fmt"

	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/domain"
)

// RequireAuthenticated passes any logged-in session.
func RequireAuthenticated(s *domain.Session) (*domain.Session, error) {
	if s == nil {
		return nil, domain.ErrUnauthenticated
	}
	return s, nil
}

// RequireRole passes sessions holding role. Admins satisfy every role; a
// guard satisfies only RoleGuard.
func RequireRole(s *domain.Session, role domain.Role) (*domain.Session, error) {
	if _, err := RequireAuthenticated(s); err != nil {
		return nil, err
	}
	switch s.Role {
	case domain.RoleAdmin:
		return s, nil
	case domain.RoleGuard:
		if role == domain.RoleGuard {
			return s, nil
		}
		return nil, domain.ErrForbidden
	default:
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrForbidden, s.Role)
	}
}
