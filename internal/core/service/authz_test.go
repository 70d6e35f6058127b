package service

import (
	"errors"
	"testing"

	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/domain"
)

func TestRequireAuthenticated(t *testing.T) {
	if _, err := RequireAuthenticated(nil); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	s, err := RequireAuthenticated(guardSession)
	if err != nil || s != guardSession {
		t.Fatalf("expected guard session, got %v %v", s, err)
	}
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name    string
		session *domain.Session
		role    domain.Role
		want    error
	}{
		{"anonymous", nil, domain.RoleGuard, domain.ErrUnauthenticated},
		{"admin as admin", adminSession, domain.RoleAdmin, nil},
		{"admin as guard", adminSession, domain.RoleGuard, nil},
		{"guard as guard", guardSession, domain.RoleGuard, nil},
		{"guard as admin", guardSession, domain.RoleAdmin, domain.ErrForbidden},
		{"unknown role", &domain.Session{Email: "x@x.com", Role: "owner"}, domain.RoleGuard, domain.ErrForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := RequireRole(tc.session, tc.role)
			if tc.want == nil {
				if err != nil || s != tc.session {
					t.Fatalf("expected pass, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if s != nil {
				t.Fatalf("expected no session on failure")
			}
		})
	}
}
