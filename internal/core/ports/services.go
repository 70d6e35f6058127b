package ports

import (
	"context"

	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/domain"
)

// SessionService logs users in and out and resolves the caller's identity.
type SessionService interface {
	Login(ctx context.Context, email, credential string) (*domain.Session, error)
	// Current returns nil for anonymous callers.
	Current(ctx context.Context, token string) (*domain.Session, error)
	Logout(ctx context.Context, token string) error
}

// AttendanceService records clock on/off events.
type AttendanceService interface {
	ClockOnDuty(ctx context.Context, s *domain.Session) (*domain.Shift, error)
	ClockOffDuty(ctx context.Context, s *domain.Session) (*domain.Shift, error)
	RecentShifts(ctx context.Context, limit int) ([]*domain.Shift, error)
}

// CreateUserInput carries the admin form for a new account. An empty Role
// means guard.
type CreateUserInput struct {
	Email      string
	Credential string
	Name       string
	Role       string
}

// AdminService holds the admin-only mutations.
type AdminService interface {
	CreateUser(ctx context.Context, s *domain.Session, in CreateUserInput) (*domain.User, error)
	CreateRule(ctx context.Context, s *domain.Session, title, content string) (*domain.Rule, error)
	CreateNotice(ctx context.Context, s *domain.Session, text string) (*domain.Notice, error)
}

// SeedResult lists the demo accounts a seed run created or found already present.
type SeedResult struct {
	Created []string
	Skipped []string
}

// BootstrapService provisions the configured admin and demo data.
type BootstrapService interface {
	EnsureAdmin(ctx context.Context) error
	SeedDemoData(ctx context.Context) (*SeedResult, error)
}

// Dashboard is everything the dashboard page shows.
type Dashboard struct {
	Session *domain.Session  `json:"session"`
	Shifts  []*domain.Shift  `json:"shifts"`
	Rules   []*domain.Rule   `json:"rules"`
	Users   []*domain.User   `json:"users"`
	Notices []*domain.Notice `json:"notices"`
}

// DashboardService assembles the dashboard read model.
type DashboardService interface {
	Compose(ctx context.Context, s *domain.Session) (*Dashboard, error)
}
