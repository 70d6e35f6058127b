package service

import (
	"context"
	"fmt"

	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/domain"
	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/ports"
)

// Dashboard list sizes.
const (
	DashboardShifts  = 200
	DashboardRules   = 50
	DashboardNotices = 5
)

// DashboardService composes the dashboard read model.
type DashboardService struct {
	attendance ports.AttendanceService
	users      ports.UserRepository
	rules      ports.RuleRepository
	notices    ports.NoticeRepository
}

func NewDashboardService(
	attendance ports.AttendanceService,
	users ports.UserRepository,
	rules ports.RuleRepository,
	notices ports.NoticeRepository,
) *DashboardService {
	return &DashboardService{attendance: attendance, users: users, rules: rules, notices: notices}
}

func (s *DashboardService) Compose(ctx context.Context, session *domain.Session) (*ports.Dashboard, error) {
	if _, err := RequireAuthenticated(session); err != nil {
		return nil, err
	}

	shifts, err := s.attendance.RecentShifts(ctx, DashboardShifts)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	rules, err := s.rules.Recent(ctx, DashboardRules)
	if err != nil {
		return nil, fmt.Errorf("dashboard: rules: %w", err)
	}
	users, err := s.users.ListByName(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: users: %w", err)
	}
	notices, err := s.notices.Recent(ctx, DashboardNotices)
	if err != nil {
		return nil, fmt.Errorf("dashboard: notices: %w", err)
	}

	return &ports.Dashboard{
		Session: session,
		Shifts:  shifts,
		Rules:   rules,
		Users:   users,
		Notices: notices,
	}, nil
}
