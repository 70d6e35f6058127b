package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/domain"
	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/infrastructure/db/memory"
)

var (
	adminSession = &domain.Session{Token: "t-admin", Email: "a@x.com", Name: "Admin", Role: domain.RoleAdmin}
	guardSession = &domain.Session{Token: "t-guard", Email: "g@x.com", Name: "Guard", Role: domain.RoleGuard}
)

type fixture struct {
	users    *memory.UserRepository
	shifts   *memory.ShiftRepository
	rules    *memory.RuleRepository
	notices  *memory.NoticeRepository
	sessions *memory.SessionStore

	sessionSvc    *SessionService
	attendanceSvc *AttendanceService
	adminSvc      *AdminService
	dashboardSvc  *DashboardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users:    memory.NewUserRepository(),
		shifts:   memory.NewShiftRepository(),
		rules:    memory.NewRuleRepository(),
		notices:  memory.NewNoticeRepository(),
		sessions: memory.NewSessionStore(),
	}
	log := zerolog.Nop()
	f.sessionSvc = NewSessionService(f.users, f.sessions, PlainVerifier{}, time.Hour, log)
	f.attendanceSvc = NewAttendanceService(f.shifts, log)
	f.adminSvc = NewAdminService(f.users, f.rules, f.notices, PlainVerifier{}, log)
	f.dashboardSvc = NewDashboardService(f.attendanceSvc, f.users, f.rules, f.notices)
	return f
}

func (f *fixture) addUser(t *testing.T, email, credential, name string, role domain.Role) {
	t.Helper()
	if _, err := f.users.Create(context.Background(), &domain.User{
		Email: email, Credential: credential, Name: name, Role: role,
	}); err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
}

// downUsers fails every call as an unreachable store would.
type downUsers struct{}

func storeDown(op string) error {
	return fmt.Errorf("%s: %w: connection refused", op, domain.ErrStoreUnavailable)
}

func (downUsers) Create(context.Context, *domain.User) (*domain.User, error) {
	return nil, storeDown("insert user")
}

func (downUsers) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, storeDown("find user")
}

func (downUsers) Count(context.Context) (int64, error) { return 0, storeDown("count users") }

func (downUsers) ListByName(context.Context) ([]*domain.User, error) {
	return nil, storeDown("list users")
}

type downShifts struct{}

func (downShifts) Create(context.Context, *domain.Shift) (*domain.Shift, error) {
	return nil, storeDown("insert shift")
}

func (downShifts) Recent(context.Context, int) ([]*domain.Shift, error) {
	return nil, storeDown("recent shifts")
}
