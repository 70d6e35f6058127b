package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/domain"
)

func TestDashboardService_Compose(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addUser(t, "z@x.com", "p", "Zed", domain.RoleGuard)
	f.addUser(t, "a@x.com", "p", "Anh", domain.RoleAdmin)
	f.addUser(t, "m@x.com", "p", "Minh", domain.RoleGuard)

	base := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		at := base.Add(time.Duration(i) * time.Minute)
		f.adminSvc.now = func() time.Time { return at }
		if _, err := f.adminSvc.CreateNotice(ctx, adminSession, fmt.Sprintf("notice %d", i)); err != nil {
			t.Fatalf("CreateNotice: %v", err)
		}
		if _, err := f.adminSvc.CreateRule(ctx, adminSession, fmt.Sprintf("rule %d", i), ""); err != nil {
			t.Fatalf("CreateRule: %v", err)
		}
	}
	if _, err := f.attendanceSvc.ClockOnDuty(ctx, guardSession); err != nil {
		t.Fatalf("ClockOnDuty: %v", err)
	}

	d, err := f.dashboardSvc.Compose(ctx, guardSession)
	if err != nil {
		t.Fatalf("Compose returned error: %v", err)
	}
	if d.Session != guardSession {
		t.Fatalf("expected caller session on dashboard")
	}
	if len(d.Shifts) != 1 {
		t.Fatalf("expected 1 shift, got %d", len(d.Shifts))
	}
	if len(d.Notices) != DashboardNotices || d.Notices[0].Text != "notice 6" {
		t.Fatalf("expected newest %d notices, got %d starting %q", DashboardNotices, len(d.Notices), d.Notices[0].Text)
	}
	if len(d.Rules) != 7 || d.Rules[0].Title != "rule 6" {
		t.Fatalf("expected rules newest first, got %d", len(d.Rules))
	}
	names := []string{d.Users[0].Name, d.Users[1].Name, d.Users[2].Name}
	if names[0] != "Anh" || names[1] != "Minh" || names[2] != "Zed" {
		t.Fatalf("expected users by name, got %v", names)
	}
}

func TestDashboardService_Compose_ShiftLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 0; i < DashboardShifts+10; i++ {
		if _, err := f.attendanceSvc.ClockOnDuty(ctx, guardSession); err != nil {
			t.Fatalf("ClockOnDuty: %v", err)
		}
	}

	d, err := f.dashboardSvc.Compose(ctx, guardSession)
	if err != nil {
		t.Fatalf("Compose returned error: %v", err)
	}
	if len(d.Shifts) != DashboardShifts {
		t.Fatalf("expected %d shifts, got %d", DashboardShifts, len(d.Shifts))
	}
}

func TestDashboardService_Compose_Anonymous(t *testing.T) {
	f := newFixture(t)

	if _, err := f.dashboardSvc.Compose(context.Background(), nil); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
