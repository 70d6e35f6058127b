package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/domain"
	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/infrastructure/db/memory"
)

func TestSessionService_Login_Success(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "a@x.com", "p1", "Admin", domain.RoleAdmin)

	s, err := f.sessionSvc.Login(context.Background(), "a@x.com", "p1")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if s.Token == "" {
		t.Fatalf("expected a session token")
	}
	if s.Email != "a@x.com" || s.Role != domain.RoleAdmin || s.Name != "Admin" {
		t.Fatalf("unexpected session: %+v", s)
	}
	if f.sessions.Len() != 1 {
		t.Fatalf("expected session to be stored, have %d", f.sessions.Len())
	}
}

func TestSessionService_Login_FailuresAreIndistinguishable(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "a@x.com", "p1", "Admin", domain.RoleAdmin)

	_, wrongPass := f.sessionSvc.Login(context.Background(), "a@x.com", "nope")
	_, unknown := f.sessionSvc.Login(context.Background(), "b@x.com", "p1")

	if !errors.Is(wrongPass, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPass)
	}
	if !errors.Is(unknown, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknown)
	}
	if wrongPass.Error() != unknown.Error() {
		t.Fatalf("failures differ: %q vs %q", wrongPass, unknown)
	}
	if f.sessions.Len() != 0 {
		t.Fatalf("failed login must not create a session")
	}
}

func TestSessionService_Login_EmailIsExactMatch(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "a@x.com", "p1", "Admin", domain.RoleAdmin)

	if _, err := f.sessionSvc.Login(context.Background(), "A@X.com", "p1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSessionService_Login_StoreDown(t *testing.T) {
	svc := NewSessionService(downUsers{}, memory.NewSessionStore(), PlainVerifier{}, time.Hour, zerolog.Nop())

	_, err := svc.Login(context.Background(), "a@x.com", "p1")
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("store failure must not look like bad credentials")
	}
}

func TestSessionService_Current(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "g@x.com", "p2", "Guard", domain.RoleGuard)
	ctx := context.Background()

	s, err := f.sessionSvc.Login(ctx, "g@x.com", "p2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	got, err := f.sessionSvc.Current(ctx, s.Token)
	if err != nil || got == nil || got.Email != "g@x.com" {
		t.Fatalf("expected guard session, got %+v %v", got, err)
	}

	for _, token := range []string{"", "unknown"} {
		got, err := f.sessionSvc.Current(ctx, token)
		if err != nil || got != nil {
			t.Fatalf("token %q: expected anonymous, got %+v %v", token, got, err)
		}
	}
}

func TestSessionService_Current_Expired(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "g@x.com", "p2", "Guard", domain.RoleGuard)
	ctx := context.Background()

	s, err := f.sessionSvc.Login(ctx, "g@x.com", "p2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	svc := NewSessionService(f.users, f.sessions, PlainVerifier{}, time.Nanosecond, zerolog.Nop())
	expired, err := svc.Login(ctx, "g@x.com", "p2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	time.Sleep(time.Millisecond)

	if got, _ := svc.Current(ctx, expired.Token); got != nil {
		t.Fatalf("expected expired session to be anonymous")
	}
	if got, _ := svc.Current(ctx, s.Token); got == nil {
		t.Fatalf("unexpired session should still resolve")
	}
}

func TestSessionService_Logout_Idempotent(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "g@x.com", "p2", "Guard", domain.RoleGuard)
	ctx := context.Background()

	s, err := f.sessionSvc.Login(ctx, "g@x.com", "p2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := f.sessionSvc.Logout(ctx, s.Token); err != nil {
			t.Fatalf("Logout #%d: %v", i+1, err)
		}
	}
	if err := f.sessionSvc.Logout(ctx, ""); err != nil {
		t.Fatalf("Logout with empty token: %v", err)
	}
	if got, _ := f.sessionSvc.Current(ctx, s.Token); got != nil {
		t.Fatalf("session survived logout")
	}
}
