package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/domain"
	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/ports"
)

func TestValidator_RoleTag(t *testing.T) {
	v := NewValidator()

	for _, role := range []string{"", "guard", "admin"} {
		if err := v.Validate(&addUserForm{Email: "g@x.com", Password: "p", Role: role}); err != nil {
			t.Fatalf("role %q: unexpected error %v", role, err)
		}
	}

	err := v.Validate(&addUserForm{Email: "g@x.com", Password: "p", Role: "owner"})
	if err == nil || !strings.Contains(err.Error(), "role must be admin or guard") {
		t.Fatalf("expected role error, got %v", err)
	}

	err = v.Validate(&addUserForm{})
	if err == nil || !strings.Contains(err.Error(), "email is required") || !strings.Contains(err.Error(), "password is required") {
		t.Fatalf("expected required errors, got %v", err)
	}
}

func TestClock_FormatsInLocation(t *testing.T) {
	loc := time.FixedZone("ICT", 7*60*60)
	at := time.Date(2026, 10, 17, 1, 5, 9, 0, time.UTC)

	if got := (Clock{Location: loc}).Format(at); got != "08:05:09 17/10/2026" {
		t.Fatalf("unexpected clock string %q", got)
	}
	if got := (Clock{}).Format(at); got != "01:05:09 17/10/2026" {
		t.Fatalf("expected UTC fallback, got %q", got)
	}
}

func TestFlashMessage(t *testing.T) {
	if msg := flashMessage(domain.ErrInvalidCredentials); msg != "Wrong email or password" {
		t.Fatalf("unexpected message %q", msg)
	}
	wrapped := errors.Join(errors.New("insert"), domain.ErrStoreUnavailable)
	if msg := flashMessage(wrapped); !strings.Contains(msg, "unavailable") {
		t.Fatalf("unexpected message %q", msg)
	}
	if msg := flashMessage(errors.New("mongo: secret")); msg != "Something went wrong" {
		t.Fatalf("internal detail leaked: %q", msg)
	}
}

func TestRenderer_Dashboard(t *testing.T) {
	r, err := NewRenderer(Clock{Location: time.UTC})
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	guard := &domain.Session{Email: "g@x.com", Name: "G", Role: domain.RoleGuard}
	data := pageData{
		Assets:  Assets{LogoURL: "/logo.png", BackgroundURL: "/bg.jpg"},
		Session: guard,
		Dashboard: &ports.Dashboard{
			Session: guard,
			Shifts: []*domain.Shift{
				{Email: "g@x.com", Type: domain.ShiftOnDuty, At: time.Date(2026, 10, 17, 7, 0, 0, 0, time.UTC)},
			},
			Notices: []*domain.Notice{{Text: "<b>hi</b>"}},
		},
		Success: []string{"OnDuty recorded"},
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, "dashboard.html", data, nil); err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := buf.String()
	for _, want := range []string{"07:00:00 17/10/2026", "OnDuty recorded", "/logo.png", "&lt;b&gt;hi&lt;/b&gt;"} {
		if !strings.Contains(html, want) {
			t.Fatalf("dashboard missing %q", want)
		}
	}
	if strings.Contains(html, `id="tab-admin"`) {
		t.Fatalf("guard must not see the admin tab")
	}
}

type stubBootstrap struct {
	result *ports.SeedResult
	err    error
}

func (s *stubBootstrap) EnsureAdmin(context.Context) error { return nil }

func (s *stubBootstrap) SeedDemoData(context.Context) (*ports.SeedResult, error) {
	return s.result, s.err
}

func TestSeedHandler(t *testing.T) {
	cases := []struct {
		name string
		stub *stubBootstrap
		code int
		body string
	}{
		{
			name: "seeded",
			stub: &stubBootstrap{result: &ports.SeedResult{Created: []string{"admin@x.com", "guard1@merryweather.com"}}},
			code: http.StatusOK,
			body: "Seeded admin@x.com, guard1@merryweather.com",
		},
		{
			name: "already seeded",
			stub: &stubBootstrap{err: domain.ErrAlreadySeeded},
			code: http.StatusOK,
			body: "DB already has users",
		},
		{
			name: "store down",
			stub: &stubBootstrap{err: domain.ErrStoreUnavailable},
			code: http.StatusServiceUnavailable,
			body: "Service temporarily unavailable, please try again",
		},
	}

	e := echo.New()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/_seed", nil)
			rec := httptest.NewRecorder()

			if err := NewSeedHandler(tc.stub, zerolog.Nop()).Seed(e.NewContext(req, rec)); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			if rec.Body.String() != tc.body {
				t.Fatalf("unexpected body %q", rec.Body.String())
			}
		})
	}
}

func TestReadinessHandler(t *testing.T) {
	e := echo.New()
	h := NewReadinessHandler(map[string]PingFunc{
		"mongodb": func(context.Context) error { return nil },
		"redis":   func(context.Context) error { return errors.New("connection refused") },
	})

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	if err := h.Readiness(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"redis":{"status":"unhealthy"`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestNewCookieStore_Options(t *testing.T) {
	key := []byte("0123456789abcdef0123456789abcdef")

	plain := NewCookieStore(key, time.Hour, false)
	if plain.Options.Secure || plain.Options.SameSite != http.SameSiteLaxMode || !plain.Options.HttpOnly {
		t.Fatalf("unexpected options %+v", plain.Options)
	}
	if plain.Options.MaxAge != 3600 || plain.Options.Path != "/" {
		t.Fatalf("unexpected lifetime or path %+v", plain.Options)
	}

	if !NewCookieStore(key, time.Hour, true).Options.Secure {
		t.Fatalf("expected secure cookie")
	}
}
