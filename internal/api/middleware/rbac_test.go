package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/domain"
)

func newContext(s *domain.Session) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if s != nil {
		c.Set(SessionKey, s)
	}
	return c, rec
}

func ok(c echo.Context) error { return c.NoContent(http.StatusOK) }

func TestRequireRole_AdminAllowed(t *testing.T) {
	c, rec := newContext(&domain.Session{Email: "a@x.com", Role: domain.RoleAdmin})

	if err := RequireRole(domain.RoleAdmin, Reject)(ok)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireRole_GuardForbidden(t *testing.T) {
	c, _ := newContext(&domain.Session{Email: "g@x.com", Role: domain.RoleGuard})

	handler := RequireRole(domain.RoleAdmin, Reject)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequireRole_AnonymousRedirected(t *testing.T) {
	c, rec := newContext(nil)

	handler := RequireRole(domain.RoleAdmin, RedirectTo("/login", nil))(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
}

func TestRequireAuthenticated(t *testing.T) {
	c, rec := newContext(&domain.Session{Email: "g@x.com", Role: domain.RoleGuard})
	if err := RequireAuthenticated(Reject)(ok)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, _ = newContext(nil)
	if err := RequireAuthenticated(Reject)(ok)(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestRedirectTo_ReportsStoreFailure(t *testing.T) {
	var got []error
	notify := func(_ echo.Context, err error) { got = append(got, err) }

	c, _ := newContext(nil)
	if err := RequireAuthenticated(RedirectTo("/login", notify))(ok)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(got) != 1 || !errors.Is(got[0], domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", got)
	}

	got = nil
	c, rec := newContext(nil)
	c.Set(SessionErrorKey, domain.ErrStoreUnavailable)
	if err := RequireAuthenticated(RedirectTo("/login", notify))(ok)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(got) != 1 || !errors.Is(got[0], domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", got)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
}
