package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/domain"
	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/service"
	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/pkg/metrics"
)

// DenyFunc answers a request the authorization gate rejected. err is
// domain.ErrUnauthenticated or domain.ErrForbidden.
type DenyFunc func(c echo.Context, err error) error

// RedirectTo sends rejected browser requests to path. notify, when set, is
// handed the reason first; a session store failure takes precedence over the
// gate error.
func RedirectTo(path string, notify func(echo.Context, error)) DenyFunc {
	return func(c echo.Context, err error) error {
		if storeErr := SessionError(c); storeErr != nil {
			err = storeErr
		}
		if notify != nil {
			notify(c, err)
		}
		return c.Redirect(http.StatusSeeOther, path)
	}
}

// Reject hands the gate error to the HTTP error handler (401/403).
func Reject(_ echo.Context, err error) error {
	return err
}

// RequireAuthenticated admits any logged-in caller.
func RequireAuthenticated(deny DenyFunc) echo.MiddlewareFunc {
	return gate(deny, service.RequireAuthenticated)
}

// RequireRole admits callers holding role.
func RequireRole(role domain.Role, deny DenyFunc) echo.MiddlewareFunc {
	return gate(deny, func(s *domain.Session) (*domain.Session, error) {
		return service.RequireRole(s, role)
	})
}

func gate(deny DenyFunc, check func(*domain.Session) (*domain.Session, error)) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, err := check(CurrentSession(c)); err != nil {
				reason := "forbidden"
				if errors.Is(err, domain.ErrUnauthenticated) {
					reason = "unauthenticated"
				}
				metrics.AccessDeniedTotal.WithLabelValues(reason).Inc()
				return deny(c, err)
			}
			return next(c)
		}
	}
}
