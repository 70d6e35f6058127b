package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/api/middleware"
	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/domain"
)

// currentSession returns the caller's session as resolved by the Session or
// Bearer middleware. The routes are gated already; a missing session here
// means the middleware chain is misconfigured, which still must not let the
// request through.
func currentSession(c echo.Context) (*domain.Session, error) {
	s := middleware.CurrentSession(c)
	if s == nil {
		return nil, domain.ErrUnauthenticated
	}
	return s, nil
}
