package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/ports"
)

// Bearer validates the API bearer token and loads the session it refers to.
// The token only identifies the session: a logged-out or expired session is
// rejected even if the JWT itself is still valid.
func Bearer(tokens ports.TokenIssuer, svc ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			token, err := tokens.Parse(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			s, err := svc.Current(c.Request().Context(), token)
			if err != nil {
				return err
			}
			if s == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
			}

			c.Set(SessionKey, s)
			return next(c)
		}
	}
}
