package middleware

import (
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/domain"
	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/ports"
)

const (
	// SessionKey holds the caller's *domain.Session in the echo context.
	SessionKey = "session"
	// TokenValue is the cookie-session value carrying the session token.
	TokenValue = "token"
	// SessionErrorKey holds the error of a failed session lookup.
	SessionErrorKey = "session_error"
)

// CurrentSession returns the identity resolved for this request, or nil.
func CurrentSession(c echo.Context) *domain.Session {
	s, _ := c.Get(SessionKey).(*domain.Session)
	return s
}

// SessionError returns the session store failure seen while resolving this
// request, or nil.
func SessionError(c echo.Context) error {
	err, _ := c.Get(SessionErrorKey).(error)
	return err
}

// Session resolves the caller from the session cookie. It must run after the
// echo-contrib session middleware. Requests without a valid session continue
// anonymously; the authorization middleware decides what they may reach. A
// store failure is kept on the context so the gate can report it.
func Session(svc ports.SessionService, cookieName string, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cs, err := session.Get(cookieName, c)
			if err != nil {
				log.Debug().Err(err).Msg("unreadable session cookie")
			}
			if cs == nil {
				return next(c)
			}

			token, _ := cs.Values[TokenValue].(string)
			if token == "" {
				return next(c)
			}

			s, err := svc.Current(c.Request().Context(), token)
			if err != nil {
				log.Warn().Err(err).Msg("session lookup failed")
				c.Set(SessionErrorKey, err)
				return next(c)
			}
			if s != nil {
				c.Set(SessionKey, s)
			}
			return next(c)
		}
	}
}
