package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/api/middleware"
)

// Flash kinds.
const (
	flashSuccess = "success"
	flashError   = "error"
)

// NewCookieStore returns the signed cookie store backing SessionCookie. secure
// marks the cookie HTTPS-only; it must be false when serving plain HTTP or
// browsers drop the cookie.
func NewCookieStore(key []byte, ttl time.Duration, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// SessionCookie manages the signed browser cookie that carries the session
// token and one-shot flash messages.
type SessionCookie struct {
	Name string
}

func (sc SessionCookie) load(c echo.Context) (*sessions.Session, error) {
	return session.Get(sc.Name, c)
}

func (sc SessionCookie) token(c echo.Context) string {
	cs, err := sc.load(c)
	if err != nil || cs == nil {
		return ""
	}
	token, _ := cs.Values[middleware.TokenValue].(string)
	return token
}

func (sc SessionCookie) bind(c echo.Context, token string) error {
	cs, err := sc.load(c)
	if cs == nil {
		return err
	}
	cs.Values[middleware.TokenValue] = token
	return cs.Save(c.Request(), c.Response())
}

// clear expires the cookie, dropping the token and any pending flashes.
func (sc SessionCookie) clear(c echo.Context) error {
	cs, err := sc.load(c)
	if cs == nil {
		return err
	}
	cs.Values = map[interface{}]interface{}{}
	cs.Options.MaxAge = -1
	return cs.Save(c.Request(), c.Response())
}

// flash queues msg for the next rendered page.
func (sc SessionCookie) flash(c echo.Context, kind, msg string) {
	cs, _ := sc.load(c)
	if cs == nil {
		return
	}
	cs.AddFlash(msg, kind)
	_ = cs.Save(c.Request(), c.Response())
}

// flashes pops the queued messages of kind.
func (sc SessionCookie) flashes(c echo.Context, kind string) []string {
	cs, _ := sc.load(c)
	if cs == nil {
		return nil
	}
	raw := cs.Flashes(kind)
	if len(raw) == 0 {
		return nil
	}
	_ = cs.Save(c.Request(), c.Response())

	msgs := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			msgs = append(msgs, s)
		}
	}
	return msgs
}

// FlashError queues the user-facing text for err. It matches the notify
// argument of middleware.RedirectTo.
func (sc SessionCookie) FlashError(c echo.Context, err error) {
	sc.flash(c, flashError, flashMessage(err))
}

// redirectWithFlash queues msg and redirects to path.
func (sc SessionCookie) redirectWithFlash(c echo.Context, path, kind, msg string) error {
	sc.flash(c, kind, msg)
	return c.Redirect(http.StatusSeeOther, path)
}
