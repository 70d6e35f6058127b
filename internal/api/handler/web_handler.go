package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/api/middleware"
	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/domain"
	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/ports"
)

// WebHandler serves the browser pages: login, logout and the dashboard.
type WebHandler struct {
	sessions  ports.SessionService
	dashboard ports.DashboardService
	cookie    SessionCookie
	assets    Assets
	log       zerolog.Logger
}

func NewWebHandler(
	sessions ports.SessionService,
	dashboard ports.DashboardService,
	cookie SessionCookie,
	assets Assets,
	log zerolog.Logger,
) *WebHandler {
	return &WebHandler{
		sessions:  sessions,
		dashboard: dashboard,
		cookie:    cookie,
		assets:    assets,
		log:       log,
	}
}

type pageData struct {
	Assets    Assets
	Session   *domain.Session
	Dashboard *ports.Dashboard
	IsAdmin   bool
	Errors    []string
	Success   []string
}

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

// Home handles GET /.
func (h *WebHandler) Home(c echo.Context) error {
	if middleware.CurrentSession(c) != nil {
		return c.Redirect(http.StatusFound, "/dashboard")
	}
	return c.Redirect(http.StatusFound, "/login")
}

// LoginPage handles GET /login.
func (h *WebHandler) LoginPage(c echo.Context) error {
	data := pageData{
		Assets:  h.assets,
		Errors:  h.cookie.flashes(c, flashError),
		Success: h.cookie.flashes(c, flashSuccess),
	}
	return c.Render(http.StatusOK, "login.html", data)
}

// Login handles POST /login.
func (h *WebHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return h.cookie.redirectWithFlash(c, "/login", flashError, flashMessage(domain.ErrInvalidCredentials))
	}

	ctx := c.Request().Context()
	s, err := h.sessions.Login(ctx, form.Email, form.Password)
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			h.log.Error().Err(err).Msg("login failed")
		}
		return h.cookie.redirectWithFlash(c, "/login", flashError, flashMessage(err))
	}

	// Drop the session this browser held before, if any.
	if old := h.cookie.token(c); old != "" {
		_ = h.sessions.Logout(ctx, old)
	}
	if err := h.cookie.bind(c, s.Token); err != nil {
		h.log.Error().Err(err).Msg("write session cookie")
		_ = h.sessions.Logout(ctx, s.Token)
		return h.cookie.redirectWithFlash(c, "/login", flashError, flashMessage(err))
	}
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// Logout handles GET /logout.
func (h *WebHandler) Logout(c echo.Context) error {
	if token := h.cookie.token(c); token != "" {
		if err := h.sessions.Logout(c.Request().Context(), token); err != nil {
			h.log.Warn().Err(err).Msg("logout")
		}
	}
	if err := h.cookie.clear(c); err != nil {
		h.log.Debug().Err(err).Msg("clear session cookie")
	}
	return c.Redirect(http.StatusFound, "/login")
}

// Dashboard handles GET /dashboard.
func (h *WebHandler) Dashboard(c echo.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return c.Redirect(http.StatusFound, "/login")
	}

	d, err := h.dashboard.Compose(c.Request().Context(), s)
	if err != nil {
		h.log.Error().Err(err).Str("email", s.Email).Msg("compose dashboard")
		return h.cookie.redirectWithFlash(c, "/login", flashError, flashMessage(err))
	}

	data := pageData{
		Assets:    h.assets,
		Session:   s,
		Dashboard: d,
		IsAdmin:   s.Role == domain.RoleAdmin,
		Errors:    h.cookie.flashes(c, flashError),
		Success:   h.cookie.flashes(c, flashSuccess),
	}
	return c.Render(http.StatusOK, "dashboard.html", data)
}
