package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/ports"
)

// AdminHandler serves the administration forms on the dashboard.
type AdminHandler struct {
	admin  ports.AdminService
	cookie SessionCookie
	log    zerolog.Logger
}

func NewAdminHandler(admin ports.AdminService, cookie SessionCookie, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, cookie: cookie, log: log}
}

type addUserForm struct {
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required"`
	Name     string `form:"name" json:"name"`
	Role     string `form:"role" json:"role" validate:"omitempty,role"`
}

type addRuleForm struct {
	Title   string `form:"title" json:"title"`
	Content string `form:"content" json:"content"`
}

type addNoticeForm struct {
	Text string `form:"text" json:"text"`
}

// AddUser handles POST /admin/add-user.
func (h *AdminHandler) AddUser(c echo.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return h.cookie.redirectWithFlash(c, "/login", flashError, flashMessage(err))
	}

	var form addUserForm
	if err := c.Bind(&form); err != nil {
		return h.cookie.redirectWithFlash(c, "/dashboard", flashError, "Could not create user: invalid form")
	}
	if err := c.Validate(&form); err != nil {
		return h.cookie.redirectWithFlash(c, "/dashboard", flashError, "Could not create user: "+err.Error())
	}

	u, err := h.admin.CreateUser(c.Request().Context(), s, ports.CreateUserInput{
		Email:      form.Email,
		Credential: form.Password,
		Name:       form.Name,
		Role:       form.Role,
	})
	if err != nil {
		h.log.Warn().Err(err).Str("email", form.Email).Msg("create user")
		return h.cookie.redirectWithFlash(c, "/dashboard", flashError, flashMessage(err))
	}
	return h.cookie.redirectWithFlash(c, "/dashboard", flashSuccess, "User "+u.Email+" created")
}

// AddRule handles POST /admin/add-rule.
func (h *AdminHandler) AddRule(c echo.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return h.cookie.redirectWithFlash(c, "/login", flashError, flashMessage(err))
	}

	var form addRuleForm
	if err := c.Bind(&form); err != nil {
		return h.cookie.redirectWithFlash(c, "/dashboard", flashError, "Could not save rule: invalid form")
	}

	if _, err := h.admin.CreateRule(c.Request().Context(), s, form.Title, form.Content); err != nil {
		h.log.Error().Err(err).Msg("create rule")
		return h.cookie.redirectWithFlash(c, "/dashboard", flashError, flashMessage(err))
	}
	return h.cookie.redirectWithFlash(c, "/dashboard", flashSuccess, "Rule saved")
}

// AddNotice handles POST /admin/add-notice.
func (h *AdminHandler) AddNotice(c echo.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return h.cookie.redirectWithFlash(c, "/login", flashError, flashMessage(err))
	}

	var form addNoticeForm
	if err := c.Bind(&form); err != nil {
		return h.cookie.redirectWithFlash(c, "/dashboard", flashError, "Could not send notice: invalid form")
	}

	if _, err := h.admin.CreateNotice(c.Request().Context(), s, form.Text); err != nil {
		h.log.Error().Err(err).Msg("create notice")
		return h.cookie.redirectWithFlash(c, "/dashboard", flashError, flashMessage(err))
	}
	return h.cookie.redirectWithFlash(c, "/dashboard", flashSuccess, "Notice sent")
}
