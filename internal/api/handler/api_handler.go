package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/domain"
	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/ports"
)

// APIHandler serves the JSON API under /api/v1. Errors are returned to the
// HTTP error handler, which maps domain errors to status codes.
type APIHandler struct {
	sessions   ports.SessionService
	tokens     ports.TokenIssuer
	attendance ports.AttendanceService
	admin      ports.AdminService
	dashboard  ports.DashboardService
}

func NewAPIHandler(
	sessions ports.SessionService,
	tokens ports.TokenIssuer,
	attendance ports.AttendanceService,
	admin ports.AdminService,
	dashboard ports.DashboardService,
) *APIHandler {
	return &APIHandler{
		sessions:   sessions,
		tokens:     tokens,
		attendance: attendance,
		admin:      admin,
		dashboard:  dashboard,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token   string          `json:"token"`
	Session *domain.Session `json:"session"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *APIHandler) bindValid(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// Login authenticates a user and returns a bearer token for the new session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/v1/auth/login [post]
func (h *APIHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := h.bindValid(c, &req); err != nil {
		return err
	}

	s, err := h.sessions.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	token, err := h.tokens.Issue(s)
	if err != nil {
		_ = h.sessions.Logout(c.Request().Context(), s.Token)
		return err
	}
	return c.JSON(http.StatusOK, loginResponse{Token: token, Session: s})
}

// Logout destroys the session behind the bearer token.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401   {object}  errorResponse
// @Router       /api/v1/auth/logout [post]
func (h *APIHandler) Logout(c echo.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	if err := h.sessions.Logout(c.Request().Context(), s.Token); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the caller's session.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  domain.Session
// @Failure      401   {object}  errorResponse
// @Router       /api/v1/me [get]
func (h *APIHandler) Me(c echo.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

// Dashboard returns recent shifts, rules, notices and the staff list.
//
// @Summary      Dashboard
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  ports.Dashboard
// @Failure      401   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /api/v1/dashboard [get]
func (h *APIHandler) Dashboard(c echo.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	d, err := h.dashboard.Compose(c.Request().Context(), s)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

// OnDuty records an OnDuty shift for the caller.
//
// @Summary      Clock on duty
// @Tags         shifts
// @Produce      json
// @Security     BearerAuth
// @Success      201   {object}  domain.Shift
// @Failure      401   {object}  errorResponse
// @Router       /api/v1/shifts/onduty [post]
func (h *APIHandler) OnDuty(c echo.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	shift, err := h.attendance.ClockOnDuty(c.Request().Context(), s)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, shift)
}

// OffDuty records an OffDuty shift for the caller.
//
// @Summary      Clock off duty
// @Tags         shifts
// @Produce      json
// @Security     BearerAuth
// @Success      201   {object}  domain.Shift
// @Failure      401   {object}  errorResponse
// @Router       /api/v1/shifts/offduty [post]
func (h *APIHandler) OffDuty(c echo.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	shift, err := h.attendance.ClockOffDuty(c.Request().Context(), s)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, shift)
}

// CreateUser adds a staff account.
//
// @Summary      Create user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addUserForm  true  "New account"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/v1/admin/users [post]
func (h *APIHandler) CreateUser(c echo.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	var req addUserForm
	if err := h.bindValid(c, &req); err != nil {
		return err
	}
	u, err := h.admin.CreateUser(c.Request().Context(), s, ports.CreateUserInput{
		Email:      req.Email,
		Credential: req.Password,
		Name:       req.Name,
		Role:       req.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, u)
}

// CreateRule publishes a rule.
//
// @Summary      Create rule
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addRuleForm  true  "Rule"
// @Success      201   {object}  domain.Rule
// @Failure      403   {object}  errorResponse
// @Router       /api/v1/admin/rules [post]
func (h *APIHandler) CreateRule(c echo.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	var req addRuleForm
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	r, err := h.admin.CreateRule(c.Request().Context(), s, req.Title, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, r)
}

// CreateNotice publishes a notice.
//
// @Summary      Create notice
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addNoticeForm  true  "Notice"
// @Success      201   {object}  domain.Notice
// @Failure      403   {object}  errorResponse
// @Router       /api/v1/admin/notices [post]
func (h *APIHandler) CreateNotice(c echo.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	var req addNoticeForm
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	n, err := h.admin.CreateNotice(c.Request().Context(), s, req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, n)
}
