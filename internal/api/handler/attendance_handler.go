package handler

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/domain"
	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/ports"
)

// AttendanceHandler serves the OnDuty/OffDuty buttons.
type AttendanceHandler struct {
	attendance ports.AttendanceService
	cookie     SessionCookie
	clock      Clock
	log        zerolog.Logger
}

func NewAttendanceHandler(attendance ports.AttendanceService, cookie SessionCookie, clock Clock, log zerolog.Logger) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance, cookie: cookie, clock: clock, log: log}
}

// OnDuty handles POST /onduty.
func (h *AttendanceHandler) OnDuty(c echo.Context) error {
	return h.record(c, h.attendance.ClockOnDuty)
}

// OffDuty handles POST /offduty.
func (h *AttendanceHandler) OffDuty(c echo.Context) error {
	return h.record(c, h.attendance.ClockOffDuty)
}

func (h *AttendanceHandler) record(c echo.Context, clock func(context.Context, *domain.Session) (*domain.Shift, error)) error {
	s, err := currentSession(c)
	if err != nil {
		return h.cookie.redirectWithFlash(c, "/login", flashError, flashMessage(err))
	}

	shift, err := clock(c.Request().Context(), s)
	if err != nil {
		h.log.Error().Err(err).Str("email", s.Email).Msg("record shift")
		return h.cookie.redirectWithFlash(c, "/dashboard", flashError, flashMessage(err))
	}
	msg := string(shift.Type) + " recorded at " + h.clock.Format(shift.At)
	return h.cookie.redirectWithFlash(c, "/dashboard", flashSuccess, msg)
}
