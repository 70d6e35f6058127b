package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/domain"
	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/ports"
)

// SeedHandler serves GET /_seed. It is only mounted when seeding is enabled.
type SeedHandler struct {
	bootstrap ports.BootstrapService
	log       zerolog.Logger
}

func NewSeedHandler(bootstrap ports.BootstrapService, log zerolog.Logger) *SeedHandler {
	return &SeedHandler{bootstrap: bootstrap, log: log}
}

func (h *SeedHandler) Seed(c echo.Context) error {
	res, err := h.bootstrap.SeedDemoData(c.Request().Context())
	switch {
	case errors.Is(err, domain.ErrAlreadySeeded):
		return c.String(http.StatusOK, "DB already has users")
	case err != nil:
		h.log.Error().Err(err).Msg("seed demo data")
		return c.String(http.StatusServiceUnavailable, flashMessage(err))
	}

	var b strings.Builder
	b.WriteString("Seeded")
	if len(res.Created) > 0 {
		b.WriteString(" " + strings.Join(res.Created, ", "))
	}
	if len(res.Skipped) > 0 {
		b.WriteString("; already present: " + strings.Join(res.Skipped, ", "))
	}
	return c.String(http.StatusOK, b.String())
}
