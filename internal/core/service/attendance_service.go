package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/domain"
	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/ports"
	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/pkg/metrics"
)

// AttendanceService appends clock events for the logged-in user. Events are
// never alternated, deduplicated, updated or removed.
type AttendanceService struct {
	shifts ports.ShiftRepository
	log    zerolog.Logger
	now    func() time.Time
}

func NewAttendanceService(shifts ports.ShiftRepository, log zerolog.Logger) *AttendanceService {
	return &AttendanceService{shifts: shifts, log: log, now: time.Now}
}

func (s *AttendanceService) ClockOnDuty(ctx context.Context, session *domain.Session) (*domain.Shift, error) {
	return s.clock(ctx, session, domain.ShiftOnDuty)
}

func (s *AttendanceService) ClockOffDuty(ctx context.Context, session *domain.Session) (*domain.Shift, error) {
	return s.clock(ctx, session, domain.ShiftOffDuty)
}

func (s *AttendanceService) clock(ctx context.Context, session *domain.Session, typ domain.ShiftType) (*domain.Shift, error) {
	if _, err := RequireAuthenticated(session); err != nil {
		return nil, err
	}

	shift, err := s.shifts.Create(ctx, &domain.Shift{
		Email: session.Email,
		Type:  typ,
		At:    s.now().UTC(),
	})
	if err != nil {
		s.log.Error().Err(err).Str("email", session.Email).Str("type", string(typ)).Msg("failed to record shift")
		return nil, fmt.Errorf("record %s: %w", typ, err)
	}

	metrics.ShiftsRecordedTotal.WithLabelValues(string(typ)).Inc()
	s.log.Info().Str("email", session.Email).Str("type", string(typ)).Msg("shift recorded")
	return shift, nil
}

// RecentShifts returns at most limit shifts, newest first.
func (s *AttendanceService) RecentShifts(ctx context.Context, limit int) ([]*domain.Shift, error) {
	shifts, err := s.shifts.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("recent shifts: %w", err)
	}
	return shifts, nil
}
