package ports

import (
	"context"

	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/domain"
)

// ShiftRepository is the append-only clock event log.
type ShiftRepository interface {
	Create(ctx context.Context, shift *domain.Shift) (*domain.Shift, error)
	// Recent returns at most limit shifts, newest first.
	Recent(ctx context.Context, limit int) ([]*domain.Shift, error)
}

// RuleRepository stores published rules.
type RuleRepository interface {
	Create(ctx context.Context, rule *domain.Rule) (*domain.Rule, error)
	Recent(ctx context.Context, limit int) ([]*domain.Rule, error)
}

// NoticeRepository stores dashboard notices.
type NoticeRepository interface {
	Create(ctx context.Context, notice *domain.Notice) (*domain.Notice, error)
	Recent(ctx context.Context, limit int) ([]*domain.Notice, error)
}
