package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/domain"
	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/ports"
)

var (
	_ ports.ShiftRepository  = (*ShiftRepository)(nil)
	_ ports.RuleRepository   = (*RuleRepository)(nil)
	_ ports.NoticeRepository = (*NoticeRepository)(nil)
)

// log is an append-only list; Recent walks it backwards, so insertion order
// is the recency order.
type log[T any] struct {
	mu      sync.RWMutex
	entries []T
}

func (l *log[T]) append(v T) {
	l.mu.Lock()
	l.entries = append(l.entries, v)
	l.mu.Unlock()
}

func (l *log[T]) recent(limit int) []T {
	l.mu.RLock()
	defer l.mu.RUnlock()

	n := len(l.entries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]T, 0, n)
	for i := len(l.entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, l.entries[i])
	}
	return out
}

func (l *log[T]) all() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]T(nil), l.entries...)
}

// ShiftRepository is an in-memory clock event log.
type ShiftRepository struct{ log log[domain.Shift] }

func NewShiftRepository() *ShiftRepository { return &ShiftRepository{} }

func (r *ShiftRepository) Create(_ context.Context, shift *domain.Shift) (*domain.Shift, error) {
	stored := *shift
	stored.ID = uuid.NewString()
	r.log.append(stored)
	return &stored, nil
}

func (r *ShiftRepository) Recent(_ context.Context, limit int) ([]*domain.Shift, error) {
	return pointers(r.log.recent(limit)), nil
}

// All returns every shift in insertion order.
func (r *ShiftRepository) All() []domain.Shift { return r.log.all() }

// RuleRepository is an in-memory rule list.
type RuleRepository struct{ log log[domain.Rule] }

func NewRuleRepository() *RuleRepository { return &RuleRepository{} }

func (r *RuleRepository) Create(_ context.Context, rule *domain.Rule) (*domain.Rule, error) {
	stored := *rule
	stored.ID = uuid.NewString()
	r.log.append(stored)
	return &stored, nil
}

func (r *RuleRepository) Recent(_ context.Context, limit int) ([]*domain.Rule, error) {
	return pointers(r.log.recent(limit)), nil
}

// NoticeRepository is an in-memory notice list.
type NoticeRepository struct{ log log[domain.Notice] }

func NewNoticeRepository() *NoticeRepository { return &NoticeRepository{} }

func (r *NoticeRepository) Create(_ context.Context, notice *domain.Notice) (*domain.Notice, error) {
	stored := *notice
	stored.ID = uuid.NewString()
	r.log.append(stored)
	return &stored, nil
}

func (r *NoticeRepository) Recent(_ context.Context, limit int) ([]*domain.Notice, error) {
	return pointers(r.log.recent(limit)), nil
}

func pointers[T any](values []T) []*T {
	out := make([]*T, len(values))
	for i := range values {
		out[i] = &values[i]
	}
	return out
}
