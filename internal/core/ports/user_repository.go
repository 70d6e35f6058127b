package ports

import (
	"context"

	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/domain"
)

// UserRepository defines persistence operations for staff accounts.
type UserRepository interface {
	// Create inserts a user. A taken email yields domain.ErrDuplicateEmail
	// and leaves the store untouched.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByEmail matches the email exactly; a miss yields domain.ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
	// ListByName returns every user sorted by name ascending.
	ListByName(ctx context.Context) ([]*domain.User, error)
}
