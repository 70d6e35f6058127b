package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/domain"
	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/ports"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStore keeps sessions as Redis hashes that expire with the session TTL.
// Key format: session:<token>
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) Save(ctx context.Context, session *domain.Session, ttl time.Duration) error {
	key := s.key(session.Token)
	fields := map[string]interface{}{
		"user_id":    session.UserID,
		"email":      session.Email,
		"name":       session.Name,
		"role":       string(session.Role),
		"created_at": session.CreatedAt.UTC().Format(time.RFC3339Nano),
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("store session: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, token string) (*domain.Session, error) {
	fields, err := s.client.HGetAll(ctx, s.key(token)).Result()
	if err != nil {
		return nil, fmt.Errorf("get session: %w: %w", domain.ErrStoreUnavailable, err)
	}
	if len(fields) == 0 {
		return nil, domain.ErrSessionNotFound
	}

	createdAt, _ := time.Parse(time.RFC3339Nano, fields["created_at"])
	return &domain.Session{
		Token:     token,
		UserID:    fields["user_id"],
		Email:     fields["email"],
		Name:      fields["name"],
		Role:      domain.Role(fields["role"]),
		CreatedAt: createdAt,
	}, nil
}

// Delete removes the session; deleting a missing key is not an error.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("delete session: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *SessionStore) key(token string) string {
	return fmt.Sprintf("session:%s", token)
}
