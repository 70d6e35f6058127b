package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/domain"
)

func newTestStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := Connect(context.Background(), Config{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionStore(client), mr
}

func TestSessionStore_RoundTrip(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	created := time.Date(2026, 10, 17, 8, 30, 0, 0, time.UTC)
	s := &domain.Session{
		Token:     "tok",
		UserID:    "u1",
		Email:     "g@x.com",
		Name:      "Bảo vệ 1",
		Role:      domain.RoleGuard,
		CreatedAt: created,
	}
	require.NoError(t, store.Save(ctx, s, time.Hour))
	require.Equal(t, time.Hour, mr.TTL("session:tok"))

	got, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	require.Equal(t, s, got)

	require.NoError(t, store.Delete(ctx, "tok"))
	_, err = store.Get(ctx, "tok")
	require.ErrorIs(t, err, domain.ErrSessionNotFound)

	// Deleting again is not an error.
	require.NoError(t, store.Delete(ctx, "tok"))
}

func TestSessionStore_Expires(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	s := &domain.Session{Token: "tok", Email: "a@x.com", Role: domain.RoleAdmin, CreatedAt: time.Now().UTC()}
	require.NoError(t, store.Save(ctx, s, time.Minute))

	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "tok")
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionStore_Unavailable(t *testing.T) {
	store, mr := newTestStore(t)
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := store.Get(ctx, "tok")
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)
	require.ErrorIs(t, store.Save(ctx, &domain.Session{Token: "tok"}, time.Minute), domain.ErrStoreUnavailable)
}
