package ports

import (
	"context"
	"time"

	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/domain"
)

// SessionStore holds server-side sessions keyed by token.
type SessionStore interface {
	// Save stores s under s.Token; the entry expires after ttl.
	Save(ctx context.Context, s *domain.Session, ttl time.Duration) error
	// Get yields domain.ErrSessionNotFound for unknown or expired tokens.
	Get(ctx context.Context, token string) (*domain.Session, error)
	// Delete is a no-op for unknown tokens.
	Delete(ctx context.Context, token string) error
}

// CredentialVerifier isolates how credentials are stored and compared so a
// hashed scheme can replace the plaintext one without touching callers.
type CredentialVerifier interface {
	// Prepare turns a submitted credential into its stored form.
	Prepare(credential string) (string, error)
	// Verify reports whether presented matches the stored form.
	Verify(stored, presented string) bool
}

// TokenIssuer wraps a session token into a bearer token for API clients.
type TokenIssuer interface {
	Issue(s *domain.Session) (string, error)
	// Parse returns the session token carried by raw.
	Parse(raw string) (string, error)
}
