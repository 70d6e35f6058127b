package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/domain"
	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/ports"
	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/pkg/metrics"
)

const defaultSessionTTL = 24 * time.Hour

// SessionService implements login, logout and identity resolution.
type SessionService struct {
	users    ports.UserRepository
	store    ports.SessionStore
	verifier ports.CredentialVerifier
	ttl      time.Duration
	log      zerolog.Logger
	now      func() time.Time
}

func NewSessionService(
	users ports.UserRepository,
	store ports.SessionStore,
	verifier ports.CredentialVerifier,
	ttl time.Duration,
	log zerolog.Logger,
) *SessionService {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionService{
		users:    users,
		store:    store,
		verifier: verifier,
		ttl:      ttl,
		log:      log,
		now:      time.Now,
	}
}

// Login matches email exactly and checks the credential with the configured
// verifier. Unknown email and wrong credential both yield
// domain.ErrInvalidCredentials.
func (s *SessionService) Login(ctx context.Context, email, credential string) (*domain.Session, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("login: %w", err)
	}

	if !s.verifier.Verify(user.Credential, credential) {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	session := domain.NewSession(uuid.NewString(), user, s.now().UTC())
	if err := s.store.Save(ctx, session, s.ttl); err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("login: save session: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("user logged in")
	return session, nil
}

// Current resolves token. Empty, unknown and expired tokens are anonymous.
func (s *SessionService) Current(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, nil
	}
	session, err := s.store.Get(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve session: %w", err)
	}
	return session, nil
}

// Logout destroys the session behind token. Unknown tokens are ignored.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	metrics.LogoutsTotal.Inc()
	if token == "" {
		return nil
	}
	if err := s.store.Delete(ctx, token); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}
