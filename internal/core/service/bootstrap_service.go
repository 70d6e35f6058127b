package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/domain"
	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/ports"
	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/pkg/metrics"
)

// DefaultSeedThreshold is the user count above which SeedDemoData refuses.
const DefaultSeedThreshold = 2

// AdminAccount is the administrator provisioned at startup.
type AdminAccount struct {
	Email      string
	Credential string
	Name       string
}

// DemoGuard is the guard account created by SeedDemoData.
var DemoGuard = AdminAccount{
	Email:      "guard1@merryweather.com",
	Credential: "123456",
	Name:       "Bảo vệ 1",
}

// BootstrapService provisions the admin account and demo data.
type BootstrapService struct {
	users     ports.UserRepository
	verifier  ports.CredentialVerifier
	admin     AdminAccount
	threshold int64
	log       zerolog.Logger
	now       func() time.Time

	mu sync.Mutex
}

func NewBootstrapService(
	users ports.UserRepository,
	verifier ports.CredentialVerifier,
	admin AdminAccount,
	threshold int,
	log zerolog.Logger,
) *BootstrapService {
	if threshold < 0 {
		threshold = DefaultSeedThreshold
	}
	return &BootstrapService{
		users:     users,
		verifier:  verifier,
		admin:     admin,
		threshold: int64(threshold),
		log:       log,
		now:       time.Now,
	}
}

// EnsureAdmin creates the configured admin unless an account with that email
// exists. Concurrent calls in one process are serialised; across processes
// the unique email index turns the losing insert into a no-op.
func (s *BootstrapService) EnsureAdmin(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.users.FindByEmail(ctx, s.admin.Email)
	switch {
	case err == nil:
		s.log.Info().Str("email", s.admin.Email).Msg("admin exists")
		return nil
	case !errors.Is(err, domain.ErrUserNotFound):
		return fmt.Errorf("ensure admin: %w", err)
	}

	created, err := s.create(ctx, s.admin, domain.RoleAdmin)
	if err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}
	if created {
		s.log.Info().Str("email", s.admin.Email).Msg("admin created")
	}
	return nil
}

// Provision runs prepare and then EnsureAdmin, retrying both with b while the
// store reports itself unavailable. prepare readies the store (indexes) and
// may be nil. Other errors end the retries at once.
func (s *BootstrapService) Provision(ctx context.Context, prepare func(context.Context) error, b backoff.BackOff) error {
	op := func() error {
		err := s.provisionOnce(ctx, prepare)
		if err != nil && !errors.Is(err, domain.ErrStoreUnavailable) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		s.log.Warn().Err(err).Dur("retry_in", wait).Msg("store not ready")
	}
	return backoff.RetryNotify(op, backoff.WithContext(b, ctx), notify)
}

func (s *BootstrapService) provisionOnce(ctx context.Context, prepare func(context.Context) error) error {
	if prepare != nil {
		if err := prepare(ctx); err != nil {
			return fmt.Errorf("prepare store: %w", err)
		}
	}
	return s.EnsureAdmin(ctx)
}

// SeedDemoData creates the configured admin and DemoGuard when the store
// holds at most threshold users. Accounts that already exist are reported
// as skipped rather than failing the run.
func (s *BootstrapService) SeedDemoData(ctx context.Context) (*ports.SeedResult, error) {
	n, err := s.users.Count(ctx)
	if err != nil {
		metrics.SeedRunsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("seed: count users: %w", err)
	}
	if n > s.threshold {
		metrics.SeedRunsTotal.WithLabelValues("already_seeded").Inc()
		return nil, domain.ErrAlreadySeeded
	}

	result := &ports.SeedResult{}
	for _, acct := range []struct {
		account AdminAccount
		role    domain.Role
	}{
		{s.admin, domain.RoleAdmin},
		{DemoGuard, domain.RoleGuard},
	} {
		created, err := s.create(ctx, acct.account, acct.role)
		if err != nil {
			metrics.SeedRunsTotal.WithLabelValues("error").Inc()
			return result, fmt.Errorf("seed: %w", err)
		}
		if created {
			result.Created = append(result.Created, acct.account.Email)
		} else {
			result.Skipped = append(result.Skipped, acct.account.Email)
		}
	}

	metrics.SeedRunsTotal.WithLabelValues("seeded").Inc()
	s.log.Info().Strs("created", result.Created).Strs("skipped", result.Skipped).Msg("demo data seeded")
	return result, nil
}

// create inserts acct and reports false when its email is already taken.
func (s *BootstrapService) create(ctx context.Context, acct AdminAccount, role domain.Role) (bool, error) {
	credential, err := s.verifier.Prepare(acct.Credential)
	if err != nil {
		return false, err
	}
	_, err = s.users.Create(ctx, &domain.User{
		Email:      acct.Email,
		Credential: credential,
		Name:       acct.Name,
		Role:       role,
		CreatedAt:  s.now().UTC(),
	})
	if errors.Is(err, domain.ErrDuplicateEmail) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
