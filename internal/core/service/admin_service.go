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

// AdminService implements the admin-only, append-only mutations.
type AdminService struct {
	users    ports.UserRepository
	rules    ports.RuleRepository
	notices  ports.NoticeRepository
	verifier ports.CredentialVerifier
	log      zerolog.Logger
	now      func() time.Time
}

func NewAdminService(
	users ports.UserRepository,
	rules ports.RuleRepository,
	notices ports.NoticeRepository,
	verifier ports.CredentialVerifier,
	log zerolog.Logger,
) *AdminService {
	return &AdminService{
		users:    users,
		rules:    rules,
		notices:  notices,
		verifier: verifier,
		log:      log,
		now:      time.Now,
	}
}

// CreateUser adds an account. The role defaults to guard; a taken email
// yields domain.ErrDuplicateEmail.
func (s *AdminService) CreateUser(ctx context.Context, session *domain.Session, in ports.CreateUserInput) (*domain.User, error) {
	if _, err := RequireRole(session, domain.RoleAdmin); err != nil {
		return nil, err
	}

	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}

	credential, err := s.verifier.Prepare(in.Credential)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	user, err := s.users.Create(ctx, &domain.User{
		Email:      in.Email,
		Credential: credential,
		Name:       in.Name,
		Role:       role,
		CreatedAt:  s.now().UTC(),
	})
	if err != nil {
		s.log.Warn().Err(err).Str("email", in.Email).Str("by", session.Email).Msg("failed to create user")
		return nil, fmt.Errorf("create user: %w", err)
	}

	metrics.RecordsCreatedTotal.WithLabelValues("user").Inc()
	s.log.Info().Str("email", user.Email).Str("role", string(user.Role)).Str("by", session.Email).Msg("user created")
	return user, nil
}

// CreateRule publishes a rule. Empty fields are accepted.
func (s *AdminService) CreateRule(ctx context.Context, session *domain.Session, title, content string) (*domain.Rule, error) {
	if _, err := RequireRole(session, domain.RoleAdmin); err != nil {
		return nil, err
	}

	rule, err := s.rules.Create(ctx, &domain.Rule{
		Title:     title,
		Content:   content,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create rule: %w", err)
	}

	metrics.RecordsCreatedTotal.WithLabelValues("rule").Inc()
	s.log.Info().Str("rule_id", rule.ID).Str("by", session.Email).Msg("rule created")
	return rule, nil
}

func (s *AdminService) CreateNotice(ctx context.Context, session *domain.Session, text string) (*domain.Notice, error) {
	if _, err := RequireRole(session, domain.RoleAdmin); err != nil {
		return nil, err
	}

	notice, err := s.notices.Create(ctx, &domain.Notice{
		Text:      text,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create notice: %w", err)
	}

	metrics.RecordsCreatedTotal.WithLabelValues("notice").Inc()
	s.log.Info().Str("notice_id", notice.ID).Str("by", session.Email).Msg("notice created")
	return notice, nil
}
