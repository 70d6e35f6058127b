package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/domain"
)

// sessionClaims carries the session token as the JWT ID. The role is
// informational; authorization always re-reads the server-side session.
type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues HS256 bearer tokens for the JSON API.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (t *TokenService) Issue(s *domain.Session) (string, error) {
	now := t.now()
	claims := sessionClaims{
		Role: string(s.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.Token,
			Subject:   s.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse validates raw and returns the session token it carries. Any
// validation failure yields domain.ErrUnauthenticated.
func (t *TokenService) Parse(raw string) (string, error) {
	claims := &sessionClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !tkn.Valid || claims.ID == "" {
		return "", domain.ErrUnauthenticated
	}
	return claims.ID, nil
}
