package service

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/quyyeunga20-debug/merryweather-mw-nguyengocquyy.io/internal/core/ports"
)

// Credential schemes accepted by NewCredentialVerifier.
const (
	SchemePlain  = "plain"
	SchemeBcrypt = "bcrypt"
)

// PlainVerifier stores credentials as submitted and compares them exactly.
type PlainVerifier struct{}

func (PlainVerifier) Prepare(credential string) (string, error) { return credential, nil }

func (PlainVerifier) Verify(stored, presented string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) == 1
}

// BcryptVerifier stores bcrypt hashes.
type BcryptVerifier struct {
	Cost int
}

func (v BcryptVerifier) Prepare(credential string) (string, error) {
	cost := v.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(credential), cost)
	if err != nil {
		return "", fmt.Errorf("hash credential: %w", err)
	}
	return string(hash), nil
}

func (BcryptVerifier) Verify(stored, presented string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(presented)) == nil
}

// NewCredentialVerifier returns the verifier for scheme.
func NewCredentialVerifier(scheme string) (ports.CredentialVerifier, error) {
	switch scheme {
	case "", SchemePlain:
		return PlainVerifier{}, nil
	case SchemeBcrypt:
		return BcryptVerifier{}, nil
	default:
		return nil, fmt.Errorf("unknown credential scheme %q", scheme)
	}
}
