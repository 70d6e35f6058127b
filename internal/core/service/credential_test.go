package service

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPlainVerifier(t *testing.T) {
	v := PlainVerifier{}
	stored, err := v.Prepare("p1")
	if err != nil || stored != "p1" {
		t.Fatalf("expected credential stored as-is, got %q %v", stored, err)
	}
	if !v.Verify(stored, "p1") {
		t.Fatalf("expected match")
	}
	if v.Verify(stored, "p2") || v.Verify(stored, "") {
		t.Fatalf("expected mismatch")
	}
}

func TestBcryptVerifier(t *testing.T) {
	v := BcryptVerifier{Cost: bcrypt.MinCost}
	stored, err := v.Prepare("p1")
	if err != nil {
		t.Fatalf("Prepare returned error: %v", err)
	}
	if stored == "p1" {
		t.Fatalf("expected credential to be hashed")
	}
	if !v.Verify(stored, "p1") {
		t.Fatalf("expected match")
	}
	if v.Verify(stored, "p2") {
		t.Fatalf("expected mismatch")
	}
	if v.Verify("p1", "p1") {
		t.Fatalf("a plaintext stored value must not verify under bcrypt")
	}
}

func TestNewCredentialVerifier(t *testing.T) {
	for scheme, want := range map[string]string{"": "plain", "plain": "plain", "bcrypt": "bcrypt"} {
		v, err := NewCredentialVerifier(scheme)
		if err != nil {
			t.Fatalf("scheme %q: %v", scheme, err)
		}
		switch v.(type) {
		case PlainVerifier:
			if want != "plain" {
				t.Fatalf("scheme %q: got plain verifier", scheme)
			}
		case BcryptVerifier:
			if want != "bcrypt" {
				t.Fatalf("scheme %q: got bcrypt verifier", scheme)
			}
		}
	}
	if _, err := NewCredentialVerifier("md5"); err == nil {
		t.Fatalf("expected error for unknown scheme")
	}
}
