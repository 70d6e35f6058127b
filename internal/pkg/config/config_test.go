package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if cfg.Port != "3000" {
		t.Errorf("expected port 3000, got %q", cfg.Port)
	}
	if cfg.Mongo.Database != "merryweather" {
		t.Errorf("unexpected database %q", cfg.Mongo.Database)
	}
	if cfg.Session.Store != "memory" || cfg.Session.TTL != 24*time.Hour {
		t.Errorf("unexpected session config: %+v", cfg.Session)
	}
	if cfg.Seed.Threshold != 2 || !cfg.Seed.Enabled {
		t.Errorf("unexpected seed config: %+v", cfg.Seed)
	}
	if cfg.CredentialScheme != "plain" {
		t.Errorf("expected plain credentials by default, got %q", cfg.CredentialScheme)
	}
	if !cfg.IsDevelopment() {
		t.Error("expected development env by default")
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":           "8080",
		"ADMIN_EMAIL":    "a@x.com",
		"ADMIN_PASS":     "p1",
		"SESSION_STORE":  "redis",
		"SESSION_TTL":    "90m",
		"SEED_THRESHOLD": "5",
		"FAIL_FAST":      "true",
	}))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if cfg.Port != "8080" || cfg.Admin.Email != "a@x.com" || cfg.Admin.Password != "p1" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Session.Store != "redis" || cfg.Session.TTL != 90*time.Minute {
		t.Errorf("unexpected session config: %+v", cfg.Session)
	}
	if cfg.Seed.Threshold != 5 || !cfg.FailFast {
		t.Errorf("unexpected seed/failfast: %+v %v", cfg.Seed, cfg.FailFast)
	}
}

func TestLoadFrom_RejectsUnknownBackends(t *testing.T) {
	if _, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"SESSION_STORE": "memcached",
	})); err == nil {
		t.Fatal("expected error for unknown session store")
	}
	if _, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"RECORD_STORE": "postgres",
	})); err == nil {
		t.Fatal("expected error for unknown record store")
	}
}
