package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.DatabaseURL != "sqlite://gitwrite.db" {
		t.Errorf("unexpected default database url %q", cfg.DatabaseURL)
	}
	if cfg.ReconcileInterval != 6*time.Hour {
		t.Errorf("unexpected default reconcile interval %s", cfg.ReconcileInterval)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("RATE_LIMIT_BURST", "25")
	t.Setenv("RECONCILE_INTERVAL", "30m")
	t.Setenv("RATE_LIMIT_RPS", "not-a-number")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("expected port override, got %q", cfg.Port)
	}
	if cfg.RateLimitBurst != 25 {
		t.Errorf("expected burst override, got %d", cfg.RateLimitBurst)
	}
	if cfg.ReconcileInterval != 30*time.Minute {
		t.Errorf("expected interval override, got %s", cfg.ReconcileInterval)
	}
	// Unparseable values fall back to the default.
	if cfg.RateLimitRPS != 5 {
		t.Errorf("expected fallback rps 5, got %v", cfg.RateLimitRPS)
	}
}
