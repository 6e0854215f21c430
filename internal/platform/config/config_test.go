package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/hrcomp")
	t.Setenv("BONUS_WORKERS", "")
	cfg := Load()
	if cfg.Addr != ":8080" {
		t.Fatalf("expected default addr, got %s", cfg.Addr)
	}
	if cfg.ProRataPolicy != "hire_month_inclusive" {
		t.Fatalf("expected default pro-rata policy, got %s", cfg.ProRataPolicy)
	}
	if cfg.BonusWorkers != 8 {
		t.Fatalf("expected 8 workers, got %d", cfg.BonusWorkers)
	}
	if cfg.CorporateCacheTTL != time.Minute {
		t.Fatalf("expected 1m cache ttl, got %v", cfg.CorporateCacheTTL)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/hrcomp")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("BONUS_SUMMARY_INTERVAL", "6h")
	t.Setenv("BONUS_WORKERS", "not-a-number")
	cfg := Load()
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins: %v", cfg.CORSAllowedOrigins)
	}
	if cfg.BonusSummaryInterval != 6*time.Hour {
		t.Fatalf("expected 6h interval, got %v", cfg.BonusSummaryInterval)
	}
	if cfg.BonusWorkers != 8 {
		t.Fatalf("expected fallback workers, got %d", cfg.BonusWorkers)
	}
}

func TestValidate(t *testing.T) {
	base := Config{DatabaseURL: "postgres://x", RateLimitPerMinute: 60, BonusWorkers: 4, CorporateCacheSize: 16}
	if err := base.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	missingDB := base
	missingDB.DatabaseURL = ""
	if err := missingDB.Validate(); err == nil {
		t.Fatal("expected error for missing database url")
	}

	prod := base
	prod.Environment = "production"
	if err := prod.Validate(); err == nil {
		t.Fatal("expected error for missing jwt secret in production")
	}

	noWorkers := base
	noWorkers.BonusWorkers = 0
	if err := noWorkers.Validate(); err == nil {
		t.Fatal("expected error for zero workers")
	}
}
