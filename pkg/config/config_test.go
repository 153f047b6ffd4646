package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "development" {
		t.Fatalf("expected App.Env to default to development, got %q", cfg.App.Env)
	}
	if !cfg.App.IsDev() {
		t.Fatal("expected IsDev() for default env")
	}
	if cfg.Retail.Timeout != 10*time.Second {
		t.Fatalf("expected retail timeout 10s, got %v", cfg.Retail.Timeout)
	}
	if cfg.Retail.CallDelay != 500*time.Millisecond {
		t.Fatalf("expected retail call delay 500ms, got %v", cfg.Retail.CallDelay)
	}
	if cfg.Search.MaxCandidates != 6 {
		t.Fatalf("expected max candidates 6, got %d", cfg.Search.MaxCandidates)
	}
	if cfg.Completion.Enabled() || cfg.Answers.Enabled() || cfg.Retail.Enabled() {
		t.Fatal("collaborators should be disabled without API keys")
	}
	if cfg.Redis.Enabled() {
		t.Fatal("redis cache should be disabled without a URL")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SHOPSMART_APP_ENV", "production")
	t.Setenv("SHOPSMART_RETAIL_API_KEY", "rk-123")
	t.Setenv("SHOPSMART_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("SHOPSMART_REDIS_CACHE_TTL", "90s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if !cfg.App.IsProd() {
		t.Fatalf("expected production env, got %q", cfg.App.Env)
	}
	if !cfg.Retail.Enabled() {
		t.Fatal("expected retail collaborator enabled")
	}
	if !cfg.Redis.Enabled() {
		t.Fatal("expected redis cache enabled")
	}
	if cfg.Redis.CacheTTL != 90*time.Second {
		t.Fatalf("expected cache TTL 90s, got %v", cfg.Redis.CacheTTL)
	}
}
