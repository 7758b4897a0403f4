package config

import (
	"errors"
	"testing"
	"time"
)

func TestGetIntBool(t *testing.T) {
	t.Setenv("X_INT", "42")
	if v := getInt("X_INT", 1); v != 42 {
		t.Fatalf("want 42, got %d", v)
	}

	t.Setenv("X_BOOL_T", "true")
	t.Setenv("X_BOOL_F", "false")
	if !getBool("X_BOOL_T", false) {
		t.Fatalf("want true")
	}
	if getBool("X_BOOL_F", true) {
		t.Fatalf("want false")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg := FromEnv()
	if cfg.RateLimit.Window != 15*time.Minute || cfg.RateLimit.Max != 100 {
		t.Fatalf("unexpected api window: %v/%d", cfg.RateLimit.Window, cfg.RateLimit.Max)
	}
	if cfg.RateLimit.ContactWindow != time.Hour {
		t.Fatalf("unexpected contact window: %v", cfg.RateLimit.ContactWindow)
	}
	if cfg.DB.Driver != "mongo" {
		t.Fatalf("default driver should be mongo, got %q", cfg.DB.Driver)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestFromEnv_RateLimitOverrides(t *testing.T) {
	t.Setenv("RATE_LIMIT_WINDOW_MS", "60000")
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "7")
	t.Setenv("PORT", "8081")
	cfg := FromEnv()
	if cfg.RateLimit.Window != time.Minute || cfg.RateLimit.Max != 7 {
		t.Fatalf("unexpected: %v/%d", cfg.RateLimit.Window, cfg.RateLimit.Max)
	}
	if cfg.Server.Addr != ":8081" {
		t.Fatalf("unexpected addr %q", cfg.Server.Addr)
	}
}

func TestValidate_RejectsBadDriverAndMissingURL(t *testing.T) {
	cfg := FromEnv()
	cfg.DB.Driver = "oracle"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected driver error")
	}
	cfg.DB.Driver = "postgres"
	cfg.DB.URL = ""
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected missing url error")
	}
}

func TestStore_UpdateValidated(t *testing.T) {
	store := NewStore(FromEnv())
	var seen int
	unwatch := store.Watch(func(newCfg *Config, changed map[string]bool) { seen = newCfg.RateLimit.Max })
	defer unwatch()
	store.AddValidator(func(newCfg *Config, changed map[string]bool) error {
		if newCfg.RateLimit.Max > 1000 {
			return errors.New("too high")
		}
		return nil
	})

	next := cloneConfig(store.Get())
	next.RateLimit.Max = 50
	if !store.UpdateValidated(next, map[string]bool{"ratelimit.max": true}) {
		t.Fatalf("expected update to be accepted")
	}
	if seen != 50 || store.Get().RateLimit.Max != 50 {
		t.Fatalf("watcher/store not updated: seen=%d", seen)
	}

	bad := cloneConfig(store.Get())
	bad.RateLimit.Max = 5000
	if store.UpdateValidated(bad, nil) {
		t.Fatalf("expected validator veto")
	}
	zero := cloneConfig(store.Get())
	zero.RateLimit.Max = 0
	if store.UpdateValidated(zero, nil) {
		t.Fatalf("expected struct validation veto")
	}
	if store.Get().RateLimit.Max != 50 {
		t.Fatalf("rejected update must not be applied")
	}
}
