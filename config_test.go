package agenthooks

import (
	"testing"
	"time"
)

func TestConfigFromEnv_Defaults(t *testing.T) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Quota != 10 {
		t.Errorf("expected default quota 10, got %d", cfg.Quota)
	}
	if cfg.Window != 60*time.Second {
		t.Errorf("expected default window 60s, got %v", cfg.Window)
	}
	if cfg.Logging != nil {
		t.Error("expected no logging override by default")
	}
	if cfg.Tracer != nil {
		t.Error("expected tracing disabled by default")
	}
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("AGENTHOOKS_QUOTA", "5")
	t.Setenv("AGENTHOOKS_WINDOW_SECS", "30")
	t.Setenv("AGENTHOOKS_DEBUG", "true")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Quota != 5 {
		t.Errorf("expected quota 5, got %d", cfg.Quota)
	}
	if cfg.Window != 30*time.Second {
		t.Errorf("expected window 30s, got %v", cfg.Window)
	}
	if cfg.Logging == nil || !cfg.Logging.LogToolArgs {
		t.Error("expected verbose logging when debug is enabled")
	}
}

func TestConfigFromEnv_BadQuota(t *testing.T) {
	t.Setenv("AGENTHOOKS_QUOTA", "not-a-number")

	if _, err := ConfigFromEnv(); err == nil {
		t.Error("expected an error for an unparsable quota")
	}
}
