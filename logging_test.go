package agenthooks

import (
	"bytes"
	"log/slog"
	"reflect"
	"testing"
)

func TestDefaultLoggingConfig(t *testing.T) {
	cfg := DefaultLoggingConfig()

	if cfg.Level != slog.LevelInfo {
		t.Errorf("expected Level to be Info, got %v", cfg.Level)
	}
	if !cfg.RedactSensitive {
		t.Error("expected RedactSensitive to be true")
	}
	if cfg.LogToolArgs {
		t.Error("expected LogToolArgs to be false")
	}
}

func TestSilentLoggingConfig(t *testing.T) {
	cfg := LoggingConfig{}.Silent()

	if cfg == nil {
		t.Fatal("expected Silent() to return a config")
	}
	if cfg.Handler == nil {
		t.Error("expected Handler to be set")
	}
}

func TestVerboseLoggingConfig(t *testing.T) {
	cfg := LoggingConfig{}.Verbose()

	if cfg == nil {
		t.Fatal("expected Verbose() to return a config")
	}
	if cfg.Level != slog.LevelDebug {
		t.Errorf("expected Level to be Debug, got %v", cfg.Level)
	}
	if !cfg.LogToolArgs {
		t.Error("expected LogToolArgs to be true")
	}
}

func TestResolveLogger_WithProvidedLogger(t *testing.T) {
	var buf bytes.Buffer
	customLogger := slog.New(slog.NewTextHandler(&buf, nil))

	logger := resolveLogger(LoggingConfig{Logger: customLogger})

	if logger != customLogger {
		t.Error("expected the provided logger to be used as-is")
	}
}

func TestResolveLogger_WithHandler(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, nil)

	logger := resolveLogger(LoggingConfig{Handler: handler})

	logger.Info("hello")
	if buf.Len() == 0 {
		t.Error("expected output through the provided handler")
	}
}

func TestRedactSensitiveValue(t *testing.T) {
	args := map[string]any{
		"customer_id": "42",
		"api_key":     "sk-secret",
		"nested": map[string]any{
			"Token": "abc",
			"value": 5,
		},
	}

	redacted := redactSensitiveValue(args).(map[string]any)

	if redacted["api_key"] != "[redacted]" {
		t.Errorf("expected api_key redacted, got %v", redacted["api_key"])
	}
	nested := redacted["nested"].(map[string]any)
	if nested["Token"] != "[redacted]" {
		t.Errorf("expected Token redacted, got %v", nested["Token"])
	}
	if redacted["customer_id"] != "42" {
		t.Errorf("expected customer_id untouched, got %v", redacted["customer_id"])
	}

	// Original mapping stays intact.
	if args["api_key"] != "sk-secret" {
		t.Error("expected redaction to copy, not mutate")
	}
}

func TestRedactSensitiveValue_Unmarshalable(t *testing.T) {
	value := map[string]any{"ch": make(chan int)}

	got := redactSensitiveValue(value)

	if !reflect.DeepEqual(got, value) {
		t.Error("expected unmarshalable values returned unchanged")
	}
}
