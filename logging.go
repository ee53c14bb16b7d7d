package agenthooks

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LoggingConfig configures diagnostic logging for the hooks.
// Logging is not a contract surface; output is text for operators only.
type LoggingConfig struct {
	// Logger overrides the logger used by the hooks if provided.
	Logger *slog.Logger

	// Handler is used to build a logger if Logger is nil.
	Handler slog.Handler

	// Level is used when creating a default handler if Logger and Handler are nil.
	Level slog.Level

	// LogToolArgs enables logging of tool argument mappings.
	LogToolArgs bool

	// RedactSensitive enables best-effort redaction of sensitive fields
	// when tool arguments are logged.
	RedactSensitive bool
}

// DefaultLoggingConfig returns default logging configuration.
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Level:           slog.LevelInfo,
		RedactSensitive: true,
	}
}

// Silent returns a config that discards all log output.
func (LoggingConfig) Silent() *LoggingConfig {
	return &LoggingConfig{
		Handler: slog.NewTextHandler(io.Discard, nil),
	}
}

// Verbose returns a config with debug-level logging enabled.
func (LoggingConfig) Verbose() *LoggingConfig {
	return &LoggingConfig{
		Level:       slog.LevelDebug,
		LogToolArgs: true,
	}
}

func resolveLogger(cfg LoggingConfig) *slog.Logger {
	if cfg.Logger != nil {
		return cfg.Logger
	}
	if cfg.Handler != nil {
		return slog.New(cfg.Handler)
	}

	level := cfg.Level
	if level == 0 {
		level = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

var sensitiveKeys = map[string]struct{}{
	"api_key":       {},
	"apikey":        {},
	"authorization": {},
	"token":         {},
	"password":      {},
	"secret":        {},
	"access_token":  {},
	"refresh_token": {},
	"client_secret": {},
	"private_key":   {},
	"session_token": {},
	"bearer":        {},
	"x-api-key":     {},
}

func redactSensitiveValue(value any) any {
	data, err := json.Marshal(value)
	if err != nil {
		return value
	}

	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return value
	}

	return redactAny(decoded)
}

func redactAny(value any) any {
	switch v := value.(type) {
	case map[string]any:
		redacted := make(map[string]any, len(v))
		for key, val := range v {
			if isSensitiveKey(key) {
				redacted[key] = "[redacted]"
				continue
			}
			redacted[key] = redactAny(val)
		}
		return redacted
	case []any:
		redacted := make([]any, len(v))
		for i, item := range v {
			redacted[i] = redactAny(item)
		}
		return redacted
	default:
		return value
	}
}

func isSensitiveKey(key string) bool {
	_, ok := sensitiveKeys[strings.ToLower(strings.TrimSpace(key))]
	return ok
}
