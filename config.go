package agenthooks

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig is the environment surface for hook configuration.
type envConfig struct {
	Quota        int    `env:"AGENTHOOKS_QUOTA" envDefault:"10"`
	WindowSecs   int    `env:"AGENTHOOKS_WINDOW_SECS" envDefault:"60"`
	Debug        bool   `env:"AGENTHOOKS_DEBUG" envDefault:"false"`
	OTLPEndpoint string `env:"AGENTHOOKS_OTLP_ENDPOINT"`
	ServiceName  string `env:"AGENTHOOKS_SERVICE_NAME" envDefault:"agenthooks-app"`
}

// ConfigFromEnv builds a Config from environment variables:
//
//	AGENTHOOKS_QUOTA          requests per window (default 10)
//	AGENTHOOKS_WINDOW_SECS    window length in seconds (default 60)
//	AGENTHOOKS_DEBUG          enable debug logging
//	AGENTHOOKS_OTLP_ENDPOINT  enable tracing to this OTLP/HTTP collector
//	AGENTHOOKS_SERVICE_NAME   service name reported in traces
//
// Fields not driven by the environment (Cart, custom Logger) are left to
// the caller to fill in before passing the Config to New.
func ConfigFromEnv() (Config, error) {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		return Config{}, fmt.Errorf("agenthooks: parse environment: %w", err)
	}

	cfg := Config{
		Quota:  ec.Quota,
		Window: time.Duration(ec.WindowSecs) * time.Second,
	}

	if ec.Debug {
		cfg.Logging = LoggingConfig{}.Verbose()
	}

	if ec.OTLPEndpoint != "" {
		tracer, err := NewOTelTracer(OTelConfig{
			Endpoint:    ec.OTLPEndpoint,
			ServiceName: ec.ServiceName,
		})
		if err != nil {
			return Config{}, err
		}
		cfg.Tracer = tracer
	}

	return cfg, nil
}
