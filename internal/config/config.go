// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds every runtime knob. All values come from RESIDENCE_* prefixed
// environment variables; a local .env file is loaded first in development.
type Config struct {
	APIHost         string        `envconfig:"API_HOST" default:"0.0.0.0:8080"`
	DebugHost       string        `envconfig:"DEBUG_HOST" default:"0.0.0.0:4000"`
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"5s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"10s"`
	IdleTimeout     time.Duration `envconfig:"IDLE_TIMEOUT" default:"120s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"20s"`

	UpstreamBaseURL string        `envconfig:"UPSTREAM_BASE_URL" required:"true"`
	UpstreamToken   string        `envconfig:"UPSTREAM_TOKEN"`
	UpstreamTimeout time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"10s"`

	RefreshInterval time.Duration `envconfig:"REFRESH_INTERVAL" default:"30s"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	OtelEndpoint    string  `envconfig:"OTEL_ENDPOINT"`
	OtelProbability float64 `envconfig:"OTEL_PROBABILITY" default:"0.05"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("RESIDENCE", &cfg); err != nil {
		return Config{}, fmt.Errorf("processing environment config: %w", err)
	}
	return cfg, nil
}
