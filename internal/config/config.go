// Package config handles configuration loading for the daemon: an optional
// YAML file plus RUNTIMEPLANE_* environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values for the daemon.
type Config struct {
	// HTTP server port for the control-plane API
	HTTPPort int

	// Default ports the service status probes target
	OllamaPort  int
	LocalAIPort int

	// Docker binary used for stats snapshots
	DockerBin string

	// Timeout applied to version probes and HTTP status probes
	ProbeTimeout time.Duration

	// Settling delay between the stop and start phases of a restart
	RestartDelay time.Duration

	// Per-client rate limit for the HTTP API (requests/second; 0 = unlimited)
	RateLimit      float64
	RateLimitBurst int

	// OTLP collector endpoint for traces (empty disables tracing export)
	OTELEndpoint string
}

// Load reads configuration from the given file (optional) and from
// RUNTIMEPLANE_* environment variables, falling back to defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("RUNTIMEPLANE")
	v.AutomaticEnv()

	v.SetDefault("port", 7677)
	v.SetDefault("ollama_port", 11434)
	v.SetDefault("localai_port", 8080)
	v.SetDefault("docker_bin", "docker")
	v.SetDefault("probe_timeout", "5s")
	v.SetDefault("restart_delay", "1s")
	v.SetDefault("rate_limit", 0.0)
	v.SetDefault("rate_limit_burst", 20)
	v.SetDefault("otel_endpoint", "")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	probeTimeout, err := time.ParseDuration(v.GetString("probe_timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid probe_timeout: %w", err)
	}
	restartDelay, err := time.ParseDuration(v.GetString("restart_delay"))
	if err != nil {
		return nil, fmt.Errorf("invalid restart_delay: %w", err)
	}

	cfg := &Config{
		HTTPPort:       v.GetInt("port"),
		OllamaPort:     v.GetInt("ollama_port"),
		LocalAIPort:    v.GetInt("localai_port"),
		DockerBin:      v.GetString("docker_bin"),
		ProbeTimeout:   probeTimeout,
		RestartDelay:   restartDelay,
		RateLimit:      v.GetFloat64("rate_limit"),
		RateLimitBurst: v.GetInt("rate_limit_burst"),
		OTELEndpoint:   v.GetString("otel_endpoint"),
	}

	if cfg.HTTPPort <= 0 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid port %d", cfg.HTTPPort)
	}

	return cfg, nil
}
