package config

import (
	"fmt"

	env "github.com/caarlos0/env/v11"
)

// ParseEnv decodes RUBYCRON_* variables into a JobConfig. When environ is nil
// the process environment is used; otherwise only the given map is consulted,
// which is how dotenv files are decoded.
func ParseEnv(environ map[string]string) (JobConfig, error) {
	cfg := JobConfig{SMTP: &TransportSettings{}}
	opts := env.Options{Prefix: EnvPrefix, Environment: environ}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return JobConfig{}, fmt.Errorf("parse env config: %w", err)
	}
	if cfg.SMTP.IsZero() {
		cfg.SMTP = nil
	}
	return cfg, nil
}

// ParseObservabilityEnv decodes the RUBYCRON_* observability variables.
func ParseObservabilityEnv(environ map[string]string) (ObservabilityConfig, error) {
	var cfg ObservabilityConfig
	opts := env.Options{Prefix: EnvPrefix, Environment: environ}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return cfg, fmt.Errorf("parse observability config: %w", err)
	}
	cfg.Sanitize()
	return cfg, nil
}
