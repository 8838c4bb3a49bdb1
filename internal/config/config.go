package config

import (
	"github.com/caarlos0/env/v11"

	"campaign-analytics/internal/config/configs"
)

// Config is the environment of both binaries. Each section reads the
// variables of its own prefix; the defaults live on the configs types.
type Config struct {
	// Env names the deployment and is attached to every log line.
	Env string `env:"ENV" envDefault:"prod"`

	// HTTP is the campaign API listener.
	HTTP configs.HTTP `envPrefix:"HTTP_"`

	// Log selects log level and encoding.
	Log configs.Logger `envPrefix:"LOG_"`

	// Psql is the campaign store connection.
	Psql configs.Postgres `envPrefix:"PSQL_"`

	// Fallback configures the snapshot served during store outages.
	Fallback configs.Fallback `envPrefix:"FALLBACK_"`

	// Breaker configures the store circuit breaker.
	Breaker configs.Breaker `envPrefix:"BREAKER_"`

	// Dashboard configures the dashboard view binary.
	Dashboard configs.Dashboard `envPrefix:"DASHBOARD_"`
}

// Load parses the process environment. Unset variables take their
// envDefault; a value that does not parse is an error.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
