package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

// Config holds the client settings, sourced from the environment.
type Config struct {
	// BaseURL is the service endpoint including the API prefix.
	BaseURL string `env:"FPL_API_URL" envDefault:"http://localhost:8000/api/v1"`

	// HTTPTimeout bounds each HTTP exchange; expiry surfaces as unreachable.
	HTTPTimeout time.Duration `env:"FPL_HTTP_TIMEOUT" envDefault:"30s"`

	// CredentialsDB is the SQLite file holding the sealed credential pair.
	CredentialsDB string `env:"FPL_CREDENTIALS_DB" envDefault:"fpl-credentials.db"`

	// SealKeyFile holds the 32-byte sealing key, hex encoded. Created on
	// first use when absent.
	SealKeyFile string `env:"FPL_SEAL_KEY_FILE" envDefault:"fpl-credentials.key"`

	// LogLevel is a zerolog level name.
	LogLevel string `env:"FPL_LOG_LEVEL" envDefault:"info"`
}

// Load parses the configuration from the environment.
func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, errors.Wrap(err, "[config.Load] parse environment")
	}
	return c, nil
}
