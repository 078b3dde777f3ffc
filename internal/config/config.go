package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env"
)

// Config is the full application configuration, read from the environment.
// main loads a .env file first, so local overrides work without exporting.
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`
	Env  string `env:"APP_ENV" envDefault:"development"`

	// Base URL of the CRM REST backend, including the /api prefix.
	APIBaseURL string `env:"CRM_API_URL" envDefault:"http://localhost:8000/api"`
	// Per-request timeout for backend calls, in seconds.
	APITimeout int `env:"CRM_API_TIMEOUT" envDefault:"15"`

	// Local preferences store. A bare path opens sqlite; a postgres:// URL or
	// key=value DSN opens postgres.
	DatabaseDSN string `env:"DATABASE_DSN" envDefault:"file:salesdesk.db"`

	SessionSecret string `env:"SESSION_SECRET" envDefault:""`

	ReadTimeout  int `env:"SERVER_READ_TIMEOUT" envDefault:"10"`
	WriteTimeout int `env:"SERVER_WRITE_TIMEOUT" envDefault:"30"`
	IdleTimeout  int `env:"SERVER_IDLE_TIMEOUT" envDefault:"60"`
}

// Load parses configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env config: %w", err)
	}
	return cfg, nil
}

// Dev reports whether the app runs in development mode.
func (c Config) Dev() bool { return c.Env == "development" }

// APIRequestTimeout returns the backend call timeout as a duration.
func (c Config) APIRequestTimeout() time.Duration {
	return time.Duration(c.APITimeout) * time.Second
}
