// Package config provides application configuration management.
// All values come from environment variables with local-dev fallbacks;
// business logic never reads the process environment directly.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the application configuration.
type Config struct {
	ServerPort   int    `env:"PORT" envDefault:"5002"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"./rentora.db"`

	// Secret used to sign bearer tokens.
	JWTSecret     string        `env:"JWT_SECRET" envDefault:"supersecretkey"`
	TokenLifetime time.Duration `env:"TOKEN_LIFETIME" envDefault:"1h"`

	// Comma-separated list of origins allowed to call the API.
	CORSOrigins string `env:"CORS_ORIGIN" envDefault:"http://localhost:5173,http://localhost:5174,http://localhost:3000"`

	// Base URL of the browser front-end, used for post-OAuth redirects.
	ClientURL string `env:"CLIENT_URL" envDefault:"http://localhost:5173"`

	// Google OAuth credentials. Empty values leave the /auth/google
	// routes returning an error redirect.
	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleCallbackURL  string `env:"GOOGLE_CALLBACK_URL" envDefault:"http://localhost:5002/auth/google/callback"`

	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses environment variables and returns a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// AllowedOrigins splits the configured CORS origins into a slice.
func (c *Config) AllowedOrigins() []string {
	parts := strings.Split(c.CORSOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
