package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Ensure ambient values don't leak into the defaults check
	for _, key := range []string{"PORT", "APP_ENV", "TOKEN_LIFETIME", "CORS_ORIGIN"} {
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ServerPort != 5002 {
		t.Errorf("ServerPort = %d, want 5002", cfg.ServerPort)
	}
	if cfg.TokenLifetime != time.Hour {
		t.Errorf("TokenLifetime = %v, want 1h", cfg.TokenLifetime)
	}
	if cfg.IsProduction() {
		t.Error("default AppEnv should not be production")
	}
	if got := len(cfg.AllowedOrigins()); got != 3 {
		t.Errorf("default AllowedOrigins has %d entries, want 3", got)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("TOKEN_LIFETIME", "30m")
	t.Setenv("CORS_ORIGIN", " https://a.example , https://b.example ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ServerPort != 9090 {
		t.Errorf("ServerPort = %d, want 9090", cfg.ServerPort)
	}
	if !cfg.IsProduction() {
		t.Error("IsProduction() = false with APP_ENV=production")
	}
	if cfg.TokenLifetime != 30*time.Minute {
		t.Errorf("TokenLifetime = %v, want 30m", cfg.TokenLifetime)
	}

	origins := cfg.AllowedOrigins()
	if len(origins) != 2 || origins[0] != "https://a.example" || origins[1] != "https://b.example" {
		t.Errorf("AllowedOrigins = %v, want trimmed two-entry list", origins)
	}
}
