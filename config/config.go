// Package config loads service settings from environment variables,
// with optional .env support for local development.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// ListenAddr is the local API listen address.
	ListenAddr string
	// BackendURL is the base URL of the ledger backend collaborator.
	BackendURL string
	// AuthenticatorURL is the base URL of the signer bridge.
	AuthenticatorURL string
	// RedisURL backs the session store and the event stream.
	RedisURL string
	// CeremonyTimeout bounds how long a transfer waits for the user to
	// complete the authenticator ceremony.
	CeremonyTimeout time.Duration
	LogLevel        string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ListenAddr:       getEnv("PASSGATE_LISTEN_ADDR", ":9000"),
		BackendURL:       getEnv("PASSGATE_BACKEND_URL", "http://localhost:8080"),
		AuthenticatorURL: getEnv("PASSGATE_AUTHENTICATOR_URL", "http://localhost:7000"),
		RedisURL:         getEnv("PASSGATE_REDIS_URL", "redis://localhost:6379/0"),
		CeremonyTimeout:  getEnvDuration("PASSGATE_CEREMONY_TIMEOUT", 2*time.Minute),
		LogLevel:         getEnv("PASSGATE_LOG_LEVEL", "info"),
	}

	if cfg.BackendURL == "" {
		return nil, fmt.Errorf("PASSGATE_BACKEND_URL must not be empty")
	}
	if cfg.CeremonyTimeout <= 0 {
		return nil, fmt.Errorf("PASSGATE_CEREMONY_TIMEOUT must be positive")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
