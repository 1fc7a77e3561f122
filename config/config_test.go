package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "http://localhost:8080", cfg.BackendURL)
	assert.Equal(t, 2*time.Minute, cfg.CeremonyTimeout)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PASSGATE_BACKEND_URL", "http://backend.internal:8443")
	t.Setenv("PASSGATE_CEREMONY_TIMEOUT", "45s")
	t.Setenv("PASSGATE_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://backend.internal:8443", cfg.BackendURL)
	assert.Equal(t, 45*time.Second, cfg.CeremonyTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadIgnoresUnparsableDuration(t *testing.T) {
	t.Setenv("PASSGATE_CEREMONY_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, cfg.CeremonyTimeout)
}
