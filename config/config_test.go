package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"APP_ENV", "PORT", "OPEN_METEO_BASE_URL", "OPEN_METEO_TIMEOUT", "REDIS_ADDR",
		"REDIS_PASSWORD", "REDIS_DB", "SESSION_TTL", "SESSION_SWEEP_INTERVAL", "BREAKER_MAX_FAILURES",
		"BREAKER_OPEN_TIMEOUT",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ENV_DEV, cfg.Env)
	assert.False(t, cfg.IsProd())
	assert.Equal(t, DEFAULT_PORT, cfg.Port)
	assert.Equal(t, OPEN_METEO_ENDPOINT_BASE_V1, cfg.OpenMeteoBaseURL)
	assert.Equal(t, OPEN_METEO_TIMEOUT, cfg.OpenMeteoTimeout)
	assert.Equal(t, uint32(OPEN_METEO_BREAKER_MAX_FAILURES), cfg.OpenMeteoBreakerFailures)
	assert.Equal(t, REDIS_DB_ADDRESS, cfg.RedisAddress)
	assert.Equal(t, REDIS_DB, cfg.RedisDB)
	assert.Equal(t, SESSION_TTL, cfg.SessionTTL)
	assert.Equal(t, SESSION_SWEEP_INTERVAL, cfg.SessionSweepInterval)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("PORT", "9090")
	t.Setenv("OPEN_METEO_TIMEOUT", "3s")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("BREAKER_MAX_FAILURES", "7")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProd())
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 3*time.Second, cfg.OpenMeteoTimeout)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, uint32(7), cfg.OpenMeteoBreakerFailures)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad duration", "OPEN_METEO_TIMEOUT", "soon"},
		{"negative duration", "SESSION_TTL", "-1h"},
		{"zero sweep interval", "SESSION_SWEEP_INTERVAL", "0s"},
		{"bad int", "REDIS_DB", "zero"},
		{"breaker below one", "BREAKER_MAX_FAILURES", "0"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Setenv(test.key, test.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestGetResourcePath_UsesProjectRoot(t *testing.T) {
	t.Setenv("PROJECT_ROOT", "/srv/dashboard")

	got := GetResourcePath(DAILY_SERIES_RESPONSE_RESOURCE)

	assert.Equal(t, filepath.Join("/srv/dashboard", "resources", "daily_series_response.json"), got)
}
