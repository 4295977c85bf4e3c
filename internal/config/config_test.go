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

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "data/reclamos.xlsx", cfg.Source.BundledFile)
	assert.Equal(t, 15*time.Second, cfg.Source.FetchTimeout)
	assert.Equal(t, 32, cfg.Cache.Capacity)
	assert.Equal(t, int64(20971520), cfg.Upload.MaxBytes)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("RECLAMOS_SERVER_PORT", "9090")
	t.Setenv("RECLAMOS_LOGGING_LEVEL", "debug")
	t.Setenv("RECLAMOS_SOURCE_REMOTE_URL", "http://example.com/reclamos.xlsx")
	t.Setenv("RECLAMOS_CACHE_CAPACITY", "8")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "http://example.com/reclamos.xlsx", cfg.Source.RemoteURL)
	assert.Equal(t, 8, cfg.Cache.Capacity)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"port out of range", "RECLAMOS_SERVER_PORT", "70000"},
		{"port zero", "RECLAMOS_SERVER_PORT", "0"},
		{"unknown log level", "RECLAMOS_LOGGING_LEVEL", "verbose"},
		{"negative cache capacity", "RECLAMOS_CACHE_CAPACITY", "-1"},
		{"zero upload limit", "RECLAMOS_UPLOAD_MAX_BYTES", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
