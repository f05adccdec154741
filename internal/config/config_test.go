package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AMQP_URL", "")
	t.Setenv("PORT", "8080")
	t.Setenv("SECRET_KEY", "secret")
	t.Setenv("TOKEN_TTL", "24h")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("METRICS_ENABLED", "true")
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("DEBUG_ROUTES", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "secret", cfg.SecretKey)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, "", cfg.AMQPURL)
	assert.True(t, cfg.MetricsEnabled)
	assert.False(t, cfg.DebugRoutes)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DSN", "postgres://x")
	t.Setenv("SECRET_KEY", "abc")
	t.Setenv("TOKEN_TTL", "15m")
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("DEBUG_ROUTES", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "postgres://x", cfg.DatabaseDSN)
	assert.Equal(t, "abc", cfg.SecretKey)
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.False(t, cfg.MetricsEnabled)
	assert.True(t, cfg.DebugRoutes)
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad ttl", "TOKEN_TTL", "soon"},
		{"bad cost", "BCRYPT_COST", "twelve"},
		{"cost out of range", "BCRYPT_COST", "64"},
		{"empty secret", "SECRET_KEY", ""},
		{"bad metrics flag", "METRICS_ENABLED", "maybe"},
		{"bad debug flag", "DEBUG_ROUTES", "sometimes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SECRET_KEY", "secret")
			t.Setenv("TOKEN_TTL", "1h")
			t.Setenv("BCRYPT_COST", "12")
			t.Setenv("METRICS_ENABLED", "true")
			t.Setenv("DEBUG_ROUTES", "false")
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			require.Error(t, err)
		})
	}
}
