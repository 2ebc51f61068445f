package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"PGSQL_URL", "PORT", "IS_PRODUCTION", "DB_MAX_CONNS", "MIGRATIONS_PATH", "JWT_SECRET",
		"RATE_LIMIT", "CORS_ALLOWED_ORIGINS", "STRICT_PERIOD_CLOSE", "POSTHOG_API_KEY",
	} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.IsProduction)
	assert.False(t, cfg.StrictPeriodClose)
	assert.Equal(t, defaultJWTSecret, cfg.JWTSecret)
	assert.Empty(t, cfg.PosthogAPIKey)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PGSQL_URL", "postgres://ledger@localhost/ledger")
	t.Setenv("PORT", "9090")
	t.Setenv("IS_PRODUCTION", "true")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("MIGRATIONS_PATH", "file:///srv/migrations")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("RATE_LIMIT", "10-S")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("STRICT_PERIOD_CLOSE", "true")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "postgres://ledger@localhost/ledger", cfg.DatabaseURL)
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsProduction)
	assert.Equal(t, int32(25), cfg.DBMaxConns)
	assert.Equal(t, "file:///srv/migrations", cfg.MigrationsPath)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, "10-S", cfg.RateLimit)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.StrictPeriodClose)
}
