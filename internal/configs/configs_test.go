package configs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Antriksh29071989/scrumpoker/internal/configs"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENVIRONMENT", "PORT", "ALLOWED_ORIGINS",
		"AUTH_BASE_URL", "AUTH_JWT_SECRET", "ALLOW_LEGACY_IDENTITY",
		"DATABASE_URL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := configs.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.Port)
	assert.Empty(t, cfg.AllowedOrigins)
	assert.True(t, cfg.AllowLegacyIdentity)
	assert.NotEmpty(t, cfg.DatabaseDSN)
}

func TestLoadProductionRequirements(t *testing.T) {
	t.Run("requires an auth strategy", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ENVIRONMENT", "production")
		t.Setenv("DATABASE_URL", "postgres://example")

		_, err := configs.Load()
		assert.Error(t, err)
	})

	t.Run("requires a database url", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ENVIRONMENT", "production")
		t.Setenv("AUTH_JWT_SECRET", "secret")

		_, err := configs.Load()
		assert.Error(t, err)
	})

	t.Run("legacy identity defaults off outside development", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ENVIRONMENT", "production")
		t.Setenv("AUTH_JWT_SECRET", "secret")
		t.Setenv("DATABASE_URL", "postgres://example")

		cfg, err := configs.Load()
		require.NoError(t, err)
		assert.False(t, cfg.AllowLegacyIdentity)
	})
}

func TestLoadParsing(t *testing.T) {
	t.Run("origins are split and trimmed", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ALLOWED_ORIGINS", " https://a.example , https://b.example ,")

		cfg, err := configs.Load()
		require.NoError(t, err)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	})

	t.Run("auth base url loses its trailing slash", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("AUTH_BASE_URL", "https://auth.example/")

		cfg, err := configs.Load()
		require.NoError(t, err)
		assert.Equal(t, "https://auth.example", cfg.AuthBaseURL)
	})

	t.Run("rejects a privileged port", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PORT", "80")

		_, err := configs.Load()
		assert.Error(t, err)
	})

	t.Run("rejects a non-numeric port", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PORT", "eighty")

		_, err := configs.Load()
		assert.Error(t, err)
	})

	t.Run("rejects a malformed legacy flag", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ALLOW_LEGACY_IDENTITY", "maybe")

		_, err := configs.Load()
		assert.Error(t, err)
	})
}
