package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("STUDYHUB_JWT_SECRET", "secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, "sqlite", cfg.DatabaseType)
	assert.Equal(t, "studyhub.db", cfg.DatabaseDSN)
	assert.Equal(t, int64(20<<20), cfg.MaxUploadSize)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("STUDYHUB_JWT_SECRET", "secret")
	t.Setenv("STUDYHUB_PORT", "9090")
	t.Setenv("STUDYHUB_ENVIRONMENT", "production")
	t.Setenv("STUDYHUB_DB_DRIVER", "postgres")
	t.Setenv("STUDYHUB_DB_DSN", "host=localhost user=test dbname=studyhub")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "postgres", cfg.DatabaseType)
	assert.True(t, cfg.IsProduction())
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	t.Setenv("STUDYHUB_JWT_SECRET", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_UnknownDriver(t *testing.T) {
	t.Setenv("STUDYHUB_JWT_SECRET", "secret")
	t.Setenv("STUDYHUB_DB_DRIVER", "mongodb")

	_, err := LoadConfig()
	assert.Error(t, err)
}
