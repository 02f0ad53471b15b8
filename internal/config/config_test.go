package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("TIMEZONE", "UTC")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, 60, cfg.JWTExpirationMinutes)
	assert.Equal(t, 168, cfg.JWTRefreshExpirationHours)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.Contains(t, cfg.Database.DSN, "@tcp(localhost:3306)/")
}

func TestLoadConfigPostgres(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("JWT_SECRET", "s")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Contains(t, cfg.Database.DSN, "host=db")
	assert.Contains(t, cfg.Database.DSN, "sslmode=")
}

func TestLoadConfigErrors(t *testing.T) {
	tests := map[string]map[string]string{
		"secret required in production": {"APP_ENV": "production", "JWT_SECRET": ""},
		"bad driver":                    {"DB_DRIVER": "sqlite"},
		"bad int":                       {"JWT_EXPIRATION_MINUTES": "soon"},
		"bad zone":                      {"TIMEZONE": "Mars/Olympus"},
		"bad rps":                       {"AUTH_RATE_LIMIT_RPS": "fast"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv("DB_DRIVER", "memory")
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
