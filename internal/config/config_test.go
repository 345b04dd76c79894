package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DB_PORT", "")
	t.Setenv("TOKEN_TTL", "")

	cfg := Load()

	require.Equal(t, "mysql", cfg.DBDriver)
	require.Equal(t, "3306", cfg.DBPort)
	require.Equal(t, "political_canvas", cfg.DBName)
	require.Equal(t, 24*time.Hour, cfg.TokenTTL)
	require.Equal(t, "4000", cfg.Port)
}

func TestLoad_PostgresDefaultPort(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_PORT", "")

	cfg := Load()

	require.Equal(t, "5432", cfg.DBPort)
}

func TestLoad_TokenTTL(t *testing.T) {
	t.Setenv("TOKEN_TTL", "90m")
	require.Equal(t, 90*time.Minute, Load().TokenTTL)

	t.Setenv("TOKEN_TTL", "not-a-duration")
	require.Equal(t, 24*time.Hour, Load().TokenTTL)

	t.Setenv("TOKEN_TTL", "-5m")
	require.Equal(t, 24*time.Hour, Load().TokenTTL)
}
