package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/triplog/internal/config"
)

// setRequired sets the variables Load needs for the default file backend and
// clears the optional ones so the host environment cannot leak in.
func setRequired(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir()) // no stray .env
	t.Setenv("AUTH_USERNAME", "vsat")
	t.Setenv("AUTH_PASSWORD_HASH", "")
	t.Setenv("AUTH_PASSWORD", "0558")
	t.Setenv("SESSION_SECRET", "0123456789abcdef")
	for _, k := range []string{"PORT", "LOG_LEVEL", "CORS_ORIGINS", "STORAGE_BACKEND", "DATA_DIR", "SQLITE_DB_PATH", "DATABASE_URL", "MAX_BODY_BYTES"} {
		t.Setenv(k, "")
	}
}

// TestLoad_defaults verifies that optional env vars fall back to their defaults
// when only the required variables are provided.
func TestLoad_defaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	require.Equal(t, config.BackendFile, cfg.Backend)
	require.Equal(t, "./data", cfg.DataDir)
	require.Equal(t, "./data/triplog.db", cfg.SQLitePath)
	require.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
	require.Equal(t, "vsat", cfg.AuthUsername)
	require.Equal(t, "0558", cfg.AuthPassword)
	require.Equal(t, []byte("0123456789abcdef"), cfg.SessionSecret)
}

// TestLoad_overrides verifies that all values can be overridden via env vars.
func TestLoad_overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("STORAGE_BACKEND", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://user:pass@db:5432/triplog")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("MAX_BODY_BYTES", "2048")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, config.BackendPostgres, cfg.Backend)
	require.Equal(t, "postgres://user:pass@db:5432/triplog", cfg.DatabaseURL)
	require.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
	require.Equal(t, int64(2048), cfg.MaxBodyBytes)
}

// TestLoad_missingRequired verifies that every missing required variable is
// named in a single error.
func TestLoad_missingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("AUTH_USERNAME", "")
	t.Setenv("AUTH_PASSWORD", "")
	t.Setenv("SESSION_SECRET", "")

	_, err := config.Load()

	require.Error(t, err)
	require.ErrorContains(t, err, "AUTH_USERNAME")
	require.ErrorContains(t, err, "AUTH_PASSWORD_HASH or AUTH_PASSWORD")
	require.ErrorContains(t, err, "SESSION_SECRET")
}

func TestLoad_postgresNeedsDatabaseURL(t *testing.T) {
	setRequired(t)
	t.Setenv("STORAGE_BACKEND", "postgres")

	_, err := config.Load()

	require.ErrorContains(t, err, "DATABASE_URL")
}

func TestLoad_invalidValues(t *testing.T) {
	setRequired(t)
	t.Setenv("STORAGE_BACKEND", "mongo")
	t.Setenv("SESSION_SECRET", "short")
	t.Setenv("MAX_BODY_BYTES", "-1")

	_, err := config.Load()

	require.ErrorContains(t, err, "STORAGE_BACKEND")
	require.ErrorContains(t, err, "SESSION_SECRET must be at least 16 bytes")
	require.ErrorContains(t, err, "MAX_BODY_BYTES")
}

// TestLoad_dotEnv verifies that a .env file fills unset variables but never
// overrides the environment.
func TestLoad_dotEnv(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "7070")
	require.NoError(t, os.Unsetenv("LOG_LEVEL")) // set-but-empty would count as set
	require.NoError(t, os.WriteFile(".env", []byte("PORT=6060\nLOG_LEVEL=warn\n"), 0o600))

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "7070", cfg.Port)
	require.Equal(t, "warn", cfg.LogLevel)
}
