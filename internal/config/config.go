// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Storage backends selectable with STORAGE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// minSecretLen is the shortest SESSION_SECRET accepted.
const minSecretLen = 16

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// Backend selects where trips and vehicles are kept: memory, file,
	// sqlite or postgres. Defaults to "file".
	Backend string

	// DataDir is the directory of the file backend. Defaults to "./data".
	DataDir string

	// SQLitePath is the database file of the sqlite backend.
	SQLitePath string

	// DatabaseURL is the Postgres connection string. Required for the postgres backend.
	DatabaseURL string

	// AuthUsername is the single login name. Required.
	AuthUsername string

	// AuthPasswordHash is a bcrypt hash from AUTH_PASSWORD_HASH.
	// AuthPassword is the plain AUTH_PASSWORD, used only when no hash is set.
	AuthPasswordHash string
	AuthPassword     string

	// SessionSecret signs session tokens. Required, at least 16 bytes.
	SessionSecret []byte

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64
}

// Load reads configuration from environment variables and returns a Config.
// A .env file in the working directory, if present, is loaded first; it never
// overrides variables already set.
// Returns an error listing any required variables that are not set and any
// values that are invalid.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		CORSOrigins:      splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		Backend:          strings.ToLower(getEnv("STORAGE_BACKEND", BackendFile)),
		DataDir:          getEnv("DATA_DIR", "./data"),
		SQLitePath:       getEnv("SQLITE_DB_PATH", "./data/triplog.db"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		AuthUsername:     os.Getenv("AUTH_USERNAME"),
		AuthPasswordHash: os.Getenv("AUTH_PASSWORD_HASH"),
		AuthPassword:     os.Getenv("AUTH_PASSWORD"),
		SessionSecret:    []byte(os.Getenv("SESSION_SECRET")),
	}

	var missing, invalid []string

	switch cfg.Backend {
	case BackendMemory, BackendFile, BackendSQLite:
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	default:
		invalid = append(invalid, fmt.Sprintf("STORAGE_BACKEND %q (want memory, file, sqlite or postgres)", cfg.Backend))
	}

	if cfg.AuthUsername == "" {
		missing = append(missing, "AUTH_USERNAME")
	}
	if cfg.AuthPasswordHash == "" && cfg.AuthPassword == "" {
		missing = append(missing, "AUTH_PASSWORD_HASH or AUTH_PASSWORD")
	}
	switch {
	case len(cfg.SessionSecret) == 0:
		missing = append(missing, "SESSION_SECRET")
	case len(cfg.SessionSecret) < minSecretLen:
		invalid = append(invalid, fmt.Sprintf("SESSION_SECRET must be at least %d bytes", minSecretLen))
	}

	n, err := strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64)
	if err != nil || n <= 0 {
		invalid = append(invalid, "MAX_BODY_BYTES must be a positive integer")
	}
	cfg.MaxBodyBytes = n

	var errs []error
	if len(missing) > 0 {
		errs = append(errs, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", ")))
	}
	if len(invalid) > 0 {
		errs = append(errs, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, "; ")))
	}
	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
