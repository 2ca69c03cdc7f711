// Package config loads and validates application configuration from
// environment variables, with optional .env file support for local runs.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// TokenEntry is one static bearer-token credential for the development
// verifier. Production deployments leave AUTH_TOKENS unset and wire a real
// identity provider instead.
type TokenEntry struct {
	Token  string
	UserID string
	Email  string
}

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// MaxBodyBytes caps the size of request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64

	// AuthTokens is the static token table for the development verifier,
	// parsed from AUTH_TOKENS ("token:user-id:email,token:user-id:email").
	// The email part is optional.
	AuthTokens []TokenEntry
}

// Load reads configuration from the environment (after loading a .env file if
// one exists) and returns a Config. Returns an error listing any required
// variables that are not set.
func Load() (Config, error) {
	// A missing .env file is the normal case outside local development.
	_ = godotenv.Load()

	cfg := Config{
		Port:         getEnv("PORT", "8080"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		CORSOrigins:  splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		MaxBodyBytes: 1 << 20,
	}

	if v := os.Getenv("MAX_BODY_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("MAX_BODY_BYTES must be a positive integer, got %q", v)
		}
		cfg.MaxBodyBytes = n
	}

	tokens, err := parseTokens(os.Getenv("AUTH_TOKENS"))
	if err != nil {
		return Config{}, err
	}
	cfg.AuthTokens = tokens

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
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

// parseTokens parses the AUTH_TOKENS value. Each entry is token:user-id or
// token:user-id:email. An empty value yields no entries.
func parseTokens(s string) ([]TokenEntry, error) {
	var out []TokenEntry
	for _, entry := range splitCSV(s) {
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("AUTH_TOKENS entry %q must be token:user-id or token:user-id:email", entry)
		}
		te := TokenEntry{Token: parts[0], UserID: parts[1]}
		if len(parts) == 3 {
			te.Email = parts[2]
		}
		out = append(out, te)
	}
	return out, nil
}
