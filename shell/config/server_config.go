package config

import (
	"os"
	"time"
)

const (
	envListenAddr    = "CIRCULATION_LISTEN_ADDR"
	envSessionSecret = "CIRCULATION_SESSION_SECRET"
	envSessionTTL    = "CIRCULATION_SESSION_TTL"
	envDBAdapter     = "CIRCULATION_DB_ADAPTER"

	defaultListenAddr    = ":8080"
	defaultSessionSecret = "dev-only-secret-change-me"
	defaultSessionTTL    = 24 * time.Hour

	// AdapterPGX selects the pgxpool-backed store adapter.
	AdapterPGX = "pgx"
	// AdapterSQLDB selects the database/sql-backed store adapter.
	AdapterSQLDB = "sqldb"
	// AdapterSQLX selects the sqlx-backed store adapter.
	AdapterSQLX = "sqlx"
)

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	ListenAddr    string
	SessionSecret []byte
	SessionTTL    time.Duration
	DBAdapter     string
}

// ServerConfigFromEnv assembles the server settings from the environment,
// falling back to development defaults.
func ServerConfigFromEnv() ServerConfig {
	cfg := ServerConfig{
		ListenAddr:    defaultListenAddr,
		SessionSecret: []byte(defaultSessionSecret),
		SessionTTL:    defaultSessionTTL,
		DBAdapter:     AdapterPGX,
	}

	if addr := os.Getenv(envListenAddr); addr != "" {
		cfg.ListenAddr = addr
	}

	if secret := os.Getenv(envSessionSecret); secret != "" {
		cfg.SessionSecret = []byte(secret)
	}

	if ttl := os.Getenv(envSessionTTL); ttl != "" {
		if parsed, err := time.ParseDuration(ttl); err == nil && parsed > 0 {
			cfg.SessionTTL = parsed
		}
	}

	if adapter := os.Getenv(envDBAdapter); adapter != "" {
		cfg.DBAdapter = adapter
	}

	return cfg
}
