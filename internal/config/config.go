// Package config provides centralized configuration for the planner and the
// catalog server. Values come from environment variables (optionally seeded
// from a .env file by the binaries) with defaults, and are validated on
// startup so misconfiguration fails fast.
package config

import (
	"strconv"
	"time"
)

// Catalog source kinds.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Catalog  CatalogConfig
	Database DatabaseConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout bounds graceful shutdown, including in-flight loads (default: 15s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"15s"`

	// RequestTimeout is the middleware timeout for requests (default: 30s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`
}

// CatalogConfig controls where the catalog comes from and how loads behave.
type CatalogConfig struct {
	// Source is "csv" or "postgres" (default: csv)
	Source string `env:"CATALOG_SOURCE" default:"csv"`

	// Path is the CSV file loaded at startup; empty means start with an
	// empty catalog (server) or prompt for a file (planner).
	Path string `env:"CATALOG_PATH"`

	// MaxFileSize caps a CSV catalog in bytes (default: 10MB)
	MaxFileSize int64 `env:"CATALOG_MAX_FILE_SIZE" default:"10485760"`

	// MaxConcurrentLoads bounds parallel loads (default: 2)
	MaxConcurrentLoads int `env:"CATALOG_MAX_CONCURRENT_LOADS" default:"2"`

	// LoadWait is how long a load waits for a free slot (default: 10s)
	LoadWait time.Duration `env:"CATALOG_LOAD_WAIT" default:"10s"`
}

// DatabaseConfig holds settings for the postgres catalog source.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string, required for CATALOG_SOURCE=postgres.
	// Supports both DATABASE_URL and DB_URL.
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// Table holds the catalog; may be schema-qualified (default: courses)
	Table string `env:"DB_CATALOG_TABLE" default:"courses"`

	MaxConns        int           `env:"DB_MAX_CONNS" default:"4"`
	MinConns        int           `env:"DB_MIN_CONNS" default:"0"`
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`

	// ConnectTimeout bounds the startup ping (default: 5s)
	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" default:"5s"`
}

// RateLimitConfig holds per-IP request limits for the HTTP server.
type RateLimitConfig struct {
	Enabled           bool `env:"RATE_LIMIT_ENABLED" default:"true"`
	RequestsPerMinute int  `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"120"`
}

// SecurityConfig holds security-related settings for the HTTP server.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of proxy CIDRs whose
	// X-Real-IP / X-Forwarded-For headers are honoured
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`

	// RequireAPIKey guards the catalog load endpoints with X-API-Key
	RequireAPIKey bool `env:"REQUIRE_API_KEY" default:"false"`

	// APIKeys is a comma-separated list of accepted keys
	APIKeys []string `env:"API_KEYS"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`

	// File, when set, receives log output instead of stdout. The planner
	// needs this because the terminal belongs to the UI.
	File string `env:"LOG_FILE"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
