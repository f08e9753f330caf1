// Package constants provides shared constants for the construction-projection application.
package constants

import "time"

// Financial constants
const (
	// InterestRoundingPlaces rounds projected interest to the nearest hundred.
	InterestRoundingPlaces = -2

	// FiscalYearDigits is the width of a fiscal year string such as "2025".
	FiscalYearDigits = 4
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// EnvPrefix prefixes environment variable overrides, e.g. PROJECTION_DATABASE_DSN.
	EnvPrefix = "PROJECTION"
)

// Storage defaults
const (
	// DriverSQLite is the database/sql driver name registered by modernc.org/sqlite.
	DriverSQLite = "sqlite"

	// DriverPostgres is the database/sql driver name registered by pgx.
	DriverPostgres = "pgx"

	// DefaultDatabaseDSN is the SQLite file used when no DSN is configured.
	DefaultDatabaseDSN = "construction.db"

	// DefaultBusyTimeoutMillis bounds how long SQLite waits on a locked database.
	DefaultBusyTimeoutMillis = 5000
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8001"

	// DefaultMaxRequestSizeBytes is the default maximum request body size (256 KB)
	DefaultMaxRequestSizeBytes int64 = 256 * 1024

	// DefaultReadHeaderTimeout bounds slow clients on the HTTP listener.
	DefaultReadHeaderTimeout = 10 * time.Second

	// DefaultShutdownTimeout bounds graceful shutdown of the HTTP listener.
	DefaultShutdownTimeout = 15 * time.Second

	// DefaultRunHistoryLimit is how many projection runs the history endpoint returns.
	DefaultRunHistoryLimit = 20
)
