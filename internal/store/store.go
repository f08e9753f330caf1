// Package store provides the SQL-backed construction ledger. It runs on
// SQLite (modernc.org/sqlite) or Postgres (pgx) with the same queries.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iwvelando/construction-projection/internal/ledger"
	"github.com/iwvelando/construction-projection/pkg/constants"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	_ "modernc.org/sqlite"             // register sqlite driver
)

var (
	_ ledger.Store       = (*Store)(nil)
	_ ledger.Tx          = (*Store)(nil)
	_ ledger.RunRecorder = (*Store)(nil)
)

// Config selects the database driver and connection string.
type Config struct {
	// Driver is "sqlite" or "pgx" ("postgres" is accepted as an alias). When
	// empty it is inferred from the DSN.
	Driver string
	DSN    string
}

// Store is the construction ledger database. Its methods run outside any
// transaction; WithinTransaction scopes a projection run.
type Store struct {
	ops
	db *sql.DB
}

// Open connects to the configured database and applies the schema.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	d, dsn, err := resolve(cfg)
	if err != nil {
		return nil, err
	}

	if d.name == constants.DriverSQLite {
		if err := ensureDir(dsn); err != nil {
			return nil, err
		}
		dsn = withSQLitePragmas(dsn)
	}

	db, err := sql.Open(d.name, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", d.name, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging %s database: %w", d.name, err)
	}

	for _, stmt := range d.schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}

	return &Store{ops: ops{q: db, d: d}, db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Driver reports the database/sql driver in use.
func (s *Store) Driver() string {
	return s.d.name
}

// WithinTransaction runs fn against a single transaction. Every write fn makes
// is visible to its later reads; all of them are discarded if fn fails.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ledger.Tx) error) error {
	return s.inTx(ctx, func(o ops) error { return fn(o) })
}

func (s *Store) inTx(ctx context.Context, fn func(ops) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ops{q: tx, d: s.d}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return errors.Join(err, fmt.Errorf("rolling back: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func resolve(cfg Config) (dialect, string, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))

	if driver == "" {
		if isPostgresDSN(dsn) {
			driver = constants.DriverPostgres
		} else {
			driver = constants.DriverSQLite
		}
	}

	switch driver {
	case constants.DriverSQLite, "sqlite3":
		if dsn == "" {
			dsn = constants.DefaultDatabaseDSN
		}
		return sqliteDialect, dsn, nil
	case constants.DriverPostgres, "postgres", "postgresql":
		if dsn == "" {
			return dialect{}, "", errors.New("postgres driver requires a DSN")
		}
		return postgresDialect, dsn, nil
	default:
		return dialect{}, "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

func ensureDir(dsn string) error {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating database dir: %w", err)
	}
	return nil
}

func withSQLitePragmas(dsn string) string {
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_pragma=journal_mode(wal)&_pragma=busy_timeout(%d)&_pragma=foreign_keys(on)",
		dsn, sep, constants.DefaultBusyTimeoutMillis)
}
