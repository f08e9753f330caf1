package store

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/iwvelando/construction-projection/pkg/constants"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type dialect struct {
	name   string
	schema []string
	dollar bool
}

var sqliteDialect = dialect{
	name:   constants.DriverSQLite,
	schema: sqliteSchema,
}

var postgresDialect = dialect{
	name:   constants.DriverPostgres,
	schema: postgresSchema,
	dollar: true,
}

// rebind rewrites ? placeholders into $1, $2, ... for Postgres.
func (d dialect) rebind(query string) string {
	if !d.dollar {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// placeholders returns "?, ?, ?" with n markers.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// ops binds a querier to a dialect. It backs both Store and the per-run
// transaction handed to ledger.Store callers.
type ops struct {
	q querier
	d dialect
}

func (o ops) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return o.q.ExecContext(ctx, o.d.rebind(query), args...)
}

func (o ops) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return o.q.QueryContext(ctx, o.d.rebind(query), args...)
}

func (o ops) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return o.q.QueryRowContext(ctx, o.d.rebind(query), args...)
}
