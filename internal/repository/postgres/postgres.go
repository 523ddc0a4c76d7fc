package postgres

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/devconnector/devconnector/pkg/database"
)

// DBTX is the subset of pgxpool.Pool the repositories use. pgxmock satisfies
// it too, so repository tests run against a mock pool.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}

// WithTracing wraps db so every statement runs inside a client span, with
// slow-query logging when that is enabled. Transactions started via Begin
// are not traced statement by statement.
func WithTracing(db DBTX) DBTX {
	return &tracingDB{db: db}
}

type tracingDB struct {
	db DBTX
}

func (t *tracingDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	ctx, end := database.TraceQuery(ctx, sqlVerb(sql), sql)
	ct, err := t.db.Exec(ctx, sql, args...)
	end(err)
	return ct, err
}

func (t *tracingDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	ctx, end := database.TraceQuery(ctx, sqlVerb(sql), sql)
	rows, err := t.db.Query(ctx, sql, args...)
	end(err)
	return rows, err
}

func (t *tracingDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	ctx, end := database.TraceQuery(ctx, sqlVerb(sql), sql)
	row := t.db.QueryRow(ctx, sql, args...)
	// Row errors surface at Scan time and are recorded by the caller.
	end(nil)
	return row
}

func (t *tracingDB) Begin(ctx context.Context) (pgx.Tx, error) {
	return t.db.Begin(ctx)
}

// sqlVerb extracts the leading SQL keyword to name the span.
func sqlVerb(sql string) string {
	fields := strings.Fields(sql)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}
