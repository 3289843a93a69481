// Package loader appends the cleaned tables to the target PostgreSQL schema
// and verifies the result.
package loader

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MThorpester/covid-us-etl/internal/logging"
)

//go:embed schema.sql
var schemaSQL string

// Config configures the PostgreSQL loader.
type Config struct {
	DSN        string
	InitSchema bool
}

// Loader appends rows to the target tables over a single connection pool
// held for the duration of the load phase.
type Loader struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

// New connects to PostgreSQL and verifies the connection.
func New(ctx context.Context, cfg Config) (*Loader, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	// One operator-run batch; a couple of connections is plenty.
	poolCfg.MaxConns = 2
	poolCfg.MinConns = 1

	pool, err := pgxpool.NewWithConfig(connectCtx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	l := &Loader{
		pool: pool,
		log:  logging.Component("loader"),
	}

	if cfg.InitSchema {
		if err := l.initSchema(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("init schema: %w", err)
		}
	}

	l.log.Info("connected to PostgreSQL target")
	return l, nil
}

// initSchema creates the three target tables if they don't exist.
func (l *Loader) initSchema(ctx context.Context) error {
	if _, err := l.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	l.log.Info("provisioned target schema")
	return nil
}

// Append appends rows to the named table via COPY. The write is append-only:
// a primary-key violation (for example a second run without truncation)
// propagates to the caller and aborts the pipeline.
func (l *Loader) Append(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	n, err := l.pool.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("copy into %s: %w", table, err)
	}
	if n != int64(len(rows)) {
		return n, fmt.Errorf("copy into %s: wrote %d of %d rows", table, n, len(rows))
	}

	l.log.Info("appended rows", "table", table, "rows", n)
	return n, nil
}

// Verify confirms the append by reading back a row count and a small sample.
func (l *Loader) Verify(ctx context.Context, table string, want int64) error {
	ident := pgx.Identifier{table}.Sanitize()

	var count int64
	if err := l.pool.QueryRow(ctx, "SELECT count(*) FROM "+ident).Scan(&count); err != nil {
		return fmt.Errorf("count %s: %w", table, err)
	}
	if count < want {
		return fmt.Errorf("verify %s: table holds %d rows, expected at least %d", table, count, want)
	}

	sample, err := l.sampleRow(ctx, ident)
	if err != nil {
		return fmt.Errorf("sample %s: %w", table, err)
	}

	l.log.Info("verified load",
		"table", table,
		"row_count", count,
		"sample", sample,
	)
	return nil
}

// sampleRow reads one row back as a printable string.
func (l *Loader) sampleRow(ctx context.Context, ident string) (string, error) {
	rows, err := l.pool.Query(ctx, "SELECT * FROM "+ident+" LIMIT 1")
	if err != nil {
		return "", err
	}
	defer rows.Close()

	if !rows.Next() {
		return "<empty>", rows.Err()
	}
	values, err := rows.Values()
	if err != nil {
		return "", err
	}

	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", "), rows.Err()
}

// Close releases database connections.
func (l *Loader) Close() error {
	l.pool.Close()
	return nil
}
