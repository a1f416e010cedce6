// Package postgres implements the Postgres storage backend using pgx v5.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sparkify/internal/schema"
	"sparkify/internal/storage"
)

func init() {
	storage.Register("postgres", Open)
}

// Open connects a pgx pool and verifies it with a short ping.
func Open(ctx context.Context, dsn string) (storage.Conn, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse dsn: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: pgxpool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	return &conn{pool: pool, dialect: schema.PostgresDialect{}}, nil
}

type conn struct {
	pool    *pgxpool.Pool
	dialect schema.Dialect
}

func (c *conn) Dialect() schema.Dialect { return c.dialect }

func (c *conn) Begin(ctx context.Context) (storage.Tx, error) {
	t, err := c.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("postgres: begin: %w", err)
	}
	return &tx{tx: t}, nil
}

func (c *conn) ExecDDL(ctx context.Context, ddl string) error {
	if _, err := c.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("postgres: exec ddl: %w", err)
	}
	return nil
}

func (c *conn) Close() { c.pool.Close() }

type tx struct {
	tx pgx.Tx
}

func (t *tx) Exec(ctx context.Context, stmt schema.Statement, args ...any) error {
	if err := stmt.Check(args); err != nil {
		return err
	}
	if _, err := t.tx.Exec(ctx, stmt.SQL, args...); err != nil {
		return fmt.Errorf("postgres: %s: %w", stmt.Name, err)
	}
	return nil
}

func (t *tx) QueryRow(ctx context.Context, stmt schema.Statement, args ...any) storage.Row {
	if err := stmt.Check(args); err != nil {
		return errRow{err}
	}
	return pgxRow{t.tx.QueryRow(ctx, stmt.SQL, args...)}
}

func (t *tx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

func (t *tx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("postgres: rollback: %w", err)
	}
	return nil
}

// pgxRow translates pgx.ErrNoRows into the storage sentinel.
type pgxRow struct {
	row pgx.Row
}

func (r pgxRow) Scan(dest ...any) error {
	if err := r.row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return storage.ErrNoRows
		}
		return err
	}
	return nil
}

type errRow struct {
	err error
}

func (r errRow) Scan(...any) error { return r.err }
