package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"sparkify/internal/schema"
)

// SQLConn adapts a database/sql handle to the Conn contract. The sqlite and
// mysql backends are both thin wrappers over it; only the driver name, DSN
// handling, and dialect differ.
type SQLConn struct {
	db      *sql.DB
	dialect schema.Dialect
}

// NewSQLConn wraps an open *sql.DB. Ownership of db transfers to the
// returned Conn; Close closes it.
func NewSQLConn(db *sql.DB, d schema.Dialect) *SQLConn {
	return &SQLConn{db: db, dialect: d}
}

func (c *SQLConn) Dialect() schema.Dialect { return c.dialect }

func (c *SQLConn) Begin(ctx context.Context) (Tx, error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: begin: %w", c.dialect.Name(), err)
	}
	return &sqlTx{tx: tx, kind: c.dialect.Name()}, nil
}

func (c *SQLConn) ExecDDL(ctx context.Context, ddl string) error {
	if _, err := c.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("%s: exec ddl: %w", c.dialect.Name(), err)
	}
	return nil
}

func (c *SQLConn) Close() { _ = c.db.Close() }

type sqlTx struct {
	tx   *sql.Tx
	kind string
}

func (t *sqlTx) Exec(ctx context.Context, stmt schema.Statement, args ...any) error {
	if err := stmt.Check(args); err != nil {
		return err
	}
	if _, err := t.tx.ExecContext(ctx, stmt.SQL, args...); err != nil {
		return fmt.Errorf("%s: %s: %w", t.kind, stmt.Name, err)
	}
	return nil
}

func (t *sqlTx) QueryRow(ctx context.Context, stmt schema.Statement, args ...any) Row {
	if err := stmt.Check(args); err != nil {
		return errRow{err}
	}
	return sqlRow{t.tx.QueryRowContext(ctx, stmt.SQL, args...)}
}

func (t *sqlTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", t.kind, err)
	}
	return nil
}

func (t *sqlTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("%s: rollback: %w", t.kind, err)
	}
	return nil
}

// sqlRow translates sql.ErrNoRows into the package sentinel.
type sqlRow struct {
	row *sql.Row
}

func (r sqlRow) Scan(dest ...any) error {
	if err := r.row.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNoRows
		}
		return err
	}
	return nil
}

// errRow defers a bind-time error to the Scan call, mirroring the
// database/sql QueryRow contract.
type errRow struct {
	err error
}

func (r errRow) Scan(...any) error { return r.err }
