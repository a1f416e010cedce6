// Package sqlite implements the SQLite storage backend over database/sql.
// It keeps the pipeline runnable without a database server and doubles as
// the engine the package tests load against.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"sparkify/internal/schema"
	"sparkify/internal/storage"
)

func init() {
	storage.Register("sqlite", Open)
}

// Open opens a SQLite database. The DSN is passed straight to database/sql,
// e.g. "file:sparkify.db" or a plain path.
func Open(ctx context.Context, dsn string) (storage.Conn, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("sqlite: DSN must not be empty")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// The file-backed database allows one writer; keep database/sql from
	// opening competing connections.
	db.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	return storage.NewSQLConn(db, schema.SQLiteDialect{}), nil
}
