// Package mysql implements the MySQL storage backend over database/sql.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"sparkify/internal/schema"
	"sparkify/internal/storage"
)

func init() {
	storage.Register("mysql", Open)
}

// Open opens a MySQL connection. The DSN uses go-sql-driver syntax, e.g.
// "user:pass@tcp(localhost:3306)/sparkifydb?parseTime=true". parseTime is
// required so datetime columns round-trip as time.Time.
func Open(ctx context.Context, dsn string) (storage.Conn, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("mysql: DSN must not be empty")
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("mysql: open: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("mysql: ping: %w", err)
	}

	return storage.NewSQLConn(db, schema.MySQLDialect{}), nil
}
