// Package storage contains the storage-agnostic contracts of the pipeline:
// the session interface the transformers write through, the per-file
// transaction handle, and the backend registry.
//
// Backends (postgres, sqlite, mysql) register an Opener for their kind at
// init time; importing sparkify/internal/storage/all pulls all of them in.
package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"sparkify/internal/schema"
)

// ErrNoRows is returned by Row.Scan when a lookup matched nothing. Backends
// translate their driver's sentinel to this one so callers can treat a
// lookup miss uniformly (it is not an error condition for the pipeline).
var ErrNoRows = errors.New("storage: no rows")

// Row is a single-row query result.
type Row interface {
	Scan(dest ...any) error
}

// Session executes parameterized statements. It is the capability the
// transformers consume; statement arity is checked before anything reaches
// the wire.
type Session interface {
	Exec(ctx context.Context, stmt schema.Statement, args ...any) error
	QueryRow(ctx context.Context, stmt schema.Statement, args ...any) Row
}

// Tx is a Session scoped to one transaction. The loader opens one per input
// file and commits after the file is fully processed.
type Tx interface {
	Session
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Conn is an open connection to a backend.
type Conn interface {
	Dialect() schema.Dialect
	Begin(ctx context.Context) (Tx, error)

	// ExecDDL runs a raw statement outside any transaction (create/drop).
	ExecDDL(ctx context.Context, sql string) error

	Close()
}

// Opener opens a backend connection from a DSN.
type Opener func(ctx context.Context, dsn string) (Conn, error)

var (
	mu      sync.RWMutex
	openers = map[string]Opener{}
)

// Register registers (or replaces) the Opener for a storage kind. It is
// called from backend packages' init functions.
func Register(kind string, open Opener) {
	mu.Lock()
	defer mu.Unlock()
	openers[kind] = open
}

// Open opens a connection using the registered backend for kind.
func Open(ctx context.Context, kind, dsn string) (Conn, error) {
	mu.RLock()
	open, ok := openers[kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: no backend registered for kind %q (have %v)", kind, Kinds())
	}
	return open(ctx, dsn)
}

// Kinds returns the registered backend kinds, sorted.
func Kinds() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(openers))
	for k := range openers {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
