// Package etl drives the pipeline: it discovers input files, hands each one
// to a transformer inside its own transaction, commits per file, and reports
// progress. A failure in file N rolls back only file N and halts the run;
// files 1..N-1 stay durable and file N+1 is never reached.
package etl

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"sparkify/internal/datasource/file"
	"sparkify/internal/schema"
	"sparkify/internal/storage"
	"sparkify/internal/transformer"
)

// Pipeline runs the two-pass load: song metadata, then activity logs.
type Pipeline struct {
	conn storage.Conn
	cat  *schema.Catalog
	log  zerolog.Logger
}

// New builds a Pipeline. Every log line of a run carries a fresh run id so
// interleaved runs can be told apart.
func New(conn storage.Conn, cat *schema.Catalog, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		conn: conn,
		cat:  cat,
		log:  log.With().Str("run_id", uuid.NewString()[:8]).Logger(),
	}
}

// EnsureSchema creates any missing tables.
func (p *Pipeline) EnsureSchema(ctx context.Context) error {
	for _, ddl := range p.cat.CreateAll() {
		if err := p.conn.ExecDDL(ctx, ddl); err != nil {
			return err
		}
	}
	return nil
}

// Run loads the song directory, then the log directory.
func (p *Pipeline) Run(ctx context.Context, songDir, logDir string) error {
	if err := p.ProcessDir(ctx, songDir, transformer.Song(p.cat)); err != nil {
		return fmt.Errorf("song data: %w", err)
	}
	if err := p.ProcessDir(ctx, logDir, transformer.Events(p.cat)); err != nil {
		return fmt.Errorf("log data: %w", err)
	}
	return nil
}

// ProcessDir feeds every *.json file under dir to fn, one transaction per
// file, in sorted discovery order.
func (p *Pipeline) ProcessDir(ctx context.Context, dir string, fn transformer.ProcessFunc) error {
	files, err := file.ListFiles(dir, ".json")
	if err != nil {
		return fmt.Errorf("list %s: %w", dir, err)
	}
	p.log.Info().Str("dir", dir).Int("files", len(files)).Msg("files found")

	for i, path := range files {
		if err := p.processFile(ctx, path, fn); err != nil {
			return err
		}
		p.log.Info().Int("done", i+1).Int("total", len(files)).Str("file", path).Msg("file processed")
	}
	return nil
}

func (p *Pipeline) processFile(ctx context.Context, path string, fn transformer.ProcessFunc) error {
	tx, err := p.conn.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(ctx, tx, path); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			p.log.Warn().Err(rbErr).Str("file", path).Msg("rollback failed")
		}
		return err
	}
	return tx.Commit(ctx)
}
