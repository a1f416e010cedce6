// Command etl runs the full pipeline end to end: song metadata into the
// songs/artists dimensions, then activity logs into time/users and the
// songplays fact table. One transaction per input file; the first failing
// file halts the run.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"sparkify/internal/config"
	"sparkify/internal/etl"
	"sparkify/internal/logging"
	"sparkify/internal/schema"
	"sparkify/internal/storage"

	// register all storage backends; config selects which one runs.
	_ "sparkify/internal/storage/all"
)

func main() {
	var (
		cfgPath  string
		validate bool
	)
	flag.StringVar(&cfgPath, "config", "", "config YAML path (optional; env and defaults apply regardless)")
	flag.BoolVar(&validate, "validate", false, "validate the configuration and exit")
	verbose := flag.Bool("v", false, "enable debug logs")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fatalf("load config: %v", err)
	}
	if *verbose {
		cfg.Log.Level = "debug"
	}
	log := logging.New(cfg.Log, nil)

	issues := config.Validate(cfg)
	for _, iss := range issues {
		fmt.Fprintln(os.Stderr, iss.Error())
	}
	if config.HasError(issues) {
		fatalf("configuration is invalid")
	}
	if validate {
		log.Info().Msg("configuration is valid")
		return
	}

	ctx := context.Background()

	conn, err := storage.Open(ctx, cfg.Storage.Kind, cfg.Storage.DSN)
	if err != nil {
		fatalf("open storage: %v", err)
	}
	defer conn.Close()

	pipeline := etl.New(conn, schema.New(conn.Dialect()), log)
	if err := pipeline.EnsureSchema(ctx); err != nil {
		fatalf("ensure schema: %v", err)
	}
	if err := pipeline.Run(ctx, cfg.Data.SongDir, cfg.Data.LogDir); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
	log.Info().Msg("run complete")
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
