// Command createtables drops and recreates the five analytics tables. It is
// the maintenance companion to the etl command: running it wipes all loaded
// data and leaves a fresh schema.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"sparkify/internal/config"
	"sparkify/internal/logging"
	"sparkify/internal/schema"
	"sparkify/internal/storage"

	_ "sparkify/internal/storage/all"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "config YAML path (optional)")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fatalf("load config: %v", err)
	}
	log := logging.New(cfg.Log, nil)

	ctx := context.Background()

	conn, err := storage.Open(ctx, cfg.Storage.Kind, cfg.Storage.DSN)
	if err != nil {
		fatalf("open storage: %v", err)
	}
	defer conn.Close()

	cat := schema.New(conn.Dialect())
	for _, ddl := range cat.DropAll() {
		if err := conn.ExecDDL(ctx, ddl); err != nil {
			fatalf("drop: %v", err)
		}
	}
	for _, ddl := range cat.CreateAll() {
		if err := conn.ExecDDL(ctx, ddl); err != nil {
			fatalf("create: %v", err)
		}
	}
	log.Info().Str("backend", cfg.Storage.Kind).Int("tables", len(cat.Tables())).Msg("schema recreated")
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
