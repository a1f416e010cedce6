package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Kind != "postgres" {
		t.Errorf("Storage.Kind = %q", cfg.Storage.Kind)
	}
	if cfg.Data.SongDir != "data/song_data" || cfg.Data.LogDir != "data/log_data" {
		t.Errorf("Data = %+v", cfg.Data)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
}

func TestYAMLFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
storage:
  kind: sqlite
  dsn: file:sparkify.db
data:
  song_dir: /srv/song_data
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Kind != "sqlite" || cfg.Storage.DSN != "file:sparkify.db" {
		t.Errorf("Storage = %+v", cfg.Storage)
	}
	if cfg.Data.SongDir != "/srv/song_data" {
		t.Errorf("SongDir = %q", cfg.Data.SongDir)
	}
	// Untouched keys keep their defaults.
	if cfg.Data.LogDir != "data/log_data" {
		t.Errorf("LogDir = %q", cfg.Data.LogDir)
	}
}

func TestEnvOverridesEverything(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("storage:\n  dsn: from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SPARKIFY_STORAGE_DSN", "from-env")
	t.Setenv("SPARKIFY_DATA_SONG_DIR", "/env/songs")
	t.Setenv("SPARKIFY_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.DSN != "from-env" {
		t.Errorf("DSN = %q, want env value", cfg.Storage.DSN)
	}
	if cfg.Data.SongDir != "/env/songs" {
		t.Errorf("SongDir = %q, want env value", cfg.Data.SongDir)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
}

func TestMissingConfigFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("absent config file: want error")
	}
}
