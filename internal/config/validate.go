package config

import (
	"fmt"
	"os"
	"slices"

	"sparkify/internal/storage"
)

// IssueSeverity classifies a validation finding.
type IssueSeverity string

const (
	// SeverityError blocks execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning is surfaced but does not block.
	SeverityWarning IssueSeverity = "warning"
)

// Issue is one validation finding. Path is a dotted path into the config.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// Validate statically checks a Config and returns all findings. An empty
// result means the config is runnable.
func Validate(cfg Config) []Issue {
	var issues []Issue

	errf := func(path, format string, args ...any) {
		issues = append(issues, Issue{SeverityError, path, fmt.Sprintf(format, args...)})
	}
	warnf := func(path, format string, args ...any) {
		issues = append(issues, Issue{SeverityWarning, path, fmt.Sprintf(format, args...)})
	}

	if kinds := storage.Kinds(); !slices.Contains(kinds, cfg.Storage.Kind) {
		errf("storage.kind", "unknown backend %q (have %v)", cfg.Storage.Kind, kinds)
	}
	if cfg.Storage.DSN == "" {
		errf("storage.dsn", "must not be empty")
	}

	for path, dir := range map[string]string{
		"data.song_dir": cfg.Data.SongDir,
		"data.log_dir":  cfg.Data.LogDir,
	} {
		if dir == "" {
			errf(path, "must not be empty")
			continue
		}
		if st, err := os.Stat(dir); err != nil || !st.IsDir() {
			warnf(path, "directory %q not found", dir)
		}
	}

	switch cfg.Log.Format {
	case "", "json", "console":
	default:
		warnf("log.format", "unknown format %q, using json", cfg.Log.Format)
	}

	return issues
}

// HasError reports whether any issue is severity error.
func HasError(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}
