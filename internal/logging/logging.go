// Package logging sets up the zerolog logger shared by the binaries.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging options.
type Config struct {
	// Level is the minimum level: debug, info, warn, error. Default info.
	Level string `koanf:"level"`

	// Format is "json" or "console". Default json.
	Format string `koanf:"format"`
}

// New builds a logger writing to w (os.Stderr when nil).
func New(cfg Config, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if cfg.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
