// Package logging wires zerolog for the permission prompt and carries the
// logger through context.Context.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config selects level, encoding and destination of a logger.
type Config struct {
	Level      zerolog.Level
	Format     string // "json" or "console"
	TimeFormat string
	Output     io.Writer // nil means os.Stderr
}

// DefaultConfig logs info and above to stderr in console form.
func DefaultConfig() Config {
	return Config{
		Level:      zerolog.InfoLevel,
		Format:     "console",
		TimeFormat: time.RFC3339,
	}
}

// New builds a timestamped logger. Console output is colored only on stderr.
func New(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: cfg.TimeFormat,
			NoColor:    out != os.Stderr,
		}
	}
	return zerolog.New(out).Level(cfg.Level).With().Timestamp().Logger()
}

// levelAliases are accepted in config and env on top of zerolog's names.
var levelAliases = map[string]zerolog.Level{
	"warning": zerolog.WarnLevel,
	"off":     zerolog.Disabled,
}

// ParseLevel reads a level name case-insensitively. Empty or unknown names
// mean info.
func ParseLevel(name string) zerolog.Level {
	name = strings.ToLower(strings.TrimSpace(name))
	if level, ok := levelAliases[name]; ok {
		return level
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}
