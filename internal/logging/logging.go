// Package logging builds structured slog loggers for the CLI and the
// MCP server. The MCP server must log to stderr because stdout carries
// the JSON-RPC stream.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format selects the handler encoding.
type Format string

const (
	// JSONFormat emits one JSON object per line.
	JSONFormat Format = "json"
	// TextFormat emits key=value text.
	TextFormat Format = "text"
)

// Config holds logger configuration.
type Config struct {
	Format Format
	Level  string
	Output io.Writer // defaults to stderr
}

// New creates a logger from the configuration. Unknown levels fall back
// to info with a warning on the returned logger itself.
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	level, err := ParseLevel(cfg.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == JSONFormat {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	logger := slog.New(handler)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", cfg.Level)
	}
	return logger
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// NewDiscard returns a logger that drops everything. Used in tests and
// wherever a subsystem runs without a log destination.
func NewDiscard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
