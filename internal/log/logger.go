// Package log provides structured logging setup.
package log

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/stashmcp/stashmcp/internal/config"
)

// New creates a logger per the configured level and format. Logs go to
// stderr: an MCP stdio server owns stdout for the protocol.
func New(cfg config.Config) *slog.Logger {
	return NewWithWriter(os.Stderr, cfg)
}

// NewWithWriter creates a logger that writes to w.
func NewWithWriter(w io.Writer, cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}

	var handler slog.Handler
	switch config.LogFormat(strings.ToLower(cfg.LogFormat)) {
	case config.LogFormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
