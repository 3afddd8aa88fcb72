package stashmcp

import (
	"log/slog"

	"github.com/stashmcp/stashmcp/internal/mcp"
)

type options struct {
	logger *slog.Logger
	limits mcp.Limits
}

// Option adjusts Server construction.
type Option func(*options)

// WithLogger supplies a logger, replacing the environment-configured one.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithDiffLimits replaces the configured diff truncation limits.
// Non-positive values fall back to the format package defaults.
func WithDiffLimits(maxLines, maxFiles int) Option {
	return func(o *options) {
		o.limits = mcp.Limits{MaxLines: maxLines, MaxFiles: maxFiles}
	}
}
