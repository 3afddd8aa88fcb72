// Package stashmcp renders Bitbucket Server API responses as compact plain
// text and serves the renderers as Model Context Protocol tools over stdio.
// The hosting API client stays outside this module: embedding applications
// supply an scm.Source and own transport, authentication, and pagination.
package stashmcp

import (
	"fmt"
	"log/slog"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/stashmcp/stashmcp/domain/scm"
	"github.com/stashmcp/stashmcp/internal/config"
	"github.com/stashmcp/stashmcp/internal/log"
	"github.com/stashmcp/stashmcp/internal/mcp"
)

// Server is the embeddable MCP front end over a Bitbucket source.
type Server struct {
	mcp    *mcp.Server
	logger *slog.Logger
}

// New builds a Server for the given source. Configuration comes from the
// environment (and an optional .env file in the working directory); options
// override it.
func New(source scm.Source, opts ...Option) (*Server, error) {
	if source == nil {
		return nil, fmt.Errorf("stashmcp: source is required")
	}

	cfg, err := config.Load("")
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	o := options{
		limits: mcp.Limits{
			MaxLines: cfg.DiffMaxLines,
			MaxFiles: cfg.DiffMaxFiles,
		},
	}
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = log.New(cfg)
	}

	return &Server{
		mcp:    mcp.NewServer(source, o.limits, logger),
		logger: logger,
	}, nil
}

// MCPServer returns the underlying MCP server for embedding in another
// transport.
func (s *Server) MCPServer() *mcpserver.MCPServer {
	return s.mcp.MCPServer()
}

// ServeStdio runs the MCP server on stdio until the client disconnects.
func (s *Server) ServeStdio() error {
	s.logger.Info("serving MCP on stdio")
	return s.mcp.ServeStdio()
}
