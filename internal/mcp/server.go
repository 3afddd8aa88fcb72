// Package mcp exposes the Bitbucket renderers as Model Context Protocol
// tools. Fetching goes through an externally supplied scm.Source; this
// package only dispatches, formats, and reports errors.
package mcp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/stashmcp/stashmcp/domain/format"
	"github.com/stashmcp/stashmcp/domain/scm"
)

// serverName and serverVersion identify this server to MCP clients.
const (
	serverName    = "stashmcp"
	serverVersion = "0.3.0"
)

// Limits are the diff truncation limits applied when a tool call does not
// override them.
type Limits struct {
	MaxLines int
	MaxFiles int
}

// Server wraps the MCP server with Bitbucket browsing tools.
type Server struct {
	mcpServer *server.MCPServer
	source    scm.Source
	limits    Limits
	logger    *slog.Logger
}

// NewServer creates a new MCP server over the given source. Non-positive
// limits fall back to the format package defaults.
func NewServer(source scm.Source, limits Limits, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if limits.MaxLines <= 0 {
		limits.MaxLines = format.DefaultMaxLines
	}
	if limits.MaxFiles <= 0 {
		limits.MaxFiles = format.DefaultMaxFiles
	}

	s := &Server{
		source: source,
		limits: limits,
		logger: logger,
	}

	mcpServer := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
	)
	s.registerTools(mcpServer)

	s.mcpServer = mcpServer
	return s
}

// registerTools registers all browsing tools with the MCP server.
func (s *Server) registerTools(mcpServer *server.MCPServer) {
	mcpServer.AddTool(mcp.NewTool("list_projects",
		mcp.WithDescription("List visible Bitbucket projects"),
	), s.handleListProjects)

	mcpServer.AddTool(mcp.NewTool("list_repositories",
		mcp.WithDescription("List repositories of a project"),
		mcp.WithString("project",
			mcp.Required(),
			mcp.Description("Project key"),
		),
	), s.handleListRepositories)

	mcpServer.AddTool(mcp.NewTool("list_pull_requests",
		mcp.WithDescription("List pull requests of a repository"),
		mcp.WithString("project",
			mcp.Required(),
			mcp.Description("Project key"),
		),
		mcp.WithString("repository",
			mcp.Required(),
			mcp.Description("Repository slug"),
		),
		mcp.WithString("state",
			mcp.Description("Filter by state (OPEN, MERGED, DECLINED); empty for all"),
		),
	), s.handleListPullRequests)

	mcpServer.AddTool(mcp.NewTool("list_branches",
		mcp.WithDescription("List branches of a repository"),
		mcp.WithString("project",
			mcp.Required(),
			mcp.Description("Project key"),
		),
		mcp.WithString("repository",
			mcp.Required(),
			mcp.Description("Repository slug"),
		),
		mcp.WithBoolean("show_default",
			mcp.Description("Mark the default branch with an asterisk (default: true)"),
		),
	), s.handleListBranches)

	mcpServer.AddTool(mcp.NewTool("list_tags",
		mcp.WithDescription("List tags of a repository"),
		mcp.WithString("project",
			mcp.Required(),
			mcp.Description("Project key"),
		),
		mcp.WithString("repository",
			mcp.Required(),
			mcp.Description("Repository slug"),
		),
	), s.handleListTags)

	mcpServer.AddTool(mcp.NewTool("list_files",
		mcp.WithDescription("List file paths of a repository"),
		mcp.WithString("project",
			mcp.Required(),
			mcp.Description("Project key"),
		),
		mcp.WithString("repository",
			mcp.Required(),
			mcp.Description("Repository slug"),
		),
		mcp.WithString("at",
			mcp.Description("Ref to list files at (branch, tag, or commit)"),
		),
	), s.handleListFiles)

	mcpServer.AddTool(mcp.NewTool("list_commits",
		mcp.WithDescription("List commits of a repository"),
		mcp.WithString("project",
			mcp.Required(),
			mcp.Description("Project key"),
		),
		mcp.WithString("repository",
			mcp.Required(),
			mcp.Description("Repository slug"),
		),
		mcp.WithString("until",
			mcp.Description("Ref to list commits up to"),
		),
	), s.handleListCommits)

	mcpServer.AddTool(mcp.NewTool("get_pull_request_diff",
		mcp.WithDescription("Render the diff of a pull request, truncated to stay readable"),
		mcp.WithString("project",
			mcp.Required(),
			mcp.Description("Project key"),
		),
		mcp.WithString("repository",
			mcp.Required(),
			mcp.Description("Repository slug"),
		),
		mcp.WithNumber("pull_request",
			mcp.Required(),
			mcp.Description("Pull request ID"),
		),
		mcp.WithNumber("max_lines",
			mcp.Description(fmt.Sprintf("Line cap for the rendered diff (default: %d)", format.DefaultMaxLines)),
		),
		mcp.WithNumber("max_files",
			mcp.Description(fmt.Sprintf("File cap for the rendered diff (default: %d)", format.DefaultMaxFiles)),
		),
	), s.handleGetPullRequestDiff)
}

func (s *Server) handleListProjects(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projects, err := s.source.Projects(ctx)
	if err != nil {
		s.logger.Error("list projects failed", slog.Any("error", err))
		return mcp.NewToolResultError(fmt.Sprintf("list projects failed: %v", err)), nil
	}
	return mcp.NewToolResultText(format.Projects(projects)), nil
}

func (s *Server) handleListRepositories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project, err := request.RequireString("project")
	if err != nil {
		return mcp.NewToolResultError("project is required"), nil
	}

	repos, err := s.source.Repositories(ctx, project)
	if err != nil {
		s.logger.Error("list repositories failed", slog.String("project", project), slog.Any("error", err))
		return mcp.NewToolResultError(fmt.Sprintf("list repositories failed: %v", err)), nil
	}
	return mcp.NewToolResultText(format.Repositories(project, repos)), nil
}

func (s *Server) handleListPullRequests(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project, err := request.RequireString("project")
	if err != nil {
		return mcp.NewToolResultError("project is required"), nil
	}
	repo, err := request.RequireString("repository")
	if err != nil {
		return mcp.NewToolResultError("repository is required"), nil
	}
	state := scm.PullRequestState(request.GetString("state", ""))

	prs, err := s.source.PullRequests(ctx, project, repo, state)
	if err != nil {
		s.logger.Error("list pull requests failed",
			slog.String("project", project),
			slog.String("repository", repo),
			slog.Any("error", err),
		)
		return mcp.NewToolResultError(fmt.Sprintf("list pull requests failed: %v", err)), nil
	}
	return mcp.NewToolResultText(format.PullRequests(repo, state, prs)), nil
}

func (s *Server) handleListBranches(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project, err := request.RequireString("project")
	if err != nil {
		return mcp.NewToolResultError("project is required"), nil
	}
	repo, err := request.RequireString("repository")
	if err != nil {
		return mcp.NewToolResultError("repository is required"), nil
	}
	showDefault := request.GetBool("show_default", true)

	branches, err := s.source.Branches(ctx, project, repo)
	if err != nil {
		s.logger.Error("list branches failed",
			slog.String("project", project),
			slog.String("repository", repo),
			slog.Any("error", err),
		)
		return mcp.NewToolResultError(fmt.Sprintf("list branches failed: %v", err)), nil
	}
	return mcp.NewToolResultText(format.Branches(repo, branches, showDefault)), nil
}

func (s *Server) handleListTags(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project, err := request.RequireString("project")
	if err != nil {
		return mcp.NewToolResultError("project is required"), nil
	}
	repo, err := request.RequireString("repository")
	if err != nil {
		return mcp.NewToolResultError("repository is required"), nil
	}

	tags, err := s.source.Tags(ctx, project, repo)
	if err != nil {
		s.logger.Error("list tags failed",
			slog.String("project", project),
			slog.String("repository", repo),
			slog.Any("error", err),
		)
		return mcp.NewToolResultError(fmt.Sprintf("list tags failed: %v", err)), nil
	}
	return mcp.NewToolResultText(format.Tags(repo, tags)), nil
}

func (s *Server) handleListFiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project, err := request.RequireString("project")
	if err != nil {
		return mcp.NewToolResultError("project is required"), nil
	}
	repo, err := request.RequireString("repository")
	if err != nil {
		return mcp.NewToolResultError("repository is required"), nil
	}
	at := request.GetString("at", "")

	paths, err := s.source.Files(ctx, project, repo, at)
	if err != nil {
		s.logger.Error("list files failed",
			slog.String("project", project),
			slog.String("repository", repo),
			slog.Any("error", err),
		)
		return mcp.NewToolResultError(fmt.Sprintf("list files failed: %v", err)), nil
	}
	return mcp.NewToolResultText(format.Files(repo, at, paths)), nil
}

func (s *Server) handleListCommits(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project, err := request.RequireString("project")
	if err != nil {
		return mcp.NewToolResultError("project is required"), nil
	}
	repo, err := request.RequireString("repository")
	if err != nil {
		return mcp.NewToolResultError("repository is required"), nil
	}
	until := request.GetString("until", "")

	commits, err := s.source.Commits(ctx, project, repo, until)
	if err != nil {
		s.logger.Error("list commits failed",
			slog.String("project", project),
			slog.String("repository", repo),
			slog.Any("error", err),
		)
		return mcp.NewToolResultError(fmt.Sprintf("list commits failed: %v", err)), nil
	}
	return mcp.NewToolResultText(format.Commits(repo, until, commits)), nil
}

func (s *Server) handleGetPullRequestDiff(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project, err := request.RequireString("project")
	if err != nil {
		return mcp.NewToolResultError("project is required"), nil
	}
	repo, err := request.RequireString("repository")
	if err != nil {
		return mcp.NewToolResultError("repository is required"), nil
	}
	id, err := request.RequireInt("pull_request")
	if err != nil {
		return mcp.NewToolResultError("pull_request is required"), nil
	}

	maxLines := request.GetInt("max_lines", s.limits.MaxLines)
	maxFiles := request.GetInt("max_files", s.limits.MaxFiles)

	stream, err := s.source.PullRequestDiff(ctx, project, repo, id)
	if err != nil {
		s.logger.Error("open pull request diff failed",
			slog.String("project", project),
			slog.String("repository", repo),
			slog.Int("pull_request", id),
			slog.Any("error", err),
		)
		return mcp.NewToolResultError(fmt.Sprintf("get pull request diff failed: %v", err)), nil
	}

	text, err := format.DiffStream(ctx, stream,
		format.WithMaxLines(maxLines),
		format.WithMaxFiles(maxFiles),
	)
	if err != nil {
		s.logger.Error("render pull request diff failed",
			slog.String("project", project),
			slog.String("repository", repo),
			slog.Int("pull_request", id),
			slog.Any("error", err),
		)
		return mcp.NewToolResultError(fmt.Sprintf("get pull request diff failed: %v", err)), nil
	}
	return mcp.NewToolResultText(text), nil
}

// MCPServer returns the underlying MCP server for embedding.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio runs the MCP server on stdio.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
