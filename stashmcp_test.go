package stashmcp

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stashmcp/stashmcp/domain/scm"
)

// stubSource is the minimal scm.Source for construction tests.
type stubSource struct{}

func (stubSource) Projects(context.Context) ([]scm.Project, error) { return nil, nil }

func (stubSource) Repositories(context.Context, string) ([]scm.Repository, error) {
	return nil, nil
}

func (stubSource) PullRequests(context.Context, string, string, scm.PullRequestState) ([]scm.PullRequest, error) {
	return nil, nil
}

func (stubSource) Branches(context.Context, string, string) ([]scm.Branch, error) { return nil, nil }

func (stubSource) Tags(context.Context, string, string) ([]scm.Tag, error) { return nil, nil }

func (stubSource) Files(context.Context, string, string, string) ([]string, error) {
	return nil, nil
}

func (stubSource) Commits(context.Context, string, string, string) ([]scm.Commit, error) {
	return nil, nil
}

func (stubSource) PullRequestDiff(context.Context, string, string, int) (scm.DiffStream, error) {
	return nil, nil
}

func TestNew_RequiresSource(t *testing.T) {
	_, err := New(nil)
	require.ErrorContains(t, err, "source is required")
}

func TestNew_ExposesMCPServer(t *testing.T) {
	srv, err := New(stubSource{}, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	require.NotNil(t, srv.MCPServer())
}

func TestNew_RejectsBadEnvironment(t *testing.T) {
	t.Setenv("STASHMCP_LOG_FORMAT", "xml")

	_, err := New(stubSource{})
	require.ErrorContains(t, err, "invalid log format")
}
