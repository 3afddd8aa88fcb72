package scm

import "context"

// Source is the hosting API client the MCP tools fetch through.
// Implementations live outside this module and own transport,
// authentication, retries, and pagination; every method returns records
// already limited to what should be rendered.
type Source interface {
	// Projects lists the projects visible to the client.
	Projects(ctx context.Context) ([]Project, error)

	// Repositories lists the repositories of a project.
	Repositories(ctx context.Context, projectKey string) ([]Repository, error)

	// PullRequests lists pull requests of a repository. An empty state
	// means no state filter.
	PullRequests(ctx context.Context, projectKey, repoSlug string, state PullRequestState) ([]PullRequest, error)

	// Branches lists the branches of a repository.
	Branches(ctx context.Context, projectKey, repoSlug string) ([]Branch, error)

	// Tags lists the tags of a repository.
	Tags(ctx context.Context, projectKey, repoSlug string) ([]Tag, error)

	// Files lists file paths in a repository, optionally at a ref.
	Files(ctx context.Context, projectKey, repoSlug, at string) ([]string, error)

	// Commits lists commits of a repository, optionally up to a ref.
	Commits(ctx context.Context, projectKey, repoSlug, until string) ([]Commit, error)

	// PullRequestDiff opens the diff of a pull request as a stream of
	// per-file diffs.
	PullRequestDiff(ctx context.Context, projectKey, repoSlug string, id int) (DiffStream, error)
}
