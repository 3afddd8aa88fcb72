// Package scm holds the Bitbucket Server record types this library renders.
// Every type is owned by the hosting API client: the structs mirror the REST
// payload shapes, arrive fully materialized from the caller, and are never
// mutated here.
package scm

// Project groups repositories under a key.
type Project struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Repository is one repository within a project. Name may be empty; callers
// rendering it fall back to the slug.
type Repository struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// PullRequestState is the lifecycle state reported by the server. Values
// outside the known set are preserved as-is.
type PullRequestState string

// Pull request states.
const (
	PullRequestOpen     PullRequestState = "OPEN"
	PullRequestMerged   PullRequestState = "MERGED"
	PullRequestDeclined PullRequestState = "DECLINED"
)

// PullRequest is a pull request summary record. Author may be empty when the
// server omits the author block.
type PullRequest struct {
	ID     int              `json:"id"`
	Title  string           `json:"title"`
	State  PullRequestState `json:"state"`
	Author string           `json:"author"`
}

// Branch is a branch ref. IsDefault marks the repository's default branch.
type Branch struct {
	ID        string `json:"id"`
	DisplayID string `json:"displayId"`
	IsDefault bool   `json:"isDefault"`
}

// Tag is a tag ref.
type Tag struct {
	ID        string `json:"id"`
	DisplayID string `json:"displayId"`
}

// Commit is a commit summary record. DisplayID is the server's abbreviated
// hash and may be empty.
type Commit struct {
	ID        string `json:"id"`
	DisplayID string `json:"displayId"`
	Message   string `json:"message"`
	Author    string `json:"author"`
}
