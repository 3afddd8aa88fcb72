// Package format renders Bitbucket Server records as compact plain text for
// token-constrained consumers such as LLM tool results. Every renderer is a
// pure function of its inputs: one heading line naming the scope, then one
// line per record. Empty input yields the heading alone. List length is the
// caller's concern; only single oversized field values are capped here.
package format

import (
	"fmt"
	"strings"

	"github.com/stashmcp/stashmcp/domain/scm"
)

// maxMessageRunes caps the commit message line in commit listings.
const maxMessageRunes = 60

// Projects renders one line per project.
func Projects(projects []scm.Project) string {
	var b strings.Builder
	b.WriteString("Projects:\n")
	for _, p := range projects {
		fmt.Fprintf(&b, "- %s: %s\n", p.Key, p.Name)
	}
	return b.String()
}

// Repositories renders one line per repository of a project. A repository
// without a name falls back to its slug.
func Repositories(projectKey string, repos []scm.Repository) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Repositories in %s:\n", projectKey)
	for _, r := range repos {
		name := r.Name
		if name == "" {
			name = r.Slug
		}
		fmt.Fprintf(&b, "- %s: %s\n", r.Slug, name)
	}
	return b.String()
}

// PullRequests renders one line per pull request with a single-letter state
// marker. The state argument is the caller's filter and only labels the
// heading; empty means unfiltered. A missing author renders as "?".
func PullRequests(repoSlug string, state scm.PullRequestState, prs []scm.PullRequest) string {
	var b strings.Builder
	if state != "" {
		fmt.Fprintf(&b, "Pull requests in %s [%s]:\n", repoSlug, state)
	} else {
		fmt.Fprintf(&b, "Pull requests in %s:\n", repoSlug)
	}
	for _, pr := range prs {
		author := pr.Author
		if author == "" {
			author = "?"
		}
		fmt.Fprintf(&b, "- #%d: %s [%s] @%s\n", pr.ID, pr.Title, stateLetter(pr.State), author)
	}
	return b.String()
}

// Branches renders one line per branch. With showDefault set, the default
// branch carries a trailing asterisk.
func Branches(repoSlug string, branches []scm.Branch, showDefault bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Branches in %s:\n", repoSlug)
	for _, br := range branches {
		if showDefault && br.IsDefault {
			fmt.Fprintf(&b, "- %s *\n", br.DisplayID)
		} else {
			fmt.Fprintf(&b, "- %s\n", br.DisplayID)
		}
	}
	return b.String()
}

// Tags renders one line per tag.
func Tags(repoSlug string, tags []scm.Tag) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tags in %s:\n", repoSlug)
	for _, tag := range tags {
		fmt.Fprintf(&b, "- %s\n", tag.DisplayID)
	}
	return b.String()
}

// Files renders raw file paths, one per line. The at ref labels the heading
// when set.
func Files(repoSlug, at string, paths []string) string {
	var b strings.Builder
	if at != "" {
		fmt.Fprintf(&b, "Files in %s at %s:\n", repoSlug, at)
	} else {
		fmt.Fprintf(&b, "Files in %s:\n", repoSlug)
	}
	for _, p := range paths {
		b.WriteString(p)
		b.WriteByte('\n')
	}
	return b.String()
}

// Commits renders one line per commit: short hash plus the first message
// line, capped at maxMessageRunes runes. The until ref labels the heading
// when set.
func Commits(repoSlug, until string, commits []scm.Commit) string {
	var b strings.Builder
	if until != "" {
		fmt.Fprintf(&b, "Commits in %s (%s):\n", repoSlug, until)
	} else {
		fmt.Fprintf(&b, "Commits in %s:\n", repoSlug)
	}
	for _, c := range commits {
		fmt.Fprintf(&b, "- %s: %s\n", shortHash(c), messageLine(c.Message))
	}
	return b.String()
}

func stateLetter(s scm.PullRequestState) string {
	switch s {
	case scm.PullRequestOpen:
		return "O"
	case scm.PullRequestMerged:
		return "M"
	case scm.PullRequestDeclined:
		return "D"
	default:
		return "?"
	}
}

// shortHash prefers the server's abbreviated hash and otherwise cuts the
// full hash to 8 characters.
func shortHash(c scm.Commit) string {
	if c.DisplayID != "" {
		return c.DisplayID
	}
	if len(c.ID) > 8 {
		return c.ID[:8]
	}
	return c.ID
}

// messageLine returns the first line of a commit message, capped at
// maxMessageRunes runes. Capped lines keep maxMessageRunes-3 runes and end
// in "...", so they are never longer than an untouched line at the cap.
func messageLine(message string) string {
	line := message
	if i := strings.IndexByte(message, '\n'); i >= 0 {
		line = message[:i]
	}
	line = strings.TrimRight(line, "\r")
	runes := []rune(line)
	if len(runes) <= maxMessageRunes {
		return line
	}
	return string(runes[:maxMessageRunes-3]) + "..."
}
