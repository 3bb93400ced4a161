package git

import (
	"fmt"
	"regexp"
	"strings"
)

// repoURLPattern matches the owner and repository segments after the GitHub host.
// Accepts https://github.com/o/r, git@github.com:o/r.git and github.com/o/r
var repoURLPattern = regexp.MustCompile(`github\.com[/:]([^/\s]+)/([^/\s?#]+)`)

// RepoRef identifies a repository on the hosting service
type RepoRef struct {
	Owner string
	Name  string
}

// String returns "owner/name"
func (r RepoRef) String() string {
	return r.Owner + "/" + r.Name
}

// ParseRepoURL extracts owner and repository name from a GitHub URL.
// The second return value is false when the URL does not match.
func ParseRepoURL(raw string) (RepoRef, bool) {
	m := repoURLPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return RepoRef{}, false
	}

	name := strings.TrimSuffix(m[2], ".git")
	if m[1] == "" || name == "" {
		return RepoRef{}, false
	}

	return RepoRef{Owner: m[1], Name: name}, true
}

// RawURL returns the raw content URL for a file at a branch
func (r RepoRef) RawURL(baseURL, branch, path string) string {
	return fmt.Sprintf("%s/%s/%s/%s/%s",
		strings.TrimSuffix(baseURL, "/"), r.Owner, r.Name, branch, strings.TrimPrefix(path, "/"))
}
