// Package gitrepo resolves the owner, repository name and branch of the git
// checkout the converter runs in.
package gitrepo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
)

// DefaultRawURLTemplate points at GitHub's raw-content host.
const DefaultRawURLTemplate = "https://raw.githubusercontent.com/{owner}/{repo}/{branch}"

// ErrUnavailable means the coordinates could not be determined. Callers
// treat it as "skip image rewriting", not as a failure.
var ErrUnavailable = errors.New("repository coordinates unavailable")

// Coordinates identify a branch of a hosted repository.
type Coordinates struct {
	Owner  string
	Repo   string
	Branch string
}

// Available reports whether every coordinate is known.
func (c Coordinates) Available() bool {
	return c.Owner != "" && c.Repo != "" && c.Branch != ""
}

// RawBaseURL expands {owner}, {repo} and {branch} in template.
// Returns "" when the coordinates are incomplete.
func (c Coordinates) RawBaseURL(template string) string {
	if !c.Available() {
		return ""
	}
	r := strings.NewReplacer("{owner}", c.Owner, "{repo}", c.Repo, "{branch}", c.Branch)
	return r.Replace(template)
}

// Resolve reads the current branch and the URL of remote from the
// repository containing dir.
func Resolve(dir, remote string) (Coordinates, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return Coordinates{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	branch, err := currentBranch(repo)
	if err != nil {
		return Coordinates{}, err
	}

	r, err := repo.Remote(remote)
	if err != nil {
		return Coordinates{}, fmt.Errorf("%w: remote %q: %v", ErrUnavailable, remote, err)
	}
	urls := r.Config().URLs
	if len(urls) == 0 {
		return Coordinates{}, fmt.Errorf("%w: remote %q has no url", ErrUnavailable, remote)
	}

	owner, name, err := ParseRemoteURL(urls[0])
	if err != nil {
		return Coordinates{}, err
	}

	return Coordinates{Owner: owner, Repo: name, Branch: branch}, nil
}

// currentBranch reads HEAD without requiring a commit, so a freshly
// initialised repository still reports its branch.
func currentBranch(repo *git.Repository) (string, error) {
	head, err := repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return "", fmt.Errorf("%w: HEAD: %v", ErrUnavailable, err)
	}
	if head.Type() != plumbing.SymbolicReference || !head.Target().IsBranch() {
		return "", fmt.Errorf("%w: detached HEAD", ErrUnavailable)
	}
	return head.Target().Short(), nil
}

// ParseRemoteURL extracts the owner and repository name from a git remote
// URL (https, ssh, git or scp-like). The owner is every path segment but the
// last, so nested groups are kept.
func ParseRemoteURL(url string) (owner, repo string, err error) {
	ep, err := transport.NewEndpoint(strings.TrimSpace(url))
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if ep.Host == "" {
		return "", "", fmt.Errorf("%w: %q is not a hosted remote", ErrUnavailable, url)
	}

	path := strings.Trim(ep.Path, "/")
	path = strings.TrimSuffix(path, ".git")

	i := strings.LastIndex(path, "/")
	if i <= 0 || i == len(path)-1 {
		return "", "", fmt.Errorf("%w: cannot find owner and repository in %q", ErrUnavailable, url)
	}
	return path[:i], path[i+1:], nil
}
