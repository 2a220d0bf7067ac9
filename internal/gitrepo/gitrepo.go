// Package gitrepo reads commit and remote metadata from a local clone.
// It backs the GitHub Actions environment: when GITHUB_SHA or GITHUB_REF
// are absent the clone itself is the source of truth.
package gitrepo

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

var ErrDetachedHead = errors.New("gitrepo: detached HEAD and no GITHUB_REF set")

// Repo wraps an opened local repository.
type Repo struct {
	repo *git.Repository
}

// Open opens the repository at path.
func Open(path string) (*Repo, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("gitrepo: cannot open %s: %w", path, err)
	}
	return &Repo{repo: repo}, nil
}

// HeadSHA returns the commit hash HEAD points at.
func (r *Repo) HeadSHA() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("gitrepo: cannot resolve HEAD: %w", err)
	}
	return head.Hash().String(), nil
}

// HeadRef returns the fully qualified branch ref HEAD is on, e.g.
// "refs/heads/main". A detached HEAD has no branch to report.
func (r *Repo) HeadRef() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("gitrepo: cannot resolve HEAD: %w", err)
	}
	if head.Name() == plumbing.HEAD || !head.Name().IsBranch() {
		return "", ErrDetachedHead
	}
	return head.Name().String(), nil
}

// RemoteURL returns the first URL of the origin remote.
func (r *Repo) RemoteURL() (string, error) {
	remote, err := r.repo.Remote(git.DefaultRemoteName)
	if err != nil {
		return "", fmt.Errorf("gitrepo: cannot find remote: %w", err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("gitrepo: remote %s has no URL", git.DefaultRemoteName)
	}
	return urls[0], nil
}

// OwnerRepo parses the origin remote into owner and repository name,
// requiring an HTTPS remote on the given server host.
func (r *Repo) OwnerRepo(server string) (owner, repo string, err error) {
	raw, err := r.RemoteURL()
	if err != nil {
		return "", "", err
	}
	return ParseRemote(raw, server)
}

// ParseRemote splits an HTTPS remote URL into owner and repository name
// and validates it points at the expected server.
func ParseRemote(raw, server string) (owner, repo string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("gitrepo: bad remote URL %q: %w", raw, err)
	}
	if u.Scheme != "https" || u.Host != server {
		return "", "", fmt.Errorf("gitrepo: remote %q is not an HTTPS remote on %s", raw, server)
	}
	path := strings.TrimSuffix(strings.Trim(u.Path, "/"), ".git")
	owner, repo, ok := strings.Cut(path, "/")
	if !ok || owner == "" || repo == "" {
		return "", "", fmt.Errorf("gitrepo: cannot parse owner/repo from %q", raw)
	}
	return owner, repo, nil
}
