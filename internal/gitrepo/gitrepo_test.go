package gitrepo

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

func headHash(t *testing.T, repo *git.Repository) plumbing.Hash {
	t.Helper()
	head, err := repo.Head()
	if err != nil {
		t.Fatal(err)
	}
	return head.Hash()
}

func TestParseRemote(t *testing.T) {
	tests := []struct {
		url     string
		server  string
		owner   string
		repo    string
		wantErr bool
	}{
		{url: "https://github.com/octo/app.git", server: "github.com", owner: "octo", repo: "app"},
		{url: "https://github.com/octo/app", server: "github.com", owner: "octo", repo: "app"},
		{url: "https://github.example.com/team/lib.git", server: "github.example.com", owner: "team", repo: "lib"},
		{url: "git@github.com:octo/app.git", server: "github.com", wantErr: true},
		{url: "https://gitlab.com/octo/app.git", server: "github.com", wantErr: true},
		{url: "https://github.com/app.git", server: "github.com", wantErr: true},
	}

	for _, tt := range tests {
		owner, repo, err := ParseRemote(tt.url, tt.server)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseRemote(%s): expected error", tt.url)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRemote(%s): %v", tt.url, err)
			continue
		}
		if owner != tt.owner || repo != tt.repo {
			t.Errorf("ParseRemote(%s): want %s/%s got %s/%s", tt.url, tt.owner, tt.repo, owner, repo)
		}
	}
}

// initRepo creates a local repository with one commit and an origin remote.
func initRepo(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()

	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	_, err = repo.CreateRemote(&gitconfig.RemoteConfig{
		Name: git.DefaultRemoteName,
		URLs: []string{"https://github.com/octo/app.git"},
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("# app\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := wt.Add("README.md"); err != nil {
		t.Fatal(err)
	}
	sha, err := wt.Commit("initial commit", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	if err != nil {
		t.Fatal(err)
	}
	return dir, sha.String()
}

func TestOpenAndHead(t *testing.T) {
	dir, sha := initRepo(t)

	repo, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}

	got, err := repo.HeadSHA()
	if err != nil {
		t.Fatal(err)
	}
	if got != sha {
		t.Errorf("unexpected HEAD sha: want %s got %s", sha, got)
	}

	ref, err := repo.HeadRef()
	if err != nil {
		t.Fatal(err)
	}
	if ref != "refs/heads/master" && ref != "refs/heads/main" {
		t.Errorf("unexpected HEAD ref: %s", ref)
	}

	owner, name, err := repo.OwnerRepo("github.com")
	if err != nil {
		t.Fatal(err)
	}
	if owner != "octo" || name != "app" {
		t.Errorf("unexpected owner/repo: %s/%s", owner, name)
	}
}

func TestOpenMissing(t *testing.T) {
	if _, err := Open(t.TempDir()); err == nil {
		t.Error("expected error for a directory that is not a repository")
	}
}

func TestHeadRefDetached(t *testing.T) {
	dir, sha := initRepo(t)

	raw, err := git.PlainOpen(dir)
	if err != nil {
		t.Fatal(err)
	}
	wt, err := raw.Worktree()
	if err != nil {
		t.Fatal(err)
	}
	if err := wt.Checkout(&git.CheckoutOptions{Hash: headHash(t, raw)}); err != nil {
		t.Fatal(err)
	}

	repo, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := repo.HeadRef(); !errors.Is(err, ErrDetachedHead) {
		t.Errorf("expected ErrDetachedHead, got %v", err)
	}

	// the commit itself is still resolvable
	got, err := repo.HeadSHA()
	if err != nil {
		t.Fatal(err)
	}
	if got != sha {
		t.Errorf("unexpected sha: want %s got %s", sha, got)
	}
}
