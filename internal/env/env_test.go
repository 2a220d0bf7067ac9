package env

import "testing"

func TestToken(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GH_TOKEN", "")

	if _, err := Token(); err == nil {
		t.Error("expected error when no token is set")
	}

	t.Setenv("GH_TOKEN", "gh-token")
	token, err := Token()
	if err != nil {
		t.Fatal(err)
	}
	if token != "gh-token" {
		t.Errorf("unexpected token: %s", token)
	}

	// GITHUB_TOKEN wins over GH_TOKEN
	t.Setenv("GITHUB_TOKEN", "github-token")
	token, _ = Token()
	if token != "github-token" {
		t.Errorf("unexpected token: %s", token)
	}
}

func TestRepository(t *testing.T) {
	t.Setenv("GITHUB_REPOSITORY", "octo/app")
	owner, repo, err := Repository()
	if err != nil {
		t.Fatal(err)
	}
	if owner != "octo" || repo != "app" {
		t.Errorf("unexpected repository: %s/%s", owner, repo)
	}

	t.Setenv("GITHUB_REPOSITORY", "invalid")
	if _, _, err := Repository(); err == nil {
		t.Error("expected error for malformed GITHUB_REPOSITORY")
	}
}

func TestCommitSHAAndRef(t *testing.T) {
	t.Setenv("GITHUB_SHA", "")
	t.Setenv("GITHUB_REF", "")

	if _, err := CommitSHA(); err == nil {
		t.Error("expected error when GITHUB_SHA is unset")
	}
	if _, err := Ref(); err == nil {
		t.Error("expected error when GITHUB_REF is unset")
	}

	t.Setenv("GITHUB_SHA", "adc83b19e793491b1c6ea0fd8b46cd9f32e592fc")
	t.Setenv("GITHUB_REF", "refs/heads/main")

	sha, _ := CommitSHA()
	if sha != "adc83b19e793491b1c6ea0fd8b46cd9f32e592fc" {
		t.Errorf("unexpected sha: %s", sha)
	}
	ref, _ := Ref()
	if ref != "refs/heads/main" {
		t.Errorf("unexpected ref: %s", ref)
	}
}
