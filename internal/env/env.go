// Package env reads the GitHub Actions environment this tool runs in.
package env

import (
	"os"
	"strings"
)

// tokenVars are checked in order; the first non-empty one wins.
var tokenVars = []string{"GITHUB_TOKEN", "GH_TOKEN"}

// Token returns the GitHub API token from GITHUB_TOKEN or GH_TOKEN.
func Token() (string, error) {
	for _, name := range tokenVars {
		if token := os.Getenv(name); token != "" {
			return token, nil
		}
	}
	return "", newEnvError("GITHUB_TOKEN or GH_TOKEN")
}

// Repository splits GITHUB_REPOSITORY into owner and repo name.
func Repository() (owner, repo string, err error) {
	full := os.Getenv("GITHUB_REPOSITORY")
	owner, repo, ok := strings.Cut(full, "/")
	if !ok || owner == "" || repo == "" {
		return "", "", newEnvError("GITHUB_REPOSITORY")
	}
	return owner, repo, nil
}

// CommitSHA returns the commit being scanned, from GITHUB_SHA.
func CommitSHA() (string, error) {
	sha := os.Getenv("GITHUB_SHA")
	if sha == "" {
		return "", newEnvError("GITHUB_SHA")
	}
	return sha, nil
}

// Ref returns the fully qualified git ref, from GITHUB_REF.
func Ref() (string, error) {
	ref := os.Getenv("GITHUB_REF")
	if ref == "" {
		return "", newEnvError("GITHUB_REF")
	}
	return ref, nil
}
