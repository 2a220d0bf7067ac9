package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/github/conan-dependency-submission/config"
	"github.com/github/conan-dependency-submission/internal/conan"
	"github.com/github/conan-dependency-submission/internal/depgraph"
	"github.com/github/conan-dependency-submission/internal/env"
	"github.com/github/conan-dependency-submission/internal/gitrepo"
	"github.com/github/conan-dependency-submission/internal/submit"
	"github.com/github/conan-dependency-submission/internal/version"
)

const defaultServer = "github.com"

var submitOpts struct {
	githubServer string
	conanPath    string
	conanfile    string
	conanProfile string
	graphFile    string
	target       string
	sha          string
	correlator   string
	dryRun       bool
}

var submitCmd = &cobra.Command{
	Use:   "submit [repo-path]",
	Short: "Resolve a repository's Conan graph and submit it",
	Long: `Runs conan graph info against the repository's conanfile, maps the
resolved packages to pkg:conan Package URLs, and posts a snapshot to the
Dependency Submission API. With --dry-run the snapshot is printed instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runSubmitCmd,
}

// fallback picks the first non-empty value: flag, config file, default.
func fallback(flag, cfg, def string) string {
	if flag != "" {
		return flag
	}
	if cfg != "" {
		return cfg
	}
	return def
}

func runSubmitCmd(cmd *cobra.Command, args []string) error {
	log := newLogger()
	defer log.Sync()

	ctx := cmd.Context()
	repoPath := args[0]

	repo, err := gitrepo.Open(repoPath)
	if err != nil {
		return err
	}

	cfg, err := config.Load(repoPath)
	if err != nil {
		return err
	}

	server := fallback(submitOpts.githubServer, cfg.GithubServer, defaultServer)
	conanPath := fallback(submitOpts.conanPath, cfg.ConanPath, "conan")
	profile := fallback(submitOpts.conanProfile, cfg.ConanProfile, "")
	target := submitOpts.target
	if target == "" && cfg.Target != "" {
		target = filepath.Join(repoPath, cfg.Target)
	}
	if target == "" {
		target = repoPath
	}
	conanfile := submitOpts.conanfile
	if conanfile == "" && cfg.Conanfile != "" {
		// config paths are relative to the repository root
		conanfile = filepath.Join(repoPath, cfg.Conanfile)
	}

	owner, name, err := resolveRepository(repo, server)
	if err != nil {
		return err
	}
	log.Debug("repository identified",
		zap.String("owner", owner),
		zap.String("repo", name),
		zap.String("server", server))

	if conanfile == "" && submitOpts.graphFile == "" {
		conanfile, err = conan.FindConanfile(target)
		if err != nil {
			return err
		}
		log.Debug("conanfile found", zap.String("path", conanfile))
	}

	runner := conan.New(conanPath, profile, log)

	// detector version is best-effort when submitting a pre-made graph
	conanVersion, verr := runner.Version(ctx)

	var graph *conan.Graph
	manifestPath := conanfile
	if conanfile != "" {
		if verr != nil {
			return verr
		}
		if err := version.CheckConan(conanVersion); err != nil {
			return err
		}
		graph, err = runner.GraphInfo(ctx, conanfile)
		if err != nil {
			return err
		}
	} else {
		data, err := os.ReadFile(submitOpts.graphFile)
		if err != nil {
			return fmt.Errorf("cannot open graph file: %w", err)
		}
		graph, err = conan.ParseGraph(data)
		if err != nil {
			return err
		}
		manifestPath = submitOpts.graphFile
	}

	resolved := depgraph.Resolved(depgraph.FromGraph(graph))
	log.Debug("graph resolved", zap.Int("packages", len(resolved)))

	sha, err := resolveSHA(repo)
	if err != nil {
		return err
	}
	ref, err := resolveRef(repo)
	if err != nil {
		return err
	}

	sourceLocation, err := relativeTo(repoPath, manifestPath)
	if err != nil {
		return err
	}

	snapshot := submit.NewSnapshot(submit.Options{
		SHA:            sha,
		Ref:            ref,
		Correlator:     fallback(submitOpts.correlator, cfg.Correlator, ""),
		ManifestName:   filepath.Base(manifestPath),
		SourceLocation: sourceLocation,
		ConanVersion:   conanVersion,
	}, resolved)

	if submitOpts.dryRun {
		payload, err := json.MarshalIndent(snapshot, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(payload))
		log.Info("dry run, snapshot not submitted")
		return nil
	}

	token, err := env.Token()
	if err != nil {
		return err
	}

	client, err := submit.NewClient(token, server, owner, name, log)
	if err != nil {
		return err
	}
	return client.Submit(ctx, snapshot)
}

// resolveRepository prefers GITHUB_REPOSITORY from the Actions
// environment. Outside Actions the clone's origin remote identifies the
// repository and must be an HTTPS remote on the configured server.
func resolveRepository(repo *gitrepo.Repo, server string) (owner, name string, err error) {
	if owner, name, err := env.Repository(); err == nil {
		return owner, name, nil
	}
	return repo.OwnerRepo(server)
}

// resolveSHA prefers the --sha flag, then the Actions environment, then
// the local clone's HEAD.
func resolveSHA(repo *gitrepo.Repo) (string, error) {
	if submitOpts.sha != "" {
		return submitOpts.sha, nil
	}
	if sha, err := env.CommitSHA(); err == nil {
		return sha, nil
	}
	return repo.HeadSHA()
}

// resolveRef prefers the Actions environment, then the clone's branch. A
// detached HEAD outside Actions has no ref to submit under.
func resolveRef(repo *gitrepo.Repo) (string, error) {
	if ref, err := env.Ref(); err == nil {
		return ref, nil
	}
	ref, err := repo.HeadRef()
	if errors.Is(err, gitrepo.ErrDetachedHead) {
		return "", err
	}
	return ref, err
}

// relativeTo renders path relative to the repository root with forward
// slashes, the form the manifest file.source_location field expects.
func relativeTo(root, path string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

func init() {
	submitCmd.Flags().StringVar(&submitOpts.githubServer, "github-server", "", "GitHub server host (default github.com)")
	submitCmd.Flags().StringVar(&submitOpts.conanPath, "conan-path", "", "Path to the conan executable")
	submitCmd.Flags().StringVar(&submitOpts.conanfile, "conanfile", "", "Path to conanfile.py or conanfile.txt")
	submitCmd.Flags().StringVar(&submitOpts.conanProfile, "conan-profile", "", "Name of the Conan build profile to use")
	submitCmd.Flags().StringVar(&submitOpts.graphFile, "graph", "", "Path to a pre-made Conan graph JSON file")
	submitCmd.Flags().StringVar(&submitOpts.target, "target", "", "Directory to search for a conanfile")
	submitCmd.Flags().StringVar(&submitOpts.sha, "sha", "", "Commit SHA to submit the graph for")
	submitCmd.Flags().StringVar(&submitOpts.correlator, "correlator", "", "Snapshot job correlator")
	submitCmd.Flags().BoolVar(&submitOpts.dryRun, "dry-run", false, "Build and print the snapshot without submitting")
	rootCmd.AddCommand(submitCmd)
}
