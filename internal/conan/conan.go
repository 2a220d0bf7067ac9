// Package conan drives the Conan CLI and decodes its dependency graph
// output.
package conan

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

var (
	ErrConanfileNotFound = errors.New("conan: conanfile not found")
	ErrEmptyGraph        = errors.New("conan: graph has no nodes")
)

// conan prefixes fatal missing-file errors with this on stderr.
const missingFilePrefix = "ERROR: No such file or directory:"

// Graph is the decoded output of `conan graph info`, nodes keyed by their
// position in the graph. Node 0 is the consumer (the conanfile itself).
type Graph struct {
	Nodes map[int]*Node
}

// ParseGraph decodes a Conan graph-info JSON document.
func ParseGraph(data []byte) (*Graph, error) {
	var out graphOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("conan: graph is not valid JSON: %w", err)
	}
	if len(out.Graph.Nodes) == 0 {
		return nil, ErrEmptyGraph
	}

	nodes := make(map[int]*Node, len(out.Graph.Nodes))
	for index, node := range out.Graph.Nodes {
		i, err := strconv.Atoi(index)
		if err != nil {
			return nil, fmt.Errorf("conan: bad node index %q: %w", index, err)
		}
		nodes[i] = node
	}
	return &Graph{Nodes: nodes}, nil
}

// Conan invokes the conan executable. The subprocess runs with a scrubbed
// environment (PATH only) so repository-supplied recipes cannot read
// workflow secrets.
type Conan struct {
	path    string
	profile string
	log     *zap.Logger
}

// New returns a Conan runner for the given executable path. An empty path
// defaults to "conan" on PATH.
func New(path, profile string, log *zap.Logger) *Conan {
	if path == "" {
		path = "conan"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Conan{path: path, profile: profile, log: log}
}

func (c *Conan) command(ctx context.Context, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, c.path, args...)
	cmd.Env = []string{"PATH=" + os.Getenv("PATH")}
	return cmd
}

// GraphInfo runs `conan graph info <conanfile> --format=json` and decodes
// the result. Conan exits non-zero on some version conflicts but still
// emits a usable graph, so the exit code alone is not fatal; only output
// that fails to parse is.
func (c *Conan) GraphInfo(ctx context.Context, conanfile string) (*Graph, error) {
	if _, err := os.Stat(conanfile); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConanfileNotFound, conanfile)
	}

	args := []string{"graph", "info", conanfile, "--format=json"}
	if c.profile != "" {
		args = append(args, "--profile:build="+c.profile)
	}

	cmd := c.command(ctx, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	errOutput := strings.TrimSpace(stderr.String())
	if err != nil {
		if strings.HasPrefix(errOutput, missingFilePrefix) {
			return nil, fmt.Errorf("%w: %s", ErrConanfileNotFound, conanfile)
		}
		// conflicts raise errors but still generate a graph
		c.log.Debug("conan graph info exited non-zero",
			zap.Error(err),
			zap.String("stderr", errOutput))
	}

	graph, perr := ParseGraph(stdout.Bytes())
	if perr != nil {
		if err != nil {
			return nil, fmt.Errorf("conan: graph info failed: %w: %s", err, errOutput)
		}
		return nil, perr
	}
	return graph, nil
}

// Version runs `conan --version` and returns the reported version string,
// e.g. "2.4.1".
func (c *Conan) Version(ctx context.Context) (string, error) {
	out, err := c.command(ctx, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("conan: version check failed: %w", err)
	}
	// output format: "Conan version 2.4.1"
	fields := strings.Fields(strings.TrimSpace(string(out)))
	if len(fields) < 3 {
		return "", fmt.Errorf("conan: unexpected version output %q", string(out))
	}
	return fields[len(fields)-1], nil
}
