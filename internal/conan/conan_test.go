package conan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// fakeConan writes a stand-in conan executable that answers --version and
// emits the fixture graph for everything else, exiting with the given
// code. Conflict runs exit non-zero while still printing a graph, which
// GraphInfo must tolerate.
func fakeConan(t *testing.T, exitCode int) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake conan script requires a POSIX shell")
	}

	fixture, err := filepath.Abs(filepath.Join("testdata", "graph.json"))
	if err != nil {
		t.Fatal(err)
	}

	script := fmt.Sprintf(`#!/bin/sh
if [ "$1" = "--version" ]; then
	echo "Conan version 2.4.1"
	exit 0
fi
cat %q
echo "WARN: version conflict" >&2
exit %d
`, fixture, exitCode)

	path := filepath.Join(t.TempDir(), "conan")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestVersion(t *testing.T) {
	c := New(fakeConan(t, 0), "", nil)
	got, err := c.Version(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got != "2.4.1" {
		t.Errorf("unexpected version: want 2.4.1 got %s", got)
	}
}

func TestGraphInfo(t *testing.T) {
	conanfile := filepath.Join(t.TempDir(), "conanfile.txt")
	if err := os.WriteFile(conanfile, []byte("[requires]\nzlib/1.3.1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(fakeConan(t, 0), "", nil)
	graph, err := c.GraphInfo(context.Background(), conanfile)
	if err != nil {
		t.Fatal(err)
	}
	if len(graph.Nodes) != 4 {
		t.Errorf("unexpected node count: %d", len(graph.Nodes))
	}
}

func TestGraphInfoConflictExit(t *testing.T) {
	conanfile := filepath.Join(t.TempDir(), "conanfile.txt")
	if err := os.WriteFile(conanfile, []byte("[requires]\nzlib/1.3.1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	// exit 1 with a parseable graph on stdout still succeeds
	c := New(fakeConan(t, 1), "", nil)
	graph, err := c.GraphInfo(context.Background(), conanfile)
	if err != nil {
		t.Fatal(err)
	}
	if len(graph.Nodes) != 4 {
		t.Errorf("unexpected node count: %d", len(graph.Nodes))
	}
}

func TestGraphInfoMissingConanfile(t *testing.T) {
	c := New(fakeConan(t, 0), "", nil)
	_, err := c.GraphInfo(context.Background(), filepath.Join(t.TempDir(), "conanfile.py"))
	if !errors.Is(err, ErrConanfileNotFound) {
		t.Errorf("expected ErrConanfileNotFound, got %v", err)
	}
}

func TestFindConanfile(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".git", "objects"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".git", "conanfile.py"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "src"), 0o755); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "src", "conanfile.txt")
	if err := os.WriteFile(want, []byte("[requires]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := FindConanfile(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("unexpected conanfile: want %s got %s", want, got)
	}
}

func TestFindConanfileNotFound(t *testing.T) {
	_, err := FindConanfile(t.TempDir())
	if !errors.Is(err, ErrConanfileNotFound) {
		t.Errorf("expected ErrConanfileNotFound, got %v", err)
	}
}
