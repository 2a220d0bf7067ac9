// Package depgraph reshapes a Conan dependency graph into the entries the
// GitHub Dependency Submission API accepts.
package depgraph

import (
	"github.com/github/conan-dependency-submission/internal/conan"
)

const (
	RelationshipDirect   = "direct"
	RelationshipIndirect = "indirect"

	ScopeRuntime     = "runtime"
	ScopeDevelopment = "development"
)

// Package is one resolved Conan package with its place in the graph.
type Package struct {
	ID       int
	Name     string
	Version  string
	Revision string

	// Scope is runtime or development; empty when the node carries no
	// context.
	Scope string

	// Relationship is direct or indirect; empty for unreachable nodes.
	Relationship string

	Metadata      map[string]string
	DependencyIDs []int

	children []*Package
}

// FromGraph converts decoded Conan nodes into packages, keyed by node
// index, and links them into a tree rooted at node 0 (the consumer).
// Relationship is assigned by depth: requirements of the root are direct,
// everything deeper is indirect. A package reachable at several depths
// reports the shallowest.
func FromGraph(g *conan.Graph) map[int]*Package {
	pkgs := make(map[int]*Package, len(g.Nodes))
	for index, node := range g.Nodes {
		scope := ""
		if node.Context != "" {
			scope = ScopeRuntime
			if node.Context == "build" {
				scope = ScopeDevelopment
			}
		}
		pkgs[index] = &Package{
			ID:            node.ID,
			Name:          node.Name,
			Version:       node.Version,
			Revision:      node.Revision,
			Scope:         scope,
			Metadata:      node.Metadata,
			DependencyIDs: node.Dependencies,
		}
	}
	link(pkgs)
	return pkgs
}

// link walks the graph from node 0, attaching children and assigning
// relationships breadth-first so the shallowest occurrence wins. Visited
// tracking keeps malformed graphs with cycles from looping.
func link(pkgs map[int]*Package) {
	root, ok := pkgs[0]
	if !ok {
		return
	}
	root.Relationship = RelationshipDirect

	visited := map[int]bool{0: true}
	queue := []*Package{root}

	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]

		for _, id := range parent.DependencyIDs {
			child, ok := pkgs[id]
			if !ok {
				continue
			}
			parent.children = append(parent.children, child)
			if visited[id] {
				continue
			}
			visited[id] = true
			if parent.ID == 0 {
				child.Relationship = RelationshipDirect
			} else {
				child.Relationship = RelationshipIndirect
			}
			queue = append(queue, child)
		}
	}
}
