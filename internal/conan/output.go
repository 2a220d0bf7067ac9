package conan

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// graphOutput mirrors the top-level shape of `conan graph info --format=json`.
type graphOutput struct {
	Graph struct {
		Nodes map[string]*Node `json:"nodes"`
	} `json:"graph"`
}

// complexKeys are node fields that are nested objects; they never become
// package metadata.
var complexKeys = map[string]struct{}{
	"ref":                 {},
	"settings":            {},
	"cpp_info":            {},
	"options_definitions": {},
	"default_options":     {},
	"options":             {},
	"dependencies":        {},
}

// Node is one resolved package in the Conan dependency graph.
type Node struct {
	ID       int
	Name     string
	Version  string
	Revision string
	Context  string

	// Metadata holds the node's settings, options and scalar fields,
	// flattened to strings.
	Metadata map[string]string

	// Dependencies lists the node IDs this package requires directly.
	Dependencies []int
}

// UnmarshalJSON flattens a Conan graph node. The ref field carries
// "name/version#revision"; settings, options and remaining scalar fields
// are folded into Metadata the way the Submission API expects qualifiers.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	n.Metadata = map[string]string{}

	if id, ok := raw["id"]; ok {
		n.ID = toInt(id)
	}

	ref, _ := raw["ref"].(string)
	name, remainder, ok := strings.Cut(ref, "/")
	n.Name = name
	if ok {
		version, revision, hasRev := strings.Cut(remainder, "#")
		n.Version = version
		if hasRev {
			n.Revision = revision
		}
	}

	for _, key := range []string{"settings", "options"} {
		if m, ok := raw[key].(map[string]any); ok {
			for k, v := range m {
				if s, ok := toScalar(v); ok {
					n.Metadata[k] = s
				}
			}
		}
	}

	for k, v := range raw {
		if _, skip := complexKeys[k]; skip {
			continue
		}
		if s, ok := toScalar(v); ok {
			n.Metadata[k] = s
		}
	}

	n.Context, _ = raw["context"].(string)

	if deps, ok := raw["dependencies"].(map[string]any); ok {
		for id := range deps {
			v, err := strconv.Atoi(id)
			if err != nil {
				continue
			}
			n.Dependencies = append(n.Dependencies, v)
		}
		sort.Ints(n.Dependencies)
	}

	return nil
}

func toInt(v any) int {
	switch t := v.(type) {
	case string:
		n, _ := strconv.Atoi(t)
		return n
	case float64:
		return int(t)
	}
	return 0
}

// toScalar stringifies JSON scalar values; nulls and nested values are
// dropped.
func toScalar(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case bool:
		return strconv.FormatBool(t), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	}
	return "", false
}
