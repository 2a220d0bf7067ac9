package depgraph

import "sort"

// rootPackageName is the synthetic ref Conan gives an anonymous consumer
// (a conanfile.txt or a nameless conanfile.py). It is not a real package
// and never appears in the manifest.
const rootPackageName = "conanfile"

// Dependency is one resolved entry in a Dependency Submission manifest.
type Dependency struct {
	PackageURL   string            `json:"package_url"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	Relationship string            `json:"relationship,omitempty"`
	Scope        string            `json:"scope,omitempty"`
	Dependencies []string          `json:"dependencies"`
}

// Resolved flattens linked packages into the manifest's resolved map,
// keyed by package name. Refless nodes and the synthetic consumer root are
// dropped.
func Resolved(pkgs map[int]*Package) map[string]Dependency {
	resolved := make(map[string]Dependency, len(pkgs))
	for _, pkg := range pkgs {
		if pkg.Name == "" || pkg.Name == rootPackageName {
			continue
		}
		resolved[pkg.Name] = makeDependency(pkg)
	}
	return resolved
}

func makeDependency(pkg *Package) Dependency {
	dep := Dependency{
		PackageURL:   pkg.PURL(),
		Relationship: pkg.Relationship,
		Scope:        pkg.Scope,
		Dependencies: childPURLs(pkg),
	}
	for key := range notOKKeys {
		if value, ok := pkg.Metadata[key]; ok {
			if dep.Metadata == nil {
				dep.Metadata = map[string]string{}
			}
			dep.Metadata[key] = value
		}
	}
	return dep
}

// childPURLs lists the direct requirements as bare purls, deduplicated and
// sorted so the payload is deterministic.
func childPURLs(pkg *Package) []string {
	seen := map[string]struct{}{}
	purls := make([]string, 0, len(pkg.children))
	for _, child := range pkg.children {
		purl := child.RefPURL()
		if _, dup := seen[purl]; dup {
			continue
		}
		seen[purl] = struct{}{}
		purls = append(purls, purl)
	}
	sort.Strings(purls)
	return purls
}
