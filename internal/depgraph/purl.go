package depgraph

import (
	"github.com/package-url/packageurl-go"
)

// notOKKeys are metadata keys the Submission API rejects as purl
// qualifiers; they ride along in the dependency metadata object instead.
var notOKKeys = map[string]struct{}{
	"386": {},
}

// revisionQualifier is the conventional purl qualifier for a Conan recipe
// revision.
const revisionQualifier = "rrev"

// PURL renders the package as a pkg:conan purl with its settings, options
// and revision as qualifiers.
func (p *Package) PURL() string {
	qualifiers := make(map[string]string, len(p.Metadata)+1)
	for key, value := range p.Metadata {
		if _, notOK := notOKKeys[key]; notOK {
			continue
		}
		qualifiers[key] = value
	}
	if p.Revision != "" {
		qualifiers[revisionQualifier] = p.Revision
	}
	return packageurl.NewPackageURL(
		packageurl.TypeConan, "", p.Name, p.Version,
		packageurl.QualifiersFromMap(qualifiers), "",
	).ToString()
}

// RefPURL renders the bare name@version purl used when the package appears
// in another package's dependency list.
func (p *Package) RefPURL() string {
	return packageurl.NewPackageURL(
		packageurl.TypeConan, "", p.Name, p.Version, nil, "",
	).ToString()
}
