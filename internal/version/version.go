// Package version gates the Conan CLI version this tool understands.
package version

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Tool is the conan-dependency-submission release version.
const Tool = "1.0.0"

// minimumConan is the oldest Conan whose graph-info JSON format we parse.
// Conan 1.x emits a different document and would be silently misread.
var minimumConan = semver.MustParse("2.0.0")

// CheckConan returns an error when the reported Conan version predates the
// graph JSON format this tool parses.
func CheckConan(reported string) error {
	v, err := semver.NewVersion(reported)
	if err != nil {
		return fmt.Errorf("version: cannot parse conan version %q: %w", reported, err)
	}
	if v.LessThan(minimumConan) {
		return fmt.Errorf("version: conan %s is unsupported, need %s or newer", reported, minimumConan)
	}
	return nil
}
