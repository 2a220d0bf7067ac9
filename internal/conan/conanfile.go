package conan

import (
	"io/fs"
	"path/filepath"
)

// conanfileNames in preference order; conanfile.py can declare a package
// name and version, conanfile.txt cannot.
var conanfileNames = []string{"conanfile.py", "conanfile.txt"}

// FindConanfile walks target looking for a conanfile.py or conanfile.txt
// and returns the first match. Directories named ".git" are skipped.
func FindConanfile(target string) (string, error) {
	var found string
	err := filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return fs.SkipDir
			}
			return nil
		}
		for _, name := range conanfileNames {
			if d.Name() == name {
				found = path
				return fs.SkipAll
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if found == "" {
		return "", ErrConanfileNotFound
	}
	return found, nil
}
