// Package config parses the optional .conan-submit.yml file that pins
// per-repository defaults for the submitter. Command-line flags override
// anything set here.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is looked up at the repository root.
const FileName = ".conan-submit.yml"

type Config struct {
	// Conanfile is a path relative to the repository root.
	Conanfile string `yaml:"conanfile"`

	// Target narrows the conanfile search to one directory.
	Target string `yaml:"target"`

	ConanPath    string `yaml:"conan-path"`
	ConanProfile string `yaml:"conan-profile"`
	GithubServer string `yaml:"github-server"`

	// Correlator overrides the snapshot job correlator; useful when one
	// repository submits several independent graphs.
	Correlator string `yaml:"correlator"`
}

// Parse reads and decodes a config file.
func Parse(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: cannot parse %s: %w", path, err)
	}
	return cfg, nil
}

// Load reads the config file from the repository root. A missing file is
// not an error, just an empty config.
func Load(repoRoot string) (Config, error) {
	cfg, err := Parse(filepath.Join(repoRoot, FileName))
	if os.IsNotExist(err) {
		return Config{}, nil
	}
	return cfg, err
}
