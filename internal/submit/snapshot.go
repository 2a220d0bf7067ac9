// Package submit builds Dependency Submission API snapshots and posts them
// to GitHub.
package submit

import (
	"time"

	"github.com/google/uuid"

	"github.com/github/conan-dependency-submission/internal/depgraph"
)

const (
	// DefaultCorrelator groups snapshots from successive runs of this
	// tool on the same ref.
	DefaultCorrelator = "conan-dependency-submission"

	detectorName = "conan"
	detectorURL  = "https://conan.io/"
)

// Snapshot is the Dependency Submission API payload, one manifest per
// conanfile.
type Snapshot struct {
	Version   int                 `json:"version"`
	Sha       string              `json:"sha"`
	Ref       string              `json:"ref"`
	Job       Job                 `json:"job"`
	Detector  Detector            `json:"detector"`
	Scanned   string              `json:"scanned"`
	Manifests map[string]Manifest `json:"manifests"`
}

type Job struct {
	Correlator string `json:"correlator"`
	ID         string `json:"id"`
}

type Detector struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	URL     string `json:"url"`
}

type Manifest struct {
	Name     string                         `json:"name"`
	File     ManifestFile                   `json:"file"`
	Resolved map[string]depgraph.Dependency `json:"resolved"`
}

type ManifestFile struct {
	SourceLocation string `json:"source_location"`
}

// Options carries everything a snapshot is keyed and labelled by.
type Options struct {
	// SHA and Ref identify the commit the dependencies were resolved at.
	SHA string
	Ref string

	// Correlator defaults to DefaultCorrelator when empty.
	Correlator string

	// ManifestName is the conanfile's base name; SourceLocation its path
	// relative to the repository root.
	ManifestName   string
	SourceLocation string

	// ConanVersion labels the detector; empty becomes "unknown".
	ConanVersion string
}

// NewSnapshot assembles a snapshot around the resolved dependency map.
// The job ID is fresh per invocation; the snapshot version stays 0 since
// CI runs carry no durable counter to order snapshots by.
func NewSnapshot(opts Options, resolved map[string]depgraph.Dependency) *Snapshot {
	correlator := opts.Correlator
	if correlator == "" {
		correlator = DefaultCorrelator
	}
	conanVersion := opts.ConanVersion
	if conanVersion == "" {
		conanVersion = "unknown"
	}

	return &Snapshot{
		Version: 0,
		Sha:     opts.SHA,
		Ref:     opts.Ref,
		Job: Job{
			Correlator: correlator,
			ID:         uuid.NewString(),
		},
		Detector: Detector{
			Name:    detectorName,
			Version: conanVersion,
			URL:     detectorURL,
		},
		Scanned: time.Now().UTC().Format(time.RFC3339),
		Manifests: map[string]Manifest{
			opts.ManifestName: {
				Name: opts.ManifestName,
				File: ManifestFile{
					SourceLocation: opts.SourceLocation,
				},
				Resolved: resolved,
			},
		},
	}
}
