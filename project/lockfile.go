package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LockFileName is the resolved-package lock filename.
const LockFileName = "talon.lock"

// Artifact kinds. Native artifacts are platform executables run directly;
// portable artifacts are wasm modules hosted through the talon launcher.
const (
	ArtifactNative   = "native"
	ArtifactPortable = "portable"
)

// Artifact is one runnable file a package ships, relative to the package
// install directory.
type Artifact struct {
	Path      string `yaml:"path"`
	Kind      string `yaml:"kind"`
	Framework string `yaml:"framework,omitempty"`
}

// Package is one resolved entry in the lock file.
type Package struct {
	Name         string     `yaml:"name"`
	Version      string     `yaml:"version"`
	Type         string     `yaml:"type"` // "tool" or "library"
	Artifacts    []Artifact `yaml:"artifacts,omitempty"`
	Dependencies []string   `yaml:"dependencies,omitempty"` // "name/version" identities
}

// LockFile is the parsed talon.lock: the fully resolved package graph for
// a project, produced by the suite's restore step.
type LockFile struct {
	Version  int       `yaml:"version"`
	Packages []Package `yaml:"packages"`
}

// LoadLockFile reads and parses talon.lock from dir.
func LoadLockFile(dir string) (*LockFile, error) {
	path := filepath.Join(dir, LockFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", LockFileName, err)
	}

	var lf LockFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &lf, nil
}

// Package returns the lock entry matching name, case-insensitively.
func (lf *LockFile) Package(name string) (*Package, bool) {
	for i := range lf.Packages {
		if strings.EqualFold(lf.Packages[i].Name, name) {
			return &lf.Packages[i], true
		}
	}
	return nil, false
}

// Closure returns pkg plus every package reachable through its
// dependencies, in lock-file order.
func (lf *LockFile) Closure(pkg *Package) []*Package {
	seen := map[string]bool{identity(pkg.Name, pkg.Version): true}
	queue := []*Package{pkg}
	closure := []*Package{pkg}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, dep := range current.Dependencies {
			if seen[strings.ToLower(dep)] {
				continue
			}
			seen[strings.ToLower(dep)] = true
			name, version, ok := strings.Cut(dep, "/")
			if !ok {
				continue
			}
			for i := range lf.Packages {
				p := &lf.Packages[i]
				if strings.EqualFold(p.Name, name) && p.Version == version {
					closure = append(closure, p)
					queue = append(queue, p)
					break
				}
			}
		}
	}

	return closure
}

// InstallPath returns the install directory for a package under the
// packages root, following the store convention
// <root>/<name-lowercase>/<version>.
func InstallPath(packagesRoot, name, version string) string {
	return filepath.Join(packagesRoot, strings.ToLower(name), version)
}

func identity(name, version string) string {
	return strings.ToLower(name) + "/" + version
}
