// Package depsfile generates the runtime dependency manifest a portable
// tool artifact is hosted with. The manifest is derived deterministically
// from the project lock file, the tool identity, and the target framework,
// so regenerating it always produces identical content.
package depsfile

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/simonhull/firebird-suite/talon/project"
)

// Entry is one runtime dependency of the hosted tool.
type Entry struct {
	Name      string   `yaml:"name"`
	Version   string   `yaml:"version"`
	Artifacts []string `yaml:"artifacts,omitempty"` // paths relative to the package install dir
}

// File is the generated dependency manifest.
type File struct {
	Tool struct {
		Name      string `yaml:"name"`
		Version   string `yaml:"version"`
		Framework string `yaml:"framework"`
	} `yaml:"tool"`
	Runtime []Entry `yaml:"runtime"`
}

// Name returns the deps-file name for a tool.
func Name(toolName string) string {
	return toolName + ".deps.yml"
}

// Build computes the manifest for a tool from the lock file. The runtime
// section lists the tool's dependency closure, filtered to artifacts
// matching the target framework.
func Build(lock *project.LockFile, pkg *project.Package, framework string) *File {
	f := &File{}
	f.Tool.Name = pkg.Name
	f.Tool.Version = pkg.Version
	f.Tool.Framework = framework

	for _, dep := range lock.Closure(pkg) {
		entry := Entry{Name: dep.Name, Version: dep.Version}
		for _, a := range dep.Artifacts {
			if a.Framework == "" || a.Framework == framework {
				entry.Artifacts = append(entry.Artifacts, a.Path)
			}
		}
		f.Runtime = append(f.Runtime, entry)
	}

	return f
}

// Generate writes the manifest for pkg to targetPath unless it already
// exists. The write goes to a temp file in the target directory followed by
// a rename, so a partially written manifest is never observable at
// targetPath, and concurrent generation attempts for the same path are
// safe: whichever rename lands first wins and the content is identical.
func Generate(lock *project.LockFile, pkg *project.Package, framework, targetPath string) error {
	if _, err := os.Stat(targetPath); err == nil {
		return nil
	}

	data, err := yaml.Marshal(Build(lock, pkg, framework))
	if err != nil {
		return fmt.Errorf("unable to generate deps file %s: %w", targetPath, err)
	}

	dir := filepath.Dir(targetPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("unable to generate deps file %s: %w", targetPath, err)
	}

	tmp, err := os.CreateTemp(dir, ".deps-*")
	if err != nil {
		return fmt.Errorf("unable to generate deps file %s: %w", targetPath, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("unable to generate deps file %s: %w", targetPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("unable to generate deps file %s: %w", targetPath, err)
	}

	if err := os.Rename(tmpName, targetPath); err != nil {
		os.Remove(tmpName)
		// A concurrent generator beat us to the rename. The content is
		// deterministic, so the file that landed is the file we wanted.
		if _, statErr := os.Stat(targetPath); statErr == nil {
			return nil
		}
		return fmt.Errorf("unable to generate deps file %s: %w", targetPath, err)
	}

	return nil
}

// Load reads a generated manifest back. Used by the launcher's exec path
// to recover probing information.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read deps file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse deps file %s: %w", path, err)
	}
	return &f, nil
}
