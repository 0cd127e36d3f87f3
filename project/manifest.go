package project

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ManifestName is the project manifest filename.
const ManifestName = "talon.yml"

// ToolReference is one tool a project declares in its manifest.
type ToolReference struct {
	Name      string `yaml:"name"`
	Version   string `yaml:"version"`
	Framework string `yaml:"framework,omitempty"` // overrides the project default
}

// Manifest is the parsed talon.yml.
type Manifest struct {
	Project struct {
		Name      string `yaml:"name"`
		Framework string `yaml:"framework"`
	} `yaml:"project"`
	Tools []ToolReference `yaml:"tools"`
}

// LoadManifest reads and parses talon.yml from dir. A missing manifest is
// not an error for resolution purposes, so callers should check
// os.IsNotExist on the wrapped error.
func LoadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ManifestName, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	for _, tool := range m.Tools {
		if tool.Name == "" {
			return nil, fmt.Errorf("%s declares a tool with no name", path)
		}
	}

	return &m, nil
}

// FindRoot walks up from startDir looking for a project root: the nearest
// directory containing talon.yml, or failing that the nearest Go module
// root. Returns an empty string when neither is found.
func FindRoot(startDir string) string {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}

	moduleRoot := ""
	for {
		if _, err := os.Stat(filepath.Join(dir, ManifestName)); err == nil {
			return dir
		}
		if moduleRoot == "" {
			if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
				moduleRoot = dir
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return moduleRoot
		}
		dir = parent
	}
}
