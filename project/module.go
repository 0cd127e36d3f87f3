package project

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"golang.org/x/mod/modfile"
)

// ModuleInfo is the identity a Go project declares in go.mod.
type ModuleInfo struct {
	Path      string // module path, e.g. "github.com/user/repo"
	GoVersion string // go directive, e.g. "1.25"
}

// Name returns the last element of the module path. Build output and
// published artifacts take this name when the manifest declares none.
func (m *ModuleInfo) Name() string {
	return path.Base(m.Path)
}

// DetectModule parses dir's go.mod. Talon projects are Go projects, so
// this is how a project identifies itself when talon.yml carries no name,
// and how FindRoot recognizes a manifest-less project root.
func DetectModule(dir string) (*ModuleInfo, error) {
	file := filepath.Join(dir, "go.mod")
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("no Go module at %s: %w", dir, err)
	}

	// Lax parse: only the module and go directives matter here.
	mf, err := modfile.ParseLax(file, data, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid go.mod in %s: %w", dir, err)
	}
	if mf.Module == nil || mf.Module.Mod.Path == "" {
		return nil, fmt.Errorf("go.mod in %s has no module directive", dir)
	}

	info := &ModuleInfo{Path: mf.Module.Mod.Path}
	if mf.Go != nil {
		info.GoVersion = mf.Go.Version
	}
	return info, nil
}

// Identity returns the name a project is known by: the manifest's project
// name when set, else the module name from go.mod, else the directory
// name.
func Identity(dir string) string {
	if m, err := LoadManifest(dir); err == nil && m.Project.Name != "" {
		return m.Project.Name
	}
	if info, err := DetectModule(dir); err == nil {
		return info.Name()
	}
	return filepath.Base(dir)
}
