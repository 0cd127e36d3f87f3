package resolve

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/simonhull/firebird-suite/talon/config"
	"github.com/simonhull/firebird-suite/talon/depsfile"
	"github.com/simonhull/firebird-suite/talon/project"
)

// WorkspaceToolsDir is the per-project directory holding the workspace
// tools manifest, tools shared across the workspace rather than declared
// by the project itself.
const WorkspaceToolsDir = ".talon"

// ProjectToolsResolver resolves tools declared by the project manifest
// (and the workspace tools manifest) through the package store. Portable
// artifacts are retargeted through the launcher's exec form, generating
// the tool's deps file on first use.
type ProjectToolsResolver struct {
	settings *config.Settings
	platform *Platform
	muxer    string
}

// NewProjectToolsResolver builds the resolver.
func NewProjectToolsResolver(settings *config.Settings, platform *Platform, muxer string) *ProjectToolsResolver {
	return &ProjectToolsResolver{settings: settings, platform: platform, muxer: muxer}
}

// Resolve maps a declared tool reference to a runnable spec.
func (p *ProjectToolsResolver) Resolve(args *Arguments) (*Spec, error) {
	if args.ProjectDirectory == "" {
		return nil, nil
	}

	ref, strategy, framework, err := p.findReference(args)
	if err != nil || ref == nil {
		return nil, err
	}

	lock, err := project.LoadLockFile(args.ProjectDirectory)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("tool %q is declared but %s is missing; run restore first", ref.Name, project.LockFileName)
		}
		return nil, err
	}

	pkg, ok := lock.Package(ref.Name)
	if !ok || pkg.Version != ref.Version {
		return nil, fmt.Errorf("tool %q %s is not in %s; run restore first", ref.Name, ref.Version, project.LockFileName)
	}

	installDir := project.InstallPath(p.settings.PackagesRoot, pkg.Name, pkg.Version)
	artifact := pickArtifact(pkg, framework)
	if artifact == nil {
		return nil, fmt.Errorf("tool %q ships no artifact for framework %q", ref.Name, framework)
	}

	artifactPath := filepath.Join(installDir, artifact.Path)

	if artifact.Kind == project.ArtifactNative {
		return p.platform.CreateSpec(artifactPath, args.Args, strategy), nil
	}

	depsPath := filepath.Join(installDir, depsfile.Name(pkg.Name))
	if err := depsfile.Generate(lock, pkg, framework, depsPath); err != nil {
		return nil, err
	}

	runtimeConfig := filepath.Join(installDir, pkg.Name+".runtimeconfig.yml")
	if _, err := os.Stat(runtimeConfig); err != nil {
		runtimeConfig = ""
	}

	return muxerExecSpec(p.muxer, artifactPath, depsPath, runtimeConfig, p.settings.PackagesRoot, args.Args, strategy), nil
}

// findReference looks the command up in the project manifest first, then
// in the workspace tools manifest, and reports which strategy tag applies.
func (p *ProjectToolsResolver) findReference(args *Arguments) (*project.ToolReference, Strategy, string, error) {
	manifest, err := project.LoadManifest(args.ProjectDirectory)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, StrategyNone, "", err
	}

	defaultFramework := args.TargetFramework
	if manifest != nil {
		if defaultFramework == "" {
			defaultFramework = manifest.Project.Framework
		}
		for i := range manifest.Tools {
			if toolMatches(&manifest.Tools[i], args.Name) {
				ref := &manifest.Tools[i]
				return ref, StrategyProjectToolsPackage, refFramework(ref, defaultFramework), nil
			}
		}
	}

	workspace, err := project.LoadManifest(filepath.Join(args.ProjectDirectory, WorkspaceToolsDir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, StrategyNone, "", nil
		}
		return nil, StrategyNone, "", err
	}
	for i := range workspace.Tools {
		if toolMatches(&workspace.Tools[i], args.Name) {
			ref := &workspace.Tools[i]
			return ref, StrategyWorkspaceToolsPackage, refFramework(ref, defaultFramework), nil
		}
	}

	return nil, StrategyNone, "", nil
}

func toolMatches(ref *project.ToolReference, name string) bool {
	return ref.Name == name
}

func refFramework(ref *project.ToolReference, fallback string) string {
	if ref.Framework != "" {
		return ref.Framework
	}
	return fallback
}

// pickArtifact selects the first artifact compatible with the target
// framework, in lock-file order.
func pickArtifact(pkg *project.Package, framework string) *project.Artifact {
	for i := range pkg.Artifacts {
		a := &pkg.Artifacts[i]
		if a.Framework == "" || a.Framework == framework {
			return a
		}
	}
	return nil
}
