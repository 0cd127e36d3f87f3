package resolve

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/simonhull/firebird-suite/talon/config"
	"github.com/simonhull/firebird-suite/talon/depsfile"
	"github.com/simonhull/firebird-suite/talon/project"
)

// ProjectDependenciesResolver searches the project's resolved dependency
// graph for a library shipping an artifact whose file name matches the
// command. This is how a library's bundled helper binaries become
// invocable from the project that depends on it.
type ProjectDependenciesResolver struct {
	settings *config.Settings
	platform *Platform
	muxer    string
}

// NewProjectDependenciesResolver builds the resolver.
func NewProjectDependenciesResolver(settings *config.Settings, platform *Platform, muxer string) *ProjectDependenciesResolver {
	return &ProjectDependenciesResolver{settings: settings, platform: platform, muxer: muxer}
}

// Resolve searches lock-file packages for a matching artifact.
func (p *ProjectDependenciesResolver) Resolve(args *Arguments) (*Spec, error) {
	if args.ProjectDirectory == "" {
		return nil, nil
	}

	lock, err := project.LoadLockFile(args.ProjectDirectory)
	if err != nil {
		// No lock file means no resolved graph to search; that is not an
		// error at this point in the chain.
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	for i := range lock.Packages {
		pkg := &lock.Packages[i]
		for j := range pkg.Artifacts {
			artifact := &pkg.Artifacts[j]
			if !artifactMatches(artifact, args) {
				continue
			}

			installDir := project.InstallPath(p.settings.PackagesRoot, pkg.Name, pkg.Version)
			artifactPath := filepath.Join(installDir, artifact.Path)

			if artifact.Kind == project.ArtifactNative {
				return p.platform.CreateSpec(artifactPath, args.Args, StrategyProjectDependenciesPackage), nil
			}

			depsPath := filepath.Join(installDir, depsfile.Name(pkg.Name))
			if err := depsfile.Generate(lock, pkg, args.TargetFramework, depsPath); err != nil {
				return nil, err
			}
			return muxerExecSpec(p.muxer, artifactPath, depsPath, "", p.settings.PackagesRoot, args.Args, StrategyProjectDependenciesPackage), nil
		}
	}

	return nil, nil
}

// artifactMatches compares the artifact's base file name (extension
// stripped) against the command name, honoring the target framework.
func artifactMatches(artifact *project.Artifact, args *Arguments) bool {
	if artifact.Framework != "" && args.TargetFramework != "" && artifact.Framework != args.TargetFramework {
		return false
	}
	base := filepath.Base(artifact.Path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.EqualFold(base, args.Name)
}
