package resolve

import "path/filepath"

// OutputPathResolver searches a build output directory for the named
// command: the caller's explicit output path when given, otherwise the
// suite convention bin/<configuration>/<framework> under the project (or
// build base path), with configuration defaulting to "debug".
//
// A command found checked into the project directory itself resolves
// first, tagged project-local.
type OutputPathResolver struct {
	platform   *Platform
	extensions []string
}

// NewOutputPathResolver builds the resolver.
func NewOutputPathResolver(platform *Platform, extensions []string) *OutputPathResolver {
	return &OutputPathResolver{platform: platform, extensions: extensions}
}

// Resolve searches the explicit output path when one was given, then the
// project directory and its build output directory.
func (o *OutputPathResolver) Resolve(args *Arguments) (*Spec, error) {
	exts := candidateExtensions(o.extensions, args.InferredExtensions)

	// An explicit output folder needs no project directory and beats the
	// convention-derived one.
	if args.OutputPath != "" {
		for _, ext := range exts {
			candidate := filepath.Join(args.OutputPath, args.Name+ext)
			if o.platform.isExecutable(candidate) {
				return o.platform.CreateSpec(candidate, args.Args, StrategyOutputPath), nil
			}
		}
	}

	if args.ProjectDirectory == "" {
		return nil, nil
	}

	for _, ext := range exts {
		candidate := filepath.Join(args.ProjectDirectory, args.Name+ext)
		if o.platform.isExecutable(candidate) {
			return o.platform.CreateSpec(candidate, args.Args, StrategyProjectLocal), nil
		}
	}

	outputDir := o.outputDirectory(args)
	for _, ext := range exts {
		candidate := filepath.Join(outputDir, args.Name+ext)
		if o.platform.isExecutable(candidate) {
			return o.platform.CreateSpec(candidate, args.Args, StrategyOutputPath), nil
		}
	}

	return nil, nil
}

func (o *OutputPathResolver) outputDirectory(args *Arguments) string {
	base := args.BuildBasePath
	if base == "" {
		base = filepath.Join(args.ProjectDirectory, "bin")
	}

	configuration := args.Configuration
	if configuration == "" {
		configuration = "debug"
	}

	dir := filepath.Join(base, configuration)
	if args.TargetFramework != "" {
		dir = filepath.Join(dir, args.TargetFramework)
	}
	return dir
}
