package resolve

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/simonhull/firebird-suite/talon/config"
	"github.com/simonhull/firebird-suite/talon/output"
)

// Resolver is a single resolution strategy. Returning (nil, nil) means
// "no match, try the next strategy"; a non-nil error aborts the chain.
type Resolver interface {
	Resolve(args *Arguments) (*Spec, error)
}

// CommandUnknownError is returned when no resolver in the chain matched.
type CommandUnknownError struct {
	Name string
}

func (e *CommandUnknownError) Error() string {
	return fmt.Sprintf("no executable found matching command %q", e.Name)
}

// Chain tries resolvers in a fixed priority order and returns the first
// spec produced. Resolvers are independent and side-effect free apart from
// deps-file generation, so the chain itself holds no state.
type Chain struct {
	resolvers []Resolver
}

// NewChain builds a chain over the given resolvers, tried in order.
func NewChain(resolvers ...Resolver) *Chain {
	return &Chain{resolvers: resolvers}
}

// Resolve runs the chain and returns the first non-nil spec.
func (c *Chain) Resolve(args *Arguments) (*Spec, error) {
	if args.Name == "" {
		return nil, fmt.Errorf("cannot resolve an empty command name")
	}

	for _, r := range c.resolvers {
		spec, err := r.Resolve(args)
		if err != nil {
			return nil, err
		}
		if spec != nil {
			output.Verbose(fmt.Sprintf("resolved %s via %s: %s", args.Name, spec.Strategy, spec.Path))
			return spec, nil
		}
	}

	return nil, &CommandUnknownError{Name: args.Name}
}

// DefaultChain composes the default resolution policy. Order is
// significant and fixed:
//
//  1. muxer (the command is talon itself)
//  2. rooted path
//  3. project tools package
//  4. launcher base directory
//  5. project dependencies package
//  6. project output path
//  7. PATH search
//  8. published path
func DefaultChain(settings *config.Settings) *Chain {
	platform := NewPlatform(settings)
	muxer := muxerPath(settings)
	appBase := appBaseDirectory()

	return NewChain(
		NewMuxerResolver(muxer),
		NewRootedPathResolver(platform),
		NewProjectToolsResolver(settings, platform, muxer),
		NewBaseDirectoryResolver(platform, appBase, settings.PathExtensions),
		NewProjectDependenciesResolver(settings, platform, muxer),
		NewOutputPathResolver(platform, settings.PathExtensions),
		NewPathResolver(platform, settings.SearchPath, settings.PathExtensions),
		NewPublishedPathResolver(platform, muxer, StrategyDepsFile),
	)
}

// muxerPath locates the talon launcher itself, honoring the host-path
// override from the environment.
func muxerPath(settings *config.Settings) string {
	if settings.HostPath != "" {
		return settings.HostPath
	}
	self, err := os.Executable()
	if err != nil {
		return ""
	}
	return self
}

func appBaseDirectory() string {
	self, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Dir(self)
}
