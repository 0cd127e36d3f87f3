package resolve

import "path/filepath"

// RootedPathResolver matches command names that are already absolute
// filesystem paths and treats them as the executable directly. Existence
// is not checked here; an unusable path surfaces later as a launch
// failure, which callers can tell apart from a resolution failure.
type RootedPathResolver struct {
	platform *Platform
}

// NewRootedPathResolver builds the resolver.
func NewRootedPathResolver(platform *Platform) *RootedPathResolver {
	return &RootedPathResolver{platform: platform}
}

// Resolve matches rooted command names.
func (r *RootedPathResolver) Resolve(args *Arguments) (*Spec, error) {
	if !filepath.IsAbs(args.Name) {
		return nil, nil
	}
	return r.platform.CreateSpec(args.Name, args.Args, StrategyRootedPath), nil
}
