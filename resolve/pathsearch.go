package resolve

import "path/filepath"

// PathResolver searches each directory on the process's search path,
// trying each platform-appropriate extension in order. Lowest-priority
// real resolver in the default chain.
type PathResolver struct {
	platform   *Platform
	searchPath []string
	extensions []string
}

// NewPathResolver builds the resolver over an ordered directory list.
func NewPathResolver(platform *Platform, searchPath, extensions []string) *PathResolver {
	return &PathResolver{platform: platform, searchPath: searchPath, extensions: extensions}
}

// Resolve searches the path directories in order.
func (p *PathResolver) Resolve(args *Arguments) (*Spec, error) {
	for _, dir := range p.searchPath {
		if dir == "" {
			continue
		}
		for _, ext := range candidateExtensions(p.extensions, args.InferredExtensions) {
			candidate := filepath.Join(dir, args.Name+ext)
			if p.platform.isExecutable(candidate) {
				return p.platform.CreateSpec(candidate, args.Args, StrategyPath), nil
			}
		}
	}
	return nil, nil
}
