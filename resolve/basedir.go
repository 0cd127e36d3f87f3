package resolve

import "path/filepath"

// BaseDirectoryResolver searches the directory containing the running
// launcher's own binaries. Sibling tools installed next to talon win over
// anything later in the chain, including PATH.
type BaseDirectoryResolver struct {
	platform   *Platform
	baseDir    string
	extensions []string
}

// NewBaseDirectoryResolver builds the resolver over the launcher's base
// directory.
func NewBaseDirectoryResolver(platform *Platform, baseDir string, extensions []string) *BaseDirectoryResolver {
	return &BaseDirectoryResolver{platform: platform, baseDir: baseDir, extensions: extensions}
}

// Resolve searches the base directory for the command.
func (b *BaseDirectoryResolver) Resolve(args *Arguments) (*Spec, error) {
	if b.baseDir == "" {
		return nil, nil
	}

	for _, ext := range candidateExtensions(b.extensions, args.InferredExtensions) {
		candidate := filepath.Join(b.baseDir, args.Name+ext)
		if b.platform.isExecutable(candidate) {
			return b.platform.CreateSpec(candidate, args.Args, StrategyBaseDirectory), nil
		}
	}
	return nil, nil
}

// candidateExtensions merges the platform extension list with any
// caller-supplied inferred extensions, platform list first.
func candidateExtensions(platformExts, inferred []string) []string {
	if len(inferred) == 0 {
		return platformExts
	}
	merged := make([]string, 0, len(platformExts)+len(inferred))
	merged = append(merged, platformExts...)
	merged = append(merged, inferred...)
	return merged
}
