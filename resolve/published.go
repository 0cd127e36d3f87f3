package resolve

import (
	"os"
	"path/filepath"
	"strings"
)

// PublishedPathResolver searches a caller-specified publish output folder.
// A portable artifact found there runs with the deps and runtimeconfig
// files the publish step laid down next to it; nothing is generated.
// The strategy tag is injected so callers embedding this resolver in their
// own policies can label the result.
type PublishedPathResolver struct {
	platform *Platform
	muxer    string
	strategy Strategy
}

// NewPublishedPathResolver builds the resolver.
func NewPublishedPathResolver(platform *Platform, muxer string, strategy Strategy) *PublishedPathResolver {
	return &PublishedPathResolver{platform: platform, muxer: muxer, strategy: strategy}
}

// Resolve searches the publish folder named by args.OutputPath.
func (p *PublishedPathResolver) Resolve(args *Arguments) (*Spec, error) {
	if args.OutputPath == "" {
		return nil, nil
	}

	exts := args.InferredExtensions
	if len(exts) == 0 {
		exts = []string{"", ".wasm"}
	}

	for _, ext := range exts {
		candidate := filepath.Join(args.OutputPath, args.Name+ext)
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}

		if strings.EqualFold(filepath.Ext(candidate), ".wasm") {
			return p.portableSpec(candidate, args), nil
		}
		if p.platform.isExecutable(candidate) {
			return p.platform.CreateSpec(candidate, args.Args, p.strategy), nil
		}
	}

	return nil, nil
}

func (p *PublishedPathResolver) portableSpec(artifact string, args *Arguments) *Spec {
	dir := filepath.Dir(artifact)
	base := strings.TrimSuffix(filepath.Base(artifact), filepath.Ext(artifact))

	deps := filepath.Join(dir, base+".deps.yml")
	if _, err := os.Stat(deps); err != nil {
		deps = ""
	}
	runtimeConfig := filepath.Join(dir, base+".runtimeconfig.yml")
	if _, err := os.Stat(runtimeConfig); err != nil {
		runtimeConfig = ""
	}

	return muxerExecSpec(p.muxer, artifact, deps, runtimeConfig, "", args.Args, p.strategy)
}
