package resolve

// MuxerName is the launcher's own command name.
const MuxerName = "talon"

// MuxerResolver matches the toolchain's own launcher name and resolves it
// to the running launcher binary.
type MuxerResolver struct {
	hostPath string
}

// NewMuxerResolver builds the resolver around the launcher path.
func NewMuxerResolver(hostPath string) *MuxerResolver {
	return &MuxerResolver{hostPath: hostPath}
}

// Resolve returns the launcher itself when the command name is the
// launcher's name.
func (m *MuxerResolver) Resolve(args *Arguments) (*Spec, error) {
	if args.Name != MuxerName || m.hostPath == "" {
		return nil, nil
	}
	return NewSpec(m.hostPath, args.Args, StrategyMuxer), nil
}
