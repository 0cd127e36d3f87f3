package resolve

import (
	"github.com/simonhull/firebird-suite/talon/escape"
)

// Strategy identifies how a command was resolved. It is carried on the
// resulting Spec for diagnostics and for disambiguating otherwise
// identical specs.
type Strategy int

const (
	StrategyNone Strategy = iota
	StrategyRootedPath
	StrategyMuxer
	StrategyPath
	StrategyBaseDirectory
	StrategyProjectLocal
	StrategyOutputPath
	StrategyProjectToolsPackage
	StrategyProjectDependenciesPackage
	StrategyDepsFile
	StrategyWorkspaceToolsPackage
)

var strategyNames = map[Strategy]string{
	StrategyNone:                       "none",
	StrategyRootedPath:                 "rooted-path",
	StrategyMuxer:                      "muxer",
	StrategyPath:                       "path",
	StrategyBaseDirectory:              "base-directory",
	StrategyProjectLocal:               "project-local",
	StrategyOutputPath:                 "output-path",
	StrategyProjectToolsPackage:        "project-tools-package",
	StrategyProjectDependenciesPackage: "project-dependencies-package",
	StrategyDepsFile:                   "deps-file",
	StrategyWorkspaceToolsPackage:      "workspace-tools-package",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return "unknown"
}

// Arguments is the input to every resolver: the command name plus the
// context a resolution attempt runs under. Immutable once constructed.
type Arguments struct {
	Name               string   // required
	Args               []string // command arguments, may be empty
	TargetFramework    string
	Configuration      string
	ProjectDirectory   string
	OutputPath         string
	BuildBasePath      string
	InferredExtensions []string // extra filename extensions to try
}

// Spec is a resolved, ready-to-execute description of a child process.
// Constructed once by a resolver and consumed exactly once by the
// executor; the only mutation after construction is additive environment
// merging before launch.
type Spec struct {
	Path        string   // executable path, never empty when Strategy != StrategyNone
	Args        []string // argument vector handed to the child
	EscapedArgs string   // the args as one shell-ready escaped string
	Strategy    Strategy
	Env         map[string]string

	// RawCmdLine carries the exact command line for launches that must
	// bypass argv re-quoting (the cmd.exe wrap on Windows). Empty
	// otherwise.
	RawCmdLine string
}

// NewSpec builds a Spec, pre-escaping the argument vector.
func NewSpec(path string, args []string, strategy Strategy) *Spec {
	return &Spec{
		Path:        path,
		Args:        args,
		EscapedArgs: escape.Args(args),
		Strategy:    strategy,
		Env:         map[string]string{},
	}
}

// WithEnv adds an environment variable to inject at launch. Additive only.
func (s *Spec) WithEnv(key, value string) *Spec {
	s.Env[key] = value
	return s
}

// CommandLine renders the full invocation for display.
func (s *Spec) CommandLine() string {
	if s.EscapedArgs == "" {
		return s.Path
	}
	return s.Path + " " + s.EscapedArgs
}

// muxerExecSpec retargets a portable artifact through the talon launcher:
// the launcher's exec form is prepended ahead of the original arguments.
func muxerExecSpec(muxerPath, artifact, depsFile, runtimeConfig, probingRoot string, originalArgs []string, strategy Strategy) *Spec {
	execArgs := []string{"exec"}
	if depsFile != "" {
		execArgs = append(execArgs, "--depsfile", depsFile)
	}
	if runtimeConfig != "" {
		execArgs = append(execArgs, "--runtimeconfig", runtimeConfig)
	}
	if probingRoot != "" {
		execArgs = append(execArgs, "--additionalprobingpath", probingRoot)
	}
	execArgs = append(execArgs, artifact)
	execArgs = append(execArgs, originalArgs...)
	return NewSpec(muxerPath, execArgs, strategy)
}
