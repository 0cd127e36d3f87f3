// Package wasmhost runs portable tool artifacts inside a wazero/WASI
// sandbox. This is the launcher half of the muxer contract: resolvers
// retarget .wasm artifacts to `talon exec`, and exec lands here.
package wasmhost

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"github.com/tetratelabs/wazero/sys"

	"github.com/simonhull/firebird-suite/talon/depsfile"
	"github.com/simonhull/firebird-suite/talon/project"
)

// Options configures one hosted run.
type Options struct {
	Artifact      string   // path to the .wasm artifact, required
	Args          []string // tool arguments (argv[0] is derived from the artifact)
	Env           []string // KEY=VALUE pairs; nil inherits the host environment
	DepsFile      string   // generated dependency manifest, optional
	RuntimeConfig string   // host-level runtime knobs, optional
	ProbingPaths  []string // package roots to probe for runtime dependencies
	WorkingDir    string   // preopened as the guest's current directory
	Stdin         io.Reader
	Stdout        io.Writer
	Stderr        io.Writer
}

// Run instantiates the artifact and blocks until its entrypoint returns.
// The guest's exit code is returned as data; an error means the artifact
// could not be loaded or instantiated at all.
func Run(ctx context.Context, opts Options) (int, error) {
	artifact, err := os.ReadFile(opts.Artifact)
	if err != nil {
		return 0, fmt.Errorf("failed to read artifact %s: %w", opts.Artifact, err)
	}

	var rc *RuntimeConfig
	if opts.RuntimeConfig != "" {
		rc, err = LoadRuntimeConfig(opts.RuntimeConfig)
		if err != nil {
			return 0, err
		}
	}

	runtimeCfg := wazero.NewRuntimeConfig()
	if rc != nil && rc.Host.MaxMemoryPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(rc.Host.MaxMemoryPages)
	}

	runtime := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)
	defer runtime.Close(ctx)

	wasi_snapshot_preview1.MustInstantiate(ctx, runtime)

	cfg, err := moduleConfig(opts, rc)
	if err != nil {
		return 0, err
	}

	_, err = runtime.InstantiateWithConfig(ctx, artifact, cfg)
	if err != nil {
		var exitErr *sys.ExitError
		if errors.As(err, &exitErr) {
			return int(exitErr.ExitCode()), nil
		}
		return 0, fmt.Errorf("failed to host %s: %w", opts.Artifact, err)
	}

	return 0, nil
}

func moduleConfig(opts Options, rc *RuntimeConfig) (wazero.ModuleConfig, error) {
	stdin := opts.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	args := append([]string{filepath.Base(opts.Artifact)}, opts.Args...)

	cfg := wazero.NewModuleConfig().
		WithName(filepath.Base(opts.Artifact)).
		WithArgs(args...).
		WithStdin(stdin).
		WithStdout(stdout).
		WithStderr(stderr).
		WithSysWalltime().
		WithSysNanotime().
		WithRandSource(rand.Reader)

	env := opts.Env
	if env == nil {
		if rc == nil || rc.Host.InheritEnv == nil || *rc.Host.InheritEnv {
			env = os.Environ()
		}
	}
	for _, pair := range env {
		key, value, ok := strings.Cut(pair, "=")
		if ok {
			cfg = cfg.WithEnv(key, value)
		}
	}

	fsCfg, err := fsConfig(opts)
	if err != nil {
		return nil, err
	}
	return cfg.WithFSConfig(fsCfg), nil
}

// fsConfig preopens the working directory as the guest root plus one
// mount per runtime dependency named in the deps file, resolved through
// the probing paths.
func fsConfig(opts Options) (wazero.FSConfig, error) {
	workingDir := opts.WorkingDir
	if workingDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		workingDir = wd
	}

	fsCfg := wazero.NewFSConfig().WithDirMount(workingDir, "/")

	if opts.DepsFile == "" {
		return fsCfg, nil
	}

	deps, err := depsfile.Load(opts.DepsFile)
	if err != nil {
		return nil, err
	}

	for _, entry := range deps.Runtime {
		for _, root := range opts.ProbingPaths {
			install := project.InstallPath(root, entry.Name, entry.Version)
			if info, statErr := os.Stat(install); statErr == nil && info.IsDir() {
				guest := "/deps/" + strings.ToLower(entry.Name)
				fsCfg = fsCfg.WithReadOnlyDirMount(install, guest)
				break
			}
		}
	}

	return fsCfg, nil
}
