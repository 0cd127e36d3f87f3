package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/talon/output"
	"github.com/simonhull/firebird-suite/talon/wasmhost"
)

// ExecCmd hosts a portable tool artifact. This is the launch form the
// resolver chain retargets .wasm artifacts through.
func ExecCmd() *cobra.Command {
	var (
		depsFile      string
		runtimeConfig string
		probingPaths  []string
	)

	cmd := &cobra.Command{
		Use:   "exec <artifact> [args...]",
		Short: "Host a portable tool artifact",
		Args:  cobra.MinimumNArgs(1),
		// Everything after the artifact belongs to the tool.
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, args []string) error {
			artifact := args[0]
			if !strings.EqualFold(filepath.Ext(artifact), ".wasm") {
				err := fmt.Errorf("%s is not a portable artifact; run it directly", artifact)
				output.Error(err.Error())
				return err
			}

			code, err := wasmhost.Run(cmd.Context(), wasmhost.Options{
				Artifact:      artifact,
				Args:          args[1:],
				DepsFile:      depsFile,
				RuntimeConfig: runtimeConfig,
				ProbingPaths:  probingPaths,
			})
			if err != nil {
				output.Error(err.Error())
				return err
			}

			if code != 0 {
				os.Exit(code)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&depsFile, "depsfile", "", "Dependency manifest generated for the artifact")
	cmd.Flags().StringVar(&runtimeConfig, "runtimeconfig", "", "Host runtime configuration for the artifact")
	cmd.Flags().StringArrayVar(&probingPaths, "additionalprobingpath", nil, "Package root to probe for runtime dependencies (repeatable)")

	return cmd
}
