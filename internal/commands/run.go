package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/talon/config"
	"github.com/simonhull/firebird-suite/talon/output"
	"github.com/simonhull/firebird-suite/talon/project"
	"github.com/simonhull/firebird-suite/talon/resolve"
	"github.com/simonhull/firebird-suite/talon/run"
)

// RunCmd resolves a command and executes it, exiting with the child's
// exit code.
func RunCmd() *cobra.Command {
	var (
		framework     string
		configuration string
		projectDir    string
		outputPath    string
		buildBasePath string
	)

	cmd := &cobra.Command{
		Use:   "run <command> [args...]",
		Short: "Resolve a command and run it",
		Args:  cobra.MinimumNArgs(1),
		// Flags after the command name belong to the tool being run.
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, settings, err := resolveCommand(args, framework, configuration, projectDir, outputPath, buildBasePath)
			if err != nil {
				output.Error(err.Error())
				return err
			}

			result, err := run.New(spec).
				AnsiPassthrough(settings.AnsiPassthrough).
				Execute(cmd.Context())
			if err != nil {
				if run.IsNotFound(err) {
					output.Error(fmt.Sprintf("command %q resolved to %s, but it could not be started", args[0], spec.Path))
				} else {
					output.Error(err.Error())
				}
				return err
			}

			if result.ExitCode != 0 {
				os.Exit(result.ExitCode)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&framework, "framework", "f", "", "Target framework (e.g. wasi1)")
	cmd.Flags().StringVarP(&configuration, "configuration", "c", "", "Build configuration (debug or release)")
	cmd.Flags().StringVar(&projectDir, "project", "", "Project directory (default: walk up from the current directory)")
	cmd.Flags().StringVar(&outputPath, "output", "", "Published output folder to search")
	cmd.Flags().StringVar(&buildBasePath, "build-base", "", "Build base path overriding <project>/bin")

	return cmd
}

func resolveCommand(args []string, framework, configuration, projectDir, outputPath, buildBasePath string) (*resolve.Spec, *config.Settings, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	if projectDir == "" {
		projectDir = project.FindRoot(".")
	}
	if projectDir != "" {
		output.Verbose(fmt.Sprintf("project: %s", project.Identity(projectDir)))
	}

	spec, err := resolve.DefaultChain(settings).Resolve(&resolve.Arguments{
		Name:             args[0],
		Args:             args[1:],
		TargetFramework:  framework,
		Configuration:    configuration,
		ProjectDirectory: projectDir,
		OutputPath:       outputPath,
		BuildBasePath:    buildBasePath,
	})
	if err != nil {
		return nil, nil, err
	}
	return spec, settings, nil
}
