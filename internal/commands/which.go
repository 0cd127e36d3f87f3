package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/talon/output"
)

// WhichCmd resolves a command without running it and reports where it
// came from.
func WhichCmd() *cobra.Command {
	var (
		framework     string
		configuration string
		projectDir    string
		outputPath    string
	)

	cmd := &cobra.Command{
		Use:          "which <command>",
		Short:        "Show how a command would be resolved",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, _, err := resolveCommand(args, framework, configuration, projectDir, outputPath, "")
			if err != nil {
				output.Error(err.Error())
				return err
			}

			output.Success(fmt.Sprintf("%s resolves via %s", args[0], spec.Strategy))
			output.Step(spec.CommandLine())
			return nil
		},
	}

	cmd.Flags().StringVarP(&framework, "framework", "f", "", "Target framework (e.g. wasi1)")
	cmd.Flags().StringVarP(&configuration, "configuration", "c", "", "Build configuration (debug or release)")
	cmd.Flags().StringVar(&projectDir, "project", "", "Project directory (default: walk up from the current directory)")
	cmd.Flags().StringVar(&outputPath, "output", "", "Published output folder to search")

	return cmd
}
