package commands

import (
	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/talon"
	"github.com/simonhull/firebird-suite/talon/config"
	"github.com/simonhull/firebird-suite/talon/output"
)

// RootCmd creates and returns the root command for the Talon CLI
func RootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "talon",
		Short: "Command resolution and invocation engine for the Firebird Suite",
		Long: `Talon finds and runs the tools your project depends on.

Given a tool name, Talon walks a fixed chain of resolution strategies
(the launcher itself, rooted paths, project tool packages, the launcher
directory, project dependencies, build output, PATH) and executes the
first match, streaming its output back to you.

Learn more: https://github.com/simonhull/firebird-suite`,
		Version: talon.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// TALON_VERBOSE enables verbose output without the flag.
			if settings, err := config.Load(); err == nil {
				verbose = verbose || settings.Verbose
			}
			output.SetVerbose(verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")

	return cmd
}
