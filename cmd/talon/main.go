package main

import (
	"os"

	"github.com/simonhull/firebird-suite/talon/internal/commands"
)

func main() {
	rootCmd := commands.RootCmd()

	rootCmd.AddCommand(commands.RunCmd())
	rootCmd.AddCommand(commands.WhichCmd())
	rootCmd.AddCommand(commands.ExecCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
