package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stratalint",
	Short: "Layered-architecture linter for module-import graphs",
	Long: "Checks declared layering contracts against the actual import graph\n" +
		"of a codebase and reports every import chain that reaches from a\n" +
		"lower layer back up into a higher one.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
