package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the logvisor command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "logvisor",
		Short: "Emit reports through the logvisor sinks.",
		Long: `Command line front end of the logvisor logging facility.

Reports are written synchronously to every configured sink: the console
(stderr) and any number of files. Sinks come from a YAML configuration file
and/or command line flags.`,
		SilenceUsage: true,
	}

	root.AddCommand(newEmitCmd(), newStressCmd(), newVersionCmd())

	return root
}

// Execute runs the logvisor CLI and exits with non-zero status on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
