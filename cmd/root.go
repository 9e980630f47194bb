// Package cmd contains the localstore command-line interface.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "localstore",
	Short: "Sandboxed local file system MCP server",
	Long: `localstore exposes a directory of local files over the Model Context
Protocol: files are readable as storage://local/ resources and writable
through the write_file tool. All operations are confined to the sandbox
root given by --path.

Running localstore without a subcommand starts the MCP server on stdio.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("path", "", "base directory for file operations (default ./data)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: DEBUG, INFO, WARNING or ERROR (default INFO)")
	rootCmd.PersistentFlags().String("metrics-addr", "", "listen address for the Prometheus endpoint (disabled when empty)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
