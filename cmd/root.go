// Package cmd holds the clubhub command line.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "clubhub",
	Short: "The English Hub: activity feeds for the Department of English clubs",
	Long: `clubhub serves the club activity site over HTTP, or runs the same
screens in the terminal. Both read and write activities and comments through
the configured data gateway.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd, tuiCmd, migrateCmd)
}
