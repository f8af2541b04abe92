package cmd

import (
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the planning HTTP service",
	RunE:  run,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
