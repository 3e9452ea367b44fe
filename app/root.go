// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "trofos",
	Short: "Trofos is a web-based course and project management tool",
	Long: `Trofos is a web-based course and project management tool for
software engineering modules: courses, projects, sprints, backlogs and
CSV-based roster imports.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
