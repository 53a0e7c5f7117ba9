// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "activity-box",
	Short: "A CLI tool to pin a summary of recent GitHub activity to a gist.",
	Long: `activity-box reads a user's recent public GitHub events, turns the
interesting ones into short lines (pushes, pull requests, issues, stars,
releases...) and overwrites a gist with the result.
It is meant to be run on a schedule, e.g. from a GitHub Actions cron job.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	addGlobalFlags(rootCmd)
}

func addGlobalFlags(c *cobra.Command) {
	c.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging (same as --log-level=debug)")
	c.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	c.PersistentFlags().Bool("log-json", false, "Output logs in JSON format")
	c.PersistentFlags().StringP("config", "c", "", "Path to a YAML config file")
	c.PersistentFlags().String("env-file", ".env", "Path to a dotenv file; ignored if it does not exist")
}
