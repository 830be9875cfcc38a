package main

import (
	"jira-backport/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Set up the tracker connection interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunSetup()
		return err
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
