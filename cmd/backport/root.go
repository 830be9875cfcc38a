package main

import (
	"fmt"

	"jira-backport/internal/config"
	"jira-backport/internal/jira"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "backport",
	Short: "Query a Jira-like tracker and backport issues across projects",
	Long: `backport is a command-line client for a Jira-like issue tracker.

It searches issues with JQL and runs the backport workflow: for every
issue matched by a query, check whether a typed link to a counterpart
already exists, and if not, create a new Changelog Entry issue in a
target project, copy the configured custom fields onto it, and link it
back to the source issue.

Connection settings live in ~/.backport/config.yaml (run 'backport
config' to set them up) and can be overridden with BACKPORT_* environment
variables.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// loadClient builds a tracker client from the saved configuration. When no
// config file exists yet the interactive setup runs first.
func loadClient() (*jira.Client, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		if config.Exists() {
			return nil, nil, err
		}
		fmt.Println("No configuration found. Let's set it up!")
		fmt.Println()
		cfg, err = config.RunSetup()
		if err != nil {
			return nil, nil, err
		}
	}
	client := jira.NewClient(cfg.TrackerURL, cfg.APIToken)
	client.SetPageSize(cfg.PageSize)
	return client, cfg, nil
}
