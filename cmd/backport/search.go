package main

import (
	"jira-backport/internal/jira"
	"jira-backport/internal/ui"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:     "search",
	Short:   "List issues matching a JQL query",
	Example: `  backport search --jql 'project = ABC AND status = Done'`,
	RunE:    runSearch,
}

func init() {
	searchCmd.Flags().StringP("jql", "q", "", "JQL query (required)")
	_ = searchCmd.MarkFlagRequired("jql")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	jql, _ := cmd.Flags().GetString("jql")

	client, _, err := loadClient()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	spinner, _ := pterm.DefaultSpinner.Start("Searching...")
	pager := client.Search(jql, []string{"summary", "status"})
	var issues []jira.Issue
	for {
		issue, err := pager.Next(ctx)
		if err != nil {
			spinner.Stop()
			return err
		}
		if issue == nil {
			break
		}
		issues = append(issues, *issue)
	}
	spinner.Stop()

	if len(issues) == 0 {
		ui.PrintNoMatches()
		return nil
	}
	ui.PrintIssuesTable(issues)
	return nil
}
