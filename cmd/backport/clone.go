package main

import (
	"errors"
	"fmt"

	"jira-backport/internal/backport"
	"jira-backport/internal/ui"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var cloneCmd = &cobra.Command{
	Use:   "clone",
	Short: "Backport issues matching a query into another project",
	Long: `Walk every issue matching the JQL query. Issues that already have a
counterpart linked with the given link type are skipped; for the rest a
new Changelog Entry issue is created in the target project, the
configured custom fields are copied onto it, and it is linked back to
the source issue.`,
	Example: `  backport clone --jql 'project = ABC AND status = Done' \
      --link-type Backports --project XYZ --component 42`,
	RunE: runClone,
}

func init() {
	cloneCmd.Flags().StringP("jql", "q", "", "JQL query selecting source issues (required)")
	cloneCmd.Flags().StringP("link-type", "l", "", "link type connecting source and backport (required)")
	cloneCmd.Flags().StringP("project", "p", "", "target project key (required)")
	cloneCmd.Flags().IntSlice("component", nil, "component id to set on created issues (can be repeated)")
	cloneCmd.Flags().Bool("dry-run", false, "list what would be created without creating anything")
	cloneCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
	_ = cloneCmd.MarkFlagRequired("jql")
	_ = cloneCmd.MarkFlagRequired("link-type")
	_ = cloneCmd.MarkFlagRequired("project")

	rootCmd.AddCommand(cloneCmd)
}

func runClone(cmd *cobra.Command, args []string) error {
	jql, _ := cmd.Flags().GetString("jql")
	linkType, _ := cmd.Flags().GetString("link-type")
	project, _ := cmd.Flags().GetString("project")
	components, _ := cmd.Flags().GetIntSlice("component")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	assumeYes, _ := cmd.Flags().GetBool("yes")

	client, cfg, err := loadClient()
	if err != nil {
		return err
	}
	cloner := backport.NewCloner(client, cfg.CopyFields)

	ctx := cmd.Context()
	spinner, _ := pterm.DefaultSpinner.Start("Searching for backport candidates...")
	pairs, err := cloner.FindCandidates(ctx, jql, linkType)
	spinner.Stop()
	if err != nil {
		return err
	}

	if len(pairs) == 0 {
		ui.PrintStatus("Nothing to backport.")
		return nil
	}

	ui.PrintCandidatesTable(pairs)

	var todo []backport.ClonePair
	for _, pair := range pairs {
		if pair.Linked != nil {
			ui.PrintAlreadyLinked(pair.Issue.Key, pair.Linked.Key)
			continue
		}
		todo = append(todo, pair)
	}

	if dryRun || len(todo) == 0 {
		ui.PrintStatus(fmt.Sprintf("%d issue(s) would be backported to %s.", len(todo), project))
		return nil
	}

	if !assumeYes && !ui.ConfirmYesNo(fmt.Sprintf("Create %d backport issue(s) in %s?", len(todo), project)) {
		ui.PrintStatus("Cancelled.")
		return nil
	}

	pterm.Println()
	failed := 0
	for _, pair := range todo {
		spinner, _ := pterm.DefaultSpinner.Start("Backporting " + pair.Issue.Key + "...")
		err := cloner.CreateLinkedIssue(ctx, &pair.Issue, project, linkType, components)
		spinner.Stop()
		if errors.Is(err, backport.ErrNoChangelogEntryType) {
			// No create can ever succeed without the issue type.
			return err
		}
		ui.PrintCloneResult(pair.Issue.Key, err)
		if err != nil {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d backports failed", failed, len(todo))
	}
	ui.PrintStatus(fmt.Sprintf("Created %d backport issue(s) in %s.", len(todo), project))
	return nil
}
