package ui

import (
	"fmt"

	"jira-backport/internal/backport"
	"jira-backport/internal/jira"

	"github.com/pterm/pterm"
)

func PrintIssuesTable(issues []jira.Issue) {
	pterm.Success.Printfln("Issues found: %d", len(issues))
	pterm.Println()

	tableData := pterm.TableData{
		{"#", "Key", "Status", "Summary"},
	}
	for i, issue := range issues {
		tableData = append(tableData, []string{
			fmt.Sprintf("%d", i+1),
			issue.Key,
			issue.Status.Name,
			issue.Summary,
		})
	}

	pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(tableData).Render()
	pterm.Println()
}

func PrintCandidatesTable(pairs []backport.ClonePair) {
	tableData := pterm.TableData{
		{"Source", "Summary", "Existing backport"},
	}
	for _, pair := range pairs {
		existing := pterm.Gray("none")
		if pair.Linked != nil {
			existing = pterm.FgCyan.Sprint(pair.Linked.Key)
		}
		tableData = append(tableData, []string{
			pterm.FgCyan.Sprint(pair.Issue.Key),
			pair.Issue.Summary,
			existing,
		})
	}

	pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(tableData).Render()
	pterm.Println()
}

func PrintCloneResult(sourceKey string, err error) {
	if err == nil {
		pterm.Success.Printfln("%s", sourceKey)
	} else {
		pterm.Error.Printfln("%s", sourceKey)
		PrintError("  " + err.Error())
	}
}

func PrintAlreadyLinked(sourceKey, linkedKey string) {
	pterm.Println(pterm.Gray(fmt.Sprintf("%s already linked to %s, skipping", sourceKey, linkedKey)))
}

func PrintNoMatches() {
	pterm.Warning.Println("No issues matched the query.")
}

func PrintError(msg string) {
	pterm.Println(pterm.Gray("⚠ " + msg))
}

func PrintStatus(msg string) {
	pterm.Println(pterm.Gray(msg))
}
