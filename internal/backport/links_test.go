package backport

import (
	"testing"

	"jira-backport/internal/jira"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inwardLink(typeName, key, summary string) jira.IssueLink {
	return jira.IssueLink{
		Type:        jira.LinkType{Name: typeName},
		InwardIssue: &jira.IssueRef{Key: key, Fields: jira.RefFields{Summary: summary}},
	}
}

func outwardLink(typeName, key string) jira.IssueLink {
	return jira.IssueLink{
		Type:         jira.LinkType{Name: typeName},
		OutwardIssue: &jira.IssueRef{Key: key},
	}
}

func TestFindLinkedIssue(t *testing.T) {
	cloner := NewCloner(nil, nil)

	tests := []struct {
		name  string
		links []jira.IssueLink
		want  string // expected linked key, "" for none
	}{
		{"no links", nil, ""},
		{"no matching type", []jira.IssueLink{inwardLink("Blocks", "ABC-3", "x")}, ""},
		{"outward only", []jira.IssueLink{outwardLink("Backports", "ABC-4")}, ""},
		{"inward match", []jira.IssueLink{inwardLink("Backports", "ABC-9", "nine")}, "ABC-9"},
		{
			"first inward match wins",
			[]jira.IssueLink{
				outwardLink("Backports", "ABC-4"),
				inwardLink("Blocks", "ABC-3", "x"),
				inwardLink("Backports", "ABC-9", "nine"),
				inwardLink("Backports", "ABC-10", "ten"),
			},
			"ABC-9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issue := &jira.Issue{Key: "ABC-2", Links: tt.links}
			got := cloner.FindLinkedIssue(issue, "Backports")
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Key)
		})
	}
}

func TestFindLinkedIssueCandidateView(t *testing.T) {
	cloner := NewCloner(nil, nil)
	issue := &jira.Issue{
		Key: "ABC-2",
		Links: []jira.IssueLink{{
			Type: jira.LinkType{Name: "Backports"},
			InwardIssue: &jira.IssueRef{
				Key:    "ABC-9",
				Fields: jira.RefFields{Summary: "nine", Status: &jira.Status{ID: "1", Name: "Open"}},
			},
		}},
	}

	got := cloner.FindLinkedIssue(issue, "Backports")
	require.NotNil(t, got)
	assert.Equal(t, "ABC-9", got.Key)
	assert.Equal(t, "nine", got.Summary)
	assert.Equal(t, "Open", got.Status.Name)
}

func TestFindLinkedIssueRejectedCandidate(t *testing.T) {
	cloner := NewCloner(nil, nil)
	cloner.SetAcceptLinkedPolicy(func(linked *jira.Issue) bool { return linked.Key != "ABC-9" })

	// Only the first matching link is ever considered: rejecting ABC-9
	// must not fall back to ABC-10.
	issue := &jira.Issue{
		Key: "ABC-2",
		Links: []jira.IssueLink{
			inwardLink("Backports", "ABC-9", "nine"),
			inwardLink("Backports", "ABC-10", "ten"),
		},
	}
	assert.Nil(t, cloner.FindLinkedIssue(issue, "Backports"))
}
