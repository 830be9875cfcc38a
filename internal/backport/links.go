package backport

import "jira-backport/internal/jira"

// FindLinkedIssue returns the issue's existing counterpart of the given
// link type, or nil. Only the first inward link of the matching type is
// considered: inward links are the only ones that embed the linked issue's
// data, and an issue carries at most one meaningful counterpart link. If
// the acceptance policy rejects that single candidate the result is nil;
// later links are never consulted.
func (c *Cloner) FindLinkedIssue(issue *jira.Issue, linkTypeName string) *jira.Issue {
	for _, link := range issue.Links {
		if link.Type.Name != linkTypeName || link.InwardIssue == nil {
			continue
		}
		linked := &jira.Issue{
			ID:      link.InwardIssue.ID,
			Key:     link.InwardIssue.Key,
			Summary: link.InwardIssue.Fields.Summary,
		}
		if s := link.InwardIssue.Fields.Status; s != nil {
			linked.Status = *s
		}
		if c.acceptLinked(linked) {
			return linked
		}
		return nil
	}
	return nil
}
