// Package backport implements the issue backport workflow: find issues
// matching a query that have no linked counterpart yet, create a
// counterpart in a target project with a configured subset of custom
// fields copied over, and link it back to the source issue.
package backport

import (
	"context"
	"fmt"
	"strings"

	"jira-backport/internal/jira"
)

// ChangelogEntryTypeName is the issue type every backport is created as.
// The tracker must define it; creation is impossible without it.
const ChangelogEntryTypeName = "Changelog Entry"

// ErrNoChangelogEntryType is returned when the tracker has no issue type
// named "Changelog Entry". This is a configuration precondition of the
// tracker, not a per-issue failure.
var ErrNoChangelogEntryType = fmt.Errorf("no issue type named %q in tracker", ChangelogEntryTypeName)

// CreateError is a semantic create failure: the tracker accepted the HTTP
// call but rejected the issue, reporting errors in the response body.
type CreateError struct {
	SourceKey string
	Errors    map[string]string
	Messages  []string
}

func (e *CreateError) Error() string {
	var parts []string
	for field, msg := range e.Errors {
		parts = append(parts, field+": "+msg)
	}
	parts = append(parts, e.Messages...)
	return fmt.Sprintf("create backport of %s failed: %s", e.SourceKey, strings.Join(parts, "; "))
}

// ClonePair is one candidate emitted by the query phase: a source issue
// and the already-linked counterpart, if one exists. Linked is nil when no
// accepted counterpart was found, which is the caller's cue to create one.
type ClonePair struct {
	Issue  jira.Issue
	Linked *jira.Issue
}

// Cloner drives the backport workflow against one tracker. The field
// catalog and the Changelog Entry type id are resolved lazily on first use
// and cached for the Cloner's lifetime; a Cloner is not safe for
// concurrent use.
type Cloner struct {
	client     *jira.Client
	copyFields []string

	// acceptLinked decides whether an existing linked issue counts as a
	// counterpart. alreadyProcessed decides whether a pair with a
	// counterpart should be dropped from the candidate list. Both default
	// to "always yes".
	acceptLinked     func(*jira.Issue) bool
	alreadyProcessed func(ClonePair) bool

	fieldIDs        map[string]string
	changelogTypeID string
}

// NewCloner returns a Cloner that copies the custom fields named in
// copyFields onto every backport it creates. Names that do not exist in
// the tracker's schema are silently ignored.
func NewCloner(client *jira.Client, copyFields []string) *Cloner {
	return &Cloner{
		client:           client,
		copyFields:       copyFields,
		acceptLinked:     func(*jira.Issue) bool { return true },
		alreadyProcessed: func(ClonePair) bool { return true },
	}
}

// SetAcceptLinkedPolicy replaces the predicate that decides whether a
// linked issue found by the link filter counts as a counterpart.
func (c *Cloner) SetAcceptLinkedPolicy(accept func(*jira.Issue) bool) {
	c.acceptLinked = accept
}

// SetAlreadyProcessedPolicy replaces the predicate that decides whether a
// pair with an existing counterpart is dropped from FindCandidates output.
func (c *Cloner) SetAlreadyProcessedPolicy(processed func(ClonePair) bool) {
	c.alreadyProcessed = processed
}

// FindCandidates walks every issue matching the JQL query and pairs it
// with its existing counterpart of the given link type, if any. Issues
// whose counterpart exists and is considered already processed are
// dropped. The search projection is summary + links plus the resolved ids
// of the configured copy fields, so copied values are available later
// without refetching.
func (c *Cloner) FindCandidates(ctx context.Context, jql, linkTypeName string) ([]ClonePair, error) {
	ids, err := c.customFieldIDs(ctx)
	if err != nil {
		return nil, err
	}

	projection := []string{"summary", "issuelinks"}
	for _, name := range c.copyFields {
		if id, ok := ids[name]; ok {
			projection = append(projection, id)
		}
	}

	pager := c.client.Search(jql, projection)
	var pairs []ClonePair
	for {
		issue, err := pager.Next(ctx)
		if err != nil {
			return nil, err
		}
		if issue == nil {
			break
		}
		linked := c.FindLinkedIssue(issue, linkTypeName)
		pair := ClonePair{Issue: *issue, Linked: linked}
		if linked != nil && c.alreadyProcessed(pair) {
			continue
		}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}

// CreateLinkedIssue creates the backport counterpart of source in the
// target project and links it back to source with the given link type.
// The new issue gets the source's summary, a description pointing back at
// the source, one component per id in componentIDs, and the configured
// copy fields.
//
// There is no rollback: if the link call fails after the create succeeded,
// the created issue is left unlinked.
func (c *Cloner) CreateLinkedIssue(ctx context.Context, source *jira.Issue, targetProjectKey, linkTypeName string, componentIDs []int) error {
	ids, err := c.customFieldIDs(ctx)
	if err != nil {
		return err
	}

	fields := map[string]any{
		"description": fmt.Sprintf("Backport of %s.", source.Key),
		"components":  componentRefs(componentIDs),
	}
	for _, name := range c.copyFields {
		id, ok := ids[name]
		if !ok {
			continue
		}
		raw, ok := source.Fields[id]
		if !ok || raw == nil {
			continue
		}
		fields[id] = copyFieldValue(raw)
	}

	typeID, err := c.changelogEntryTypeID(ctx)
	if err != nil {
		return err
	}

	res, err := c.client.CreateIssue(ctx, targetProjectKey, source.Summary, typeID, fields)
	if err != nil {
		return fmt.Errorf("backport %s: %w", source.Key, err)
	}
	if res.HasErrors() {
		return &CreateError{SourceKey: source.Key, Errors: res.Errors, Messages: res.ErrorMessages}
	}
	if res.Key == "" {
		return fmt.Errorf("backport %s: tracker returned no issue key", source.Key)
	}

	if err := c.client.CreateIssueLink(ctx, linkTypeName, res.Key, source.Key); err != nil {
		return fmt.Errorf("link %s to %s: %w", res.Key, source.Key, err)
	}
	return nil
}

// IssueStatusName returns the display name of the issue's status.
func (c *Cloner) IssueStatusName(issue *jira.Issue) string {
	return issue.Status.Name
}

func (c *Cloner) changelogEntryTypeID(ctx context.Context) (string, error) {
	if c.changelogTypeID != "" {
		return c.changelogTypeID, nil
	}
	types, err := c.client.IssueTypes(ctx)
	if err != nil {
		return "", err
	}
	for _, t := range types {
		if t.Name == ChangelogEntryTypeName {
			c.changelogTypeID = t.ID
			return t.ID, nil
		}
	}
	return "", ErrNoChangelogEntryType
}

func componentRefs(ids []int) []map[string]any {
	refs := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, map[string]any{"id": id})
	}
	return refs
}
