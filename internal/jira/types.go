package jira

import (
	"encoding/json"
	"fmt"
)

// Field is one entry of the tracker's field schema. Custom fields carry
// ids of the form "customfield_NNNNN"; their human name lives in Name.
type Field struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Custom bool   `json:"custom"`
}

// IssueType is one entry of the tracker's issue-type catalog.
type IssueType struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Subtask bool   `json:"subtask"`
}

type Status struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LinkType names a directional relationship category between issues.
type LinkType struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Inward  string `json:"inward,omitempty"`
	Outward string `json:"outward,omitempty"`
}

// IssueRef is the partial issue representation embedded in a link.
// It carries the key and a thin field projection, never the full issue.
type IssueRef struct {
	ID     string    `json:"id,omitempty"`
	Key    string    `json:"key"`
	Fields RefFields `json:"fields"`
}

type RefFields struct {
	Summary string  `json:"summary"`
	Status  *Status `json:"status,omitempty"`
}

// IssueLink is a directional relationship between two issues. Exactly one
// of InwardIssue and OutwardIssue is populated, which is how the wire
// format encodes the link's direction relative to the owning issue.
type IssueLink struct {
	ID           string    `json:"id,omitempty"`
	Type         LinkType  `json:"type"`
	InwardIssue  *IssueRef `json:"inwardIssue,omitempty"`
	OutwardIssue *IssueRef `json:"outwardIssue,omitempty"`
}

// Issue is a read-only snapshot of one tracker issue. Summary, Status and
// Links are projected out of the raw fields object for convenience; Fields
// keeps the full per-field-id map so custom field values stay reachable.
type Issue struct {
	ID      string
	Key     string
	Summary string
	Status  Status
	Fields  map[string]any
	Links   []IssueLink
}

func (issue *Issue) UnmarshalJSON(b []byte) error {
	aux := struct {
		ID     string          `json:"id"`
		Key    string          `json:"key"`
		Fields json.RawMessage `json:"fields"`
	}{}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	issue.ID = aux.ID
	issue.Key = aux.Key
	if len(aux.Fields) == 0 || string(aux.Fields) == "null" {
		return nil
	}

	proj := struct {
		Summary string      `json:"summary"`
		Status  *Status     `json:"status"`
		Links   []IssueLink `json:"issuelinks"`
	}{}
	if err := json.Unmarshal(aux.Fields, &proj); err != nil {
		return fmt.Errorf("decode issue fields: %w", err)
	}
	issue.Summary = proj.Summary
	if proj.Status != nil {
		issue.Status = *proj.Status
	}
	issue.Links = proj.Links

	if err := json.Unmarshal(aux.Fields, &issue.Fields); err != nil {
		return fmt.Errorf("decode raw issue fields: %w", err)
	}
	return nil
}

type searchResponse struct {
	StartAt    int     `json:"startAt"`
	MaxResults int     `json:"maxResults"`
	Total      int     `json:"total"`
	Issues     []Issue `json:"issues"`
}

// CreateResult is the tracker's response to an issue create call. On
// success Key (and ID) are set; on a semantic failure the tracker instead
// returns Errors and/or ErrorMessages in the body.
type CreateResult struct {
	ID            string            `json:"id,omitempty"`
	Key           string            `json:"key,omitempty"`
	Errors        map[string]string `json:"errors,omitempty"`
	ErrorMessages []string          `json:"errorMessages,omitempty"`
}

// HasErrors reports whether the tracker rejected the create call even
// though the HTTP exchange itself succeeded.
func (r *CreateResult) HasErrors() bool {
	return len(r.Errors) > 0 || len(r.ErrorMessages) > 0
}

type issueLinkPayload struct {
	Type         linkTypeRef `json:"type"`
	InwardIssue  issueKeyRef `json:"inwardIssue"`
	OutwardIssue issueKeyRef `json:"outwardIssue"`
}

type linkTypeRef struct {
	Name string `json:"name"`
}

type issueKeyRef struct {
	Key string `json:"key"`
}
