package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	apiPrefix = "/rest/api/2"

	// maxGetRetries bounds retries of idempotent reads on 429/5xx.
	maxGetRetries = 3
)

type Client struct {
	baseURL  string
	apiToken string
	pageSize int
	http     *http.Client
}

func NewClient(baseURL, apiToken string) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiToken: apiToken,
		pageSize: defaultPageSize,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

// SetPageSize overrides the number of issues fetched per search page.
func (c *Client) SetPageSize(n int) {
	if n > 0 {
		c.pageSize = n
	}
}

// Fields fetches the tracker's full field schema.
func (c *Client) Fields(ctx context.Context) ([]Field, error) {
	var fields []Field
	if err := c.getJSON(ctx, "/field", nil, &fields); err != nil {
		return nil, fmt.Errorf("fetch field schema: %w", err)
	}
	return fields, nil
}

// IssueTypes fetches the tracker's issue-type catalog.
func (c *Client) IssueTypes(ctx context.Context) ([]IssueType, error) {
	var types []IssueType
	if err := c.getJSON(ctx, "/issuetype", nil, &types); err != nil {
		return nil, fmt.Errorf("fetch issue types: %w", err)
	}
	return types, nil
}

// CreateIssue creates an issue in the given project. extraFields are merged
// into the create payload's fields object next to project, summary and
// issue type; the tracker interprets them by field id.
//
// A semantic rejection (HTTP 4xx with a JSON error body) is returned as a
// CreateResult whose Errors/ErrorMessages are set, not as a Go error, so
// the caller can inspect the raw error payload.
func (c *Client) CreateIssue(ctx context.Context, projectKey, summary, issueTypeID string, extraFields map[string]any) (*CreateResult, error) {
	fields := map[string]any{
		"project":   map[string]any{"key": projectKey},
		"summary":   summary,
		"issuetype": map[string]any{"id": issueTypeID},
	}
	for k, v := range extraFields {
		fields[k] = v
	}

	body, status, err := c.post(ctx, "/issue", map[string]any{"fields": fields})
	if err != nil {
		return nil, fmt.Errorf("create issue: %w", err)
	}

	var res CreateResult
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("create issue: tracker returned %d: %s", status, string(body))
	}
	return &res, nil
}

// CreateIssueLink links two issues: the link points inward at inwardKey and
// outward at outwardKey, with the semantics of the named link type.
func (c *Client) CreateIssueLink(ctx context.Context, linkTypeName, inwardKey, outwardKey string) error {
	payload := issueLinkPayload{
		Type:         linkTypeRef{Name: linkTypeName},
		InwardIssue:  issueKeyRef{Key: inwardKey},
		OutwardIssue: issueKeyRef{Key: outwardKey},
	}
	body, status, err := c.post(ctx, "/issueLink", payload)
	if err != nil {
		return fmt.Errorf("create issue link: %w", err)
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("create issue link: tracker returned %d: %s", status, string(body))
	}
	return nil
}

// getJSON performs an idempotent GET and decodes the JSON response into v.
// Transient failures (transport errors, 429, 5xx) are retried with
// exponential backoff; everything else fails immediately.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, v any) error {
	u, err := url.Parse(c.baseURL + apiPrefix + path)
	if err != nil {
		return fmt.Errorf("parse URL: %w", err)
	}
	if query != nil {
		u.RawQuery = query.Encode()
	}

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("create request: %w", err))
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiToken)

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("tracker request: %w", err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
				return backoff.Permanent(fmt.Errorf("decode response: %w", err))
			}
			return nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			body, _ := io.ReadAll(resp.Body)
			return fmt.Errorf("tracker returned %d: %s", resp.StatusCode, string(body))
		default:
			body, _ := io.ReadAll(resp.Body)
			return backoff.Permanent(fmt.Errorf("tracker returned %d: %s", resp.StatusCode, string(body)))
		}
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(newBackOff(), maxGetRetries), ctx)
	return backoff.Retry(op, bo)
}

func newBackOff() *backoff.ExponentialBackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 5 * time.Second
	return bo
}

// post performs a non-idempotent POST; never retried.
func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+apiPrefix+path, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("tracker request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	return respBody, resp.StatusCode, nil
}
