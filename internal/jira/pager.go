package jira

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const defaultPageSize = 50

// Pager walks a paginated search result one issue at a time, fetching
// pages transparently as the caller consumes them. A Pager is not
// restartable; call Client.Search again for a fresh walk.
type Pager struct {
	client  *Client
	jql     string
	fields  []string
	startAt int
	total   int
	fetched bool
	buf     []Issue
}

// Search prepares a lazy walk over all issues matching the JQL query.
// fields limits which issue fields the tracker includes per issue, keeping
// page payloads bounded. Nothing is fetched until the first Next call.
func (c *Client) Search(jql string, fields []string) *Pager {
	return &Pager{
		client: c,
		jql:    jql,
		fields: fields,
	}
}

// Next returns the next matching issue, or (nil, nil) once the result set
// is exhausted. Network errors abort the walk; the Pager must then be
// discarded.
func (p *Pager) Next(ctx context.Context) (*Issue, error) {
	if len(p.buf) == 0 {
		if p.fetched && p.startAt >= p.total {
			return nil, nil
		}
		if err := p.fetch(ctx); err != nil {
			return nil, err
		}
		if len(p.buf) == 0 {
			return nil, nil
		}
	}
	issue := p.buf[0]
	p.buf = p.buf[1:]
	return &issue, nil
}

func (p *Pager) fetch(ctx context.Context) error {
	q := url.Values{}
	q.Set("jql", p.jql)
	q.Set("fields", strings.Join(p.fields, ","))
	q.Set("startAt", strconv.Itoa(p.startAt))
	q.Set("maxResults", strconv.Itoa(p.client.pageSize))

	var sr searchResponse
	if err := p.client.getJSON(ctx, "/search", q, &sr); err != nil {
		return fmt.Errorf("search %q: %w", p.jql, err)
	}
	p.buf = sr.Issues
	p.total = sr.Total
	p.startAt += len(sr.Issues)
	p.fetched = true
	return nil
}
