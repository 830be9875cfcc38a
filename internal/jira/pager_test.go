package jira

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPager(t *testing.T) {
	// Three issues served in pages of two.
	pages := map[string]string{
		"0": `{"startAt": 0, "maxResults": 2, "total": 3, "issues": [
			{"key": "ABC-1", "fields": {"summary": "one"}},
			{"key": "ABC-2", "fields": {"summary": "two"}}
		]}`,
		"2": `{"startAt": 2, "maxResults": 2, "total": 3, "issues": [
			{"key": "ABC-3", "fields": {"summary": "three"}}
		]}`,
	}

	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		requests++
		q := req.URL.Query()
		assert.Equal(t, "project = ABC", q.Get("jql"))
		assert.Equal(t, "summary,issuelinks", q.Get("fields"))
		assert.Equal(t, "2", q.Get("maxResults"))
		page, ok := pages[q.Get("startAt")]
		require.True(t, ok, "unexpected startAt %s", q.Get("startAt"))
		fmt.Fprint(w, page)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sekret")
	c.SetPageSize(2)

	ctx := context.Background()
	pager := c.Search("project = ABC", []string{"summary", "issuelinks"})

	var keys []string
	for {
		issue, err := pager.Next(ctx)
		require.NoError(t, err)
		if issue == nil {
			break
		}
		keys = append(keys, issue.Key)
	}

	assert.Equal(t, []string{"ABC-1", "ABC-2", "ABC-3"}, keys)
	assert.Equal(t, 2, requests)

	// Exhausted pagers stay exhausted without further fetches.
	issue, err := pager.Next(ctx)
	require.NoError(t, err)
	assert.Nil(t, issue)
	assert.Equal(t, 2, requests)
}

func TestPagerEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprint(w, `{"startAt": 0, "maxResults": 50, "total": 0, "issues": []}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sekret")
	pager := c.Search("project = EMPTY", []string{"summary"})
	issue, err := pager.Next(context.Background())
	require.NoError(t, err)
	assert.Nil(t, issue)
}
