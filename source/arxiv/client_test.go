package arxiv

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/poiesic/paperflow/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedHeader = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">`

func feedEntry(arxivId, title, published string) string {
	return fmt.Sprintf(`  <entry>
    <id>http://arxiv.org/abs/%sv1</id>
    <title>%s</title>
    <summary>Abstract of %s,
  wrapped across lines.</summary>
    <published>%s</published>
    <author><name>First Author</name></author>
    <author><name>Second Author</name></author>
    <link href="http://arxiv.org/abs/%sv1" rel="alternate" type="text/html"/>
  </entry>`, arxivId, title, title, published, arxivId)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient()
	client.endpoint = server.URL
	return client
}

func TestFetchFiltersToDay(t *testing.T) {
	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "cat:cs.CL", r.URL.Query().Get("search_query"))
		assert.Equal(t, "submittedDate", r.URL.Query().Get("sortBy"))

		fmt.Fprint(w, feedHeader)
		fmt.Fprint(w, feedEntry("2503.10001", "Too New", "2025-03-15T08:00:00Z"))
		fmt.Fprint(w, feedEntry("2503.10002", "In Window A", "2025-03-14T21:30:00Z"))
		fmt.Fprint(w, feedEntry("2503.10003", "In Window B", "2025-03-14T02:00:00Z"))
		fmt.Fprint(w, feedEntry("2503.09999", "Too Old", "2025-03-13T23:59:00Z"))
		fmt.Fprint(w, "</feed>")
	})

	papers, err := client.Fetch(context.Background(), day, []string{"cs.CL"})
	require.NoError(t, err)
	require.Len(t, papers, 2)

	// Results are ordered oldest-first within the day
	assert.Equal(t, "In Window B", papers[0].Title)
	assert.Equal(t, "In Window A", papers[1].Title)

	first := papers[0]
	assert.Equal(t, "2503.10003", first.ArxivId)
	assert.NotZero(t, first.Id)
	assert.Equal(t, "cs.CL", first.Category)
	assert.Equal(t, []string{"First Author", "Second Author"}, first.Authors)
	assert.Equal(t, "http://arxiv.org/abs/2503.10003v1", first.URL)
	assert.False(t, strings.Contains(first.Summary, "\n"), "summary should be unwrapped")
}

func TestFetchDeduplicatesCrossListings(t *testing.T) {
	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// Same paper shows up in both categories
		fmt.Fprint(w, feedHeader)
		fmt.Fprint(w, feedEntry("2503.10002", "Cross Listed", "2025-03-14T12:00:00Z"))
		fmt.Fprint(w, "</feed>")
	})

	papers, err := client.Fetch(context.Background(), day, []string{"cs.CL", "cs.LG"})
	require.NoError(t, err)
	require.Len(t, papers, 1)
	assert.Equal(t, "cs.CL", papers[0].Category)
}

func TestFetchPaginatesUntilPastDay(t *testing.T) {
	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	requests := 0

	var client *Client
	client = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprint(w, feedHeader)
		switch r.URL.Query().Get("start") {
		case "0":
			for i := 0; i < client.pageSize; i++ {
				fmt.Fprint(w, feedEntry(
					fmt.Sprintf("2503.2%04d", i),
					fmt.Sprintf("Page One %d", i),
					"2025-03-14T12:00:00Z"))
			}
		default:
			fmt.Fprint(w, feedEntry("2503.10003", "Last In Window", "2025-03-14T01:00:00Z"))
			fmt.Fprint(w, feedEntry("2503.09999", "Older", "2025-03-12T01:00:00Z"))
		}
		fmt.Fprint(w, "</feed>")
	})
	client.pageSize = 5

	papers, err := client.Fetch(context.Background(), day, []string{"cs.CV"})
	require.NoError(t, err)
	assert.Equal(t, 2, requests)
	assert.Len(t, papers, 6)
}

func TestFetchServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.Fetch(context.Background(), time.Now().UTC(), []string{"cs.CL"})
	require.ErrorIs(t, err, source.ErrUnavailable)
}

func TestFetchNoCategories(t *testing.T) {
	client := NewClient()
	papers, err := client.Fetch(context.Background(), time.Now().UTC(), nil)
	require.NoError(t, err)
	assert.Empty(t, papers)
}
