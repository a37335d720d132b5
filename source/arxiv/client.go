// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package arxiv

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/poiesic/paperflow/core"
	"github.com/poiesic/paperflow/source"
	"golang.org/x/sync/errgroup"
)

const (
	defaultEndpoint = "http://export.arxiv.org/api/query"
	defaultPageSize = 100

	// maxPages bounds pagination per category for a single day.
	maxPages = 20
)

func init() {
	source.Register("arxiv", func(options map[string]string) (source.Source, error) {
		client := NewClient()
		if endpoint, ok := options["endpoint"]; ok {
			client.endpoint = endpoint
		}
		if raw, ok := options["page_size"]; ok {
			size, err := strconv.Atoi(raw)
			if err != nil || size < 1 {
				return nil, fmt.Errorf("arxiv: invalid page_size %q", raw)
			}
			client.pageSize = size
		}
		return client, nil
	})
}

// Client fetches papers from the arXiv Atom API.
//
// Categories are fetched concurrently, each paginated newest-first until
// entries fall before the target day.
type Client struct {
	endpoint   string
	pageSize   int
	httpClient *http.Client
	logger     *slog.Logger
}

var _ source.Source = (*Client)(nil)

// NewClient creates a client against the public arXiv API.
func NewClient() *Client {
	return &Client{
		endpoint: defaultEndpoint,
		pageSize: defaultPageSize,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: slog.Default().With("component", "arxiv-source"),
	}
}

// Name returns "arxiv".
func (c *Client) Name() string {
	return "arxiv"
}

// Fetch returns the papers published on the given UTC day across the
// requested categories. A paper cross-listed in several categories is
// returned once, under the first requested category that listed it.
func (c *Client) Fetch(ctx context.Context, day time.Time, categories []string) ([]core.Paper, error) {
	if len(categories) == 0 {
		return []core.Paper{}, nil
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	var mu sync.Mutex
	byCategory := make(map[string][]core.Paper, len(categories))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, category := range categories {
		g.Go(func() error {
			papers, err := c.fetchCategory(gctx, category, dayStart, dayEnd)
			if err != nil {
				return err
			}
			mu.Lock()
			byCategory[category] = papers
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Merge in the caller's category order, deduplicating cross-listings.
	seen := make(map[string]bool)
	merged := make([]core.Paper, 0)
	for _, category := range categories {
		for _, paper := range byCategory[category] {
			if seen[paper.ArxivId] {
				continue
			}
			seen[paper.ArxivId] = true
			merged = append(merged, paper)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Published.Before(merged[j].Published)
	})

	c.logger.Info("fetched papers",
		"day", core.DayKey(day),
		"categories", len(categories),
		"papers", len(merged))
	return merged, nil
}

// fetchCategory pages through one category newest-first and keeps the
// entries published inside [dayStart, dayEnd).
func (c *Client) fetchCategory(ctx context.Context, category string, dayStart, dayEnd time.Time) ([]core.Paper, error) {
	papers := make([]core.Paper, 0)

	for page := 0; page < maxPages; page++ {
		feed, err := c.queryPage(ctx, category, page*c.pageSize)
		if err != nil {
			return nil, err
		}
		if len(feed.Entries) == 0 {
			break
		}

		pastWindow := false
		for _, entry := range feed.Entries {
			published := entry.Published.UTC()
			if published.Before(dayStart) {
				// Entries are sorted newest-first; everything after this
				// point is older than the window.
				pastWindow = true
				break
			}
			if !published.Before(dayEnd) {
				continue
			}
			papers = append(papers, entry.toPaper(category))
		}

		if pastWindow || len(feed.Entries) < c.pageSize {
			break
		}
	}

	return papers, nil
}

func (c *Client) queryPage(ctx context.Context, category string, start int) (*atomFeed, error) {
	params := url.Values{}
	params.Set("search_query", "cat:"+category)
	params.Set("sortBy", "submittedDate")
	params.Set("sortOrder", "descending")
	params.Set("start", strconv.Itoa(start))
	params.Set("max_results", strconv.Itoa(c.pageSize))

	requestURL := c.endpoint + "?" + params.Encode()
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", source.ErrUnavailable, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d from %s", source.ErrUnavailable, response.StatusCode, c.endpoint)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", source.ErrUnavailable, err)
	}

	return parseFeed(body)
}
