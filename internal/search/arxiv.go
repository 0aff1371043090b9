// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/HarleyCoops/SeeDream/internal/httputil"
	"github.com/HarleyCoops/SeeDream/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// ArxivClient queries the arXiv export API. The response is an Atom feed,
// parsed with gofeed.
type ArxivClient struct {
	Client *http.Client
}

// Name returns the client identifier.
func (c *ArxivClient) Name() string { return "arxiv" }

// Source returns the result category.
func (c *ArxivClient) Source() types.Source { return types.SourcePaper }

// RateKey tags preprint search calls for the rate limiter.
func (c *ArxivClient) RateKey() string { return "paper" }

// SupportsOrg reports that arXiv has no organization scoping.
func (c *ArxivClient) SupportsOrg() bool { return false }

// RequiresOrg reports that searches run unscoped.
func (c *ArxivClient) RequiresOrg() bool { return false }

// Search queries arXiv for term against titles and abstracts and maps each
// entry to a ResultRecord keyed by its canonical arXiv ID.
func (c *ArxivClient) Search(ctx context.Context, term types.QueryTerm, _ string, cfg types.WatchConfig) ([]types.ResultRecord, error) {
	params := url.Values{
		"search_query": {fmt.Sprintf("all:%q", string(term))},
		"start":        {"0"},
		"max_results":  {strconv.Itoa(maxResults(cfg))},
	}
	reqURL := arxivAPIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if httputil.RateLimited(resp) {
		return nil, fmt.Errorf("arXiv API: %w", ErrRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d: %w", resp.StatusCode, ErrSourceUnavailable)
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing arXiv feed: %w", ErrMalformedResponse)
	}

	now := time.Now().UTC()
	var records []types.ResultRecord
	for i, item := range feed.Items {
		if i >= maxResults(cfg) {
			break
		}

		arxivID := extractArxivID(item.GUID)
		if arxivID == "" {
			arxivID = extractArxivID(item.Link)
		}
		if arxivID == "" {
			continue
		}

		extra := map[string]string{}
		if item.PublishedParsed != nil {
			extra["published"] = item.PublishedParsed.Format("2006-01-02")
		}
		if len(item.Authors) > 0 {
			names := make([]string, 0, len(item.Authors))
			for _, a := range item.Authors {
				names = append(names, strings.TrimSpace(a.Name))
			}
			extra["authors"] = strings.Join(names, ", ")
		}

		records = append(records, types.ResultRecord{
			Source:      types.SourcePaper,
			Title:       strings.Join(strings.Fields(item.Title), " "),
			URL:         item.Link,
			Identifier:  arxivID,
			Snippet:     strings.TrimSpace(item.Description),
			RetrievedAt: now,
			Extra:       extra,
		})
	}
	return records, nil
}

// extractArxivID pulls the arXiv ID from an entry URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" -> "2301.07041").
func extractArxivID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	id := idURL[idx+len(prefix):]

	// Strip version suffix (e.g. "v1", "v2").
	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		if _, err := strconv.Atoi(id[vIdx+1:]); err == nil {
			id = id[:vIdx]
		}
	}
	return id
}
