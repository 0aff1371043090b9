// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/HarleyCoops/SeeDream/internal/httputil"
	"github.com/HarleyCoops/SeeDream/pkg/types"
)

// RepoSearchClient queries GitHub repository search. Searches run once per
// term and once more per term for each configured organization.
type RepoSearchClient struct {
	Client *http.Client
}

// Name returns the client identifier.
func (c *RepoSearchClient) Name() string { return "github_repos" }

// Source returns the result category.
func (c *RepoSearchClient) Source() types.Source { return types.SourceRepo }

// RateKey tags repository search calls for the rate limiter.
func (c *RepoSearchClient) RateKey() string { return "repo" }

// SupportsOrg reports that searches can be scoped with an org qualifier.
func (c *RepoSearchClient) SupportsOrg() bool { return true }

// RequiresOrg reports that unscoped searches are also useful.
func (c *RepoSearchClient) RequiresOrg() bool { return false }

// Search queries GitHub /search/repositories for term, scoped to org when
// given, and maps each hit to a ResultRecord.
func (c *RepoSearchClient) Search(ctx context.Context, term types.QueryTerm, org string, cfg types.WatchConfig) ([]types.ResultRecord, error) {
	q := string(term)
	if org != "" {
		q += " org:" + org
	}

	params := url.Values{
		"q":        {q},
		"sort":     {"updated"},
		"order":    {"desc"},
		"per_page": {strconv.Itoa(maxResults(cfg))},
	}
	reqURL := githubAPIBase + "/search/repositories?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	setGitHubHeaders(req, cfg)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GitHub repository search: %w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if httputil.RateLimited(resp) {
		return nil, fmt.Errorf("GitHub repository search: %w", ErrRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub repository search returned HTTP %d: %w", resp.StatusCode, ErrSourceUnavailable)
	}

	var rr repoSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return nil, fmt.Errorf("parsing GitHub repository response: %w", ErrMalformedResponse)
	}

	now := time.Now().UTC()
	var records []types.ResultRecord
	for i, item := range rr.Items {
		if i >= maxResults(cfg) {
			break
		}
		records = append(records, types.ResultRecord{
			Source:      types.SourceRepo,
			Title:       item.FullName,
			URL:         item.HTMLURL,
			Identifier:  item.FullName,
			Snippet:     item.Description,
			RetrievedAt: now,
			Extra: map[string]string{
				"stars":     strconv.Itoa(item.StargazersCount),
				"pushed_at": item.PushedAt,
			},
		})
	}
	return records, nil
}

// GitHub repository search JSON structures.
type repoSearchResponse struct {
	TotalCount int        `json:"total_count"`
	Items      []repoItem `json:"items"`
}

type repoItem struct {
	FullName        string `json:"full_name"`
	HTMLURL         string `json:"html_url"`
	Description     string `json:"description"`
	StargazersCount int    `json:"stargazers_count"`
	PushedAt        string `json:"pushed_at"`
}
