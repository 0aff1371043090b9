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

// CodeSearchClient queries GitHub code search within an organization's
// repositories. GitHub requires a scope qualifier for code search, so the
// client only runs when organizations are configured.
type CodeSearchClient struct {
	Client *http.Client
}

// Name returns the client identifier.
func (c *CodeSearchClient) Name() string { return "github_code" }

// Source returns the result category.
func (c *CodeSearchClient) Source() types.Source { return types.SourceCode }

// RateKey tags code search calls for the rate limiter. Code search has its
// own, much tighter quota than the rest of the GitHub API.
func (c *CodeSearchClient) RateKey() string { return "code" }

// SupportsOrg reports that searches are scoped with an org qualifier.
func (c *CodeSearchClient) SupportsOrg() bool { return true }

// RequiresOrg reports that searches need an organization scope.
func (c *CodeSearchClient) RequiresOrg() bool { return true }

// Search queries GitHub /search/code for term within org's code and maps
// each matching file to a ResultRecord.
func (c *CodeSearchClient) Search(ctx context.Context, term types.QueryTerm, org string, cfg types.WatchConfig) ([]types.ResultRecord, error) {
	if org == "" {
		return nil, fmt.Errorf("code search requires an organization scope")
	}

	params := url.Values{
		"q":        {string(term) + " org:" + org},
		"per_page": {strconv.Itoa(maxResults(cfg))},
	}
	reqURL := githubAPIBase + "/search/code?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	setGitHubHeaders(req, cfg)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GitHub code search: %w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if httputil.RateLimited(resp) {
		return nil, fmt.Errorf("GitHub code search: %w", ErrRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub code search returned HTTP %d: %w", resp.StatusCode, ErrSourceUnavailable)
	}

	var cr codeSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("parsing GitHub code response: %w", ErrMalformedResponse)
	}

	now := time.Now().UTC()
	var records []types.ResultRecord
	for i, item := range cr.Items {
		if i >= maxResults(cfg) {
			break
		}
		records = append(records, types.ResultRecord{
			Source:      types.SourceCode,
			Title:       item.Repository.FullName + "/" + item.Path,
			URL:         item.HTMLURL,
			Identifier:  item.Repository.FullName + "/" + item.Path,
			RetrievedAt: now,
			Extra: map[string]string{
				"repository": item.Repository.FullName,
			},
		})
	}
	return records, nil
}

// GitHub code search JSON structures.
type codeSearchResponse struct {
	TotalCount int        `json:"total_count"`
	Items      []codeItem `json:"items"`
}

type codeItem struct {
	Name       string         `json:"name"`
	Path       string         `json:"path"`
	HTMLURL    string         `json:"html_url"`
	Repository codeRepository `json:"repository"`
}

type codeRepository struct {
	FullName string `json:"full_name"`
}
