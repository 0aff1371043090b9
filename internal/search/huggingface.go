// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/HarleyCoops/SeeDream/internal/httputil"
	"github.com/HarleyCoops/SeeDream/pkg/types"
)

// hfAPIBase is the Hugging Face model search endpoint. Declared as a var
// so tests can substitute an httptest server.
var hfAPIBase = "https://huggingface.co/api/models"

// ModelHubClient queries the Hugging Face models API.
type ModelHubClient struct {
	Client *http.Client
}

// Name returns the client identifier.
func (c *ModelHubClient) Name() string { return "huggingface" }

// Source returns the result category.
func (c *ModelHubClient) Source() types.Source { return types.SourceModel }

// RateKey tags model-hub search calls for the rate limiter.
func (c *ModelHubClient) RateKey() string { return "model" }

// SupportsOrg reports that model search has no organization scoping.
func (c *ModelHubClient) SupportsOrg() bool { return false }

// RequiresOrg reports that searches run unscoped.
func (c *ModelHubClient) RequiresOrg() bool { return false }

// Search queries the Hugging Face models API for term and maps each model
// to a ResultRecord keyed by its model id.
func (c *ModelHubClient) Search(ctx context.Context, term types.QueryTerm, _ string, cfg types.WatchConfig) ([]types.ResultRecord, error) {
	params := url.Values{
		"search": {string(term)},
		"limit":  {strconv.Itoa(maxResults(cfg))},
	}
	reqURL := hfAPIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Hugging Face API request: %w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if httputil.RateLimited(resp) {
		return nil, fmt.Errorf("Hugging Face API: %w", ErrRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Hugging Face API returned HTTP %d: %w", resp.StatusCode, ErrSourceUnavailable)
	}

	var models []hfModel
	if err := json.NewDecoder(resp.Body).Decode(&models); err != nil {
		return nil, fmt.Errorf("parsing Hugging Face response: %w", ErrMalformedResponse)
	}

	now := time.Now().UTC()
	var records []types.ResultRecord
	for i, m := range models {
		if i >= maxResults(cfg) {
			break
		}

		id := m.ModelID
		if id == "" {
			id = m.ID
		}
		if id == "" {
			continue
		}

		extra := map[string]string{}
		if m.Downloads > 0 {
			extra["downloads"] = strconv.Itoa(m.Downloads)
		}
		if m.Likes > 0 {
			extra["likes"] = strconv.Itoa(m.Likes)
		}
		if len(m.Tags) > 0 {
			extra["tags"] = strings.Join(m.Tags, ", ")
		}

		records = append(records, types.ResultRecord{
			Source:      types.SourceModel,
			Title:       id,
			URL:         "https://huggingface.co/" + id,
			Identifier:  id,
			RetrievedAt: now,
			Extra:       extra,
		})
	}
	return records, nil
}

// Hugging Face API JSON structures.
type hfModel struct {
	ID        string   `json:"id"`
	ModelID   string   `json:"modelId"`
	Downloads int      `json:"downloads"`
	Likes     int      `json:"likes"`
	Tags      []string `json:"tags"`
}
