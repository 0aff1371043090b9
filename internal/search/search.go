// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries public search APIs for mentions of the watched
// entity and merges the hits into one deduplicated snapshot.
package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/HarleyCoops/SeeDream/internal/httputil"
	"github.com/HarleyCoops/SeeDream/pkg/types"
)

// Sentinel errors returned by source clients. Aggregate treats all of them
// as per-call warnings; none aborts a run.
var (
	// ErrSourceUnavailable marks a non-2xx response from a source API.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrMalformedResponse marks a payload that cannot be parsed into the
	// expected shape.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrRateLimited marks a rate-limit rejection (HTTP 429, or GitHub's
	// 403 with an exhausted quota). The call is skipped, not retried.
	ErrRateLimited = errors.New("rate limited")
)

// Client searches a single external API. Each source (GitHub repositories,
// GitHub code, arXiv, Hugging Face) implements this interface.
type Client interface {
	Name() string
	Source() types.Source

	// RateKey tags the client's calls for the rate limiter. Clients that
	// share an API quota share a key.
	RateKey() string

	// SupportsOrg reports whether searches can be scoped to an organization.
	SupportsOrg() bool

	// RequiresOrg reports whether searches are meaningless without an
	// organization scope (GitHub code search).
	RequiresOrg() bool

	// Search returns normalized hits for one term, optionally scoped to org.
	// Zero matches is a normal outcome: nil records, nil error.
	Search(ctx context.Context, term types.QueryTerm, org string, cfg types.WatchConfig) ([]types.ResultRecord, error)
}

// Aggregate runs every client over the configured terms and organizations,
// sequentially and paced by limiter, and freezes the merged hits into a
// snapshot. Per-call failures are written to w as warnings and skipped; a
// single source outage never aborts the run. Only an empty plan (no clients
// or no terms) is an error, returned before any network call.
func Aggregate(ctx context.Context, clients []Client, limiter *httputil.Limiter, cfg types.WatchConfig, w io.Writer) (types.Snapshot, error) {
	if len(clients) == 0 {
		return types.Snapshot{}, fmt.Errorf("no source clients configured")
	}
	if len(cfg.Terms) == 0 {
		return types.Snapshot{}, fmt.Errorf("no query terms configured")
	}

	var all []types.ResultRecord
	for _, c := range clients {
		if !c.RequiresOrg() {
			for _, term := range cfg.Terms {
				all = append(all, invoke(ctx, c, limiter, term, "", cfg, w)...)
			}
		}
		if c.SupportsOrg() {
			for _, org := range cfg.Orgs {
				for _, term := range cfg.Terms {
					all = append(all, invoke(ctx, c, limiter, term, org, cfg, w)...)
				}
			}
		}
	}

	records, removed := deduplicate(all)
	if removed > 0 {
		fmt.Fprintf(w, "%d duplicate hit(s) collapsed\n", removed)
	}

	return types.Snapshot{
		CreatedAt: time.Now(),
		Terms:     cfg.Terms,
		Records:   records,
	}, nil
}

// invoke paces and executes one search call, converting failures into
// warnings on w.
func invoke(ctx context.Context, c Client, limiter *httputil.Limiter, term types.QueryTerm, org string, cfg types.WatchConfig, w io.Writer) []types.ResultRecord {
	limiter.Wait(c.RateKey())

	records, err := c.Search(ctx, term, org, cfg)
	if err != nil {
		scope := fmt.Sprintf("%q", term)
		if org != "" {
			scope = fmt.Sprintf("%q in org %s", term, org)
		}
		if errors.Is(err, ErrRateLimited) {
			fmt.Fprintf(w, "warning: %s rate limited for %s, skipping\n", c.Name(), scope)
		} else {
			fmt.Fprintf(w, "warning: %s failed for %s: %v\n", c.Name(), scope, err)
		}
		return nil
	}
	return records
}

// deduplicate collapses records that share (source, identifier), keeping
// the first-seen record. Overlapping terms routinely return the same hit.
func deduplicate(records []types.ResultRecord) ([]types.ResultRecord, int) {
	seen := make(map[string]bool)
	var deduped []types.ResultRecord
	removed := 0

	for _, r := range records {
		key := string(r.Source) + "\x00" + r.Identifier
		if seen[key] {
			removed++
			continue
		}
		seen[key] = true
		deduped = append(deduped, r)
	}
	return deduped, removed
}

// maxResults returns the per-call result cap.
func maxResults(cfg types.WatchConfig) int {
	if cfg.MaxResults > 0 {
		return cfg.MaxResults
	}
	return 10
}
