// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"net/http"

	"github.com/HarleyCoops/SeeDream/pkg/types"
)

// githubAPIBase is the GitHub REST API root, shared by the repository and
// code search clients. Declared as a var so tests can substitute an
// httptest server.
var githubAPIBase = "https://api.github.com"

// setGitHubHeaders applies the headers common to all GitHub API requests.
// Without a token the request proceeds unauthenticated, under GitHub's
// tighter anonymous rate limits.
func setGitHubHeaders(req *http.Request, cfg types.WatchConfig) {
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", cfg.UserAgent)
	if cfg.GitHubToken != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.GitHubToken)
	}
}
