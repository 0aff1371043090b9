// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import "net/http"

// RateLimited reports whether resp is a rate-limit rejection. GitHub signals
// an exhausted quota as 403 with X-RateLimit-Remaining: 0 rather than 429.
func RateLimited(resp *http.Response) bool {
	if resp.StatusCode == http.StatusTooManyRequests {
		return true
	}
	return resp.StatusCode == http.StatusForbidden &&
		resp.Header.Get("X-RateLimit-Remaining") == "0"
}
