// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock drives a Limiter without real sleeps. Sleeping advances the
// clock by the requested amount, as a real wait would.
type fakeClock struct {
	current time.Time
	slept   []time.Duration
}

func (c *fakeClock) now() time.Time { return c.current }

func (c *fakeClock) sleep(d time.Duration) {
	c.slept = append(c.slept, d)
	c.current = c.current.Add(d)
}

func newTestLimiter(intervals map[string]time.Duration) (*Limiter, *fakeClock) {
	clock := &fakeClock{current: time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)}
	l := NewLimiter(intervals)
	l.now = clock.now
	l.sleep = clock.sleep
	return l, clock
}

func TestWaitFirstCallNoDelay(t *testing.T) {
	l, clock := newTestLimiter(map[string]time.Duration{"repo": 2 * time.Second})

	l.Wait("repo")

	assert.Empty(t, clock.slept)
}

func TestWaitSameKeyDelayed(t *testing.T) {
	l, clock := newTestLimiter(map[string]time.Duration{"repo": 2 * time.Second})

	l.Wait("repo")
	l.Wait("repo")

	if assert.Len(t, clock.slept, 1) {
		assert.Equal(t, 2*time.Second, clock.slept[0])
	}
}

func TestWaitPartialElapse(t *testing.T) {
	l, clock := newTestLimiter(map[string]time.Duration{"paper": 3 * time.Second})

	l.Wait("paper")
	clock.current = clock.current.Add(1 * time.Second)
	l.Wait("paper")

	if assert.Len(t, clock.slept, 1) {
		assert.Equal(t, 2*time.Second, clock.slept[0])
	}
}

func TestWaitIntervalAlreadyElapsed(t *testing.T) {
	l, clock := newTestLimiter(map[string]time.Duration{"model": time.Second})

	l.Wait("model")
	clock.current = clock.current.Add(5 * time.Second)
	l.Wait("model")

	assert.Empty(t, clock.slept)
}

func TestWaitDistinctKeysIndependent(t *testing.T) {
	l, clock := newTestLimiter(map[string]time.Duration{
		"repo": 2 * time.Second,
		"code": 5 * time.Second,
	})

	l.Wait("repo")
	l.Wait("code")
	l.Wait("repo")

	// Only the second repo call waits; code never blocks repo.
	if assert.Len(t, clock.slept, 1) {
		assert.Equal(t, 2*time.Second, clock.slept[0])
	}
}

func TestWaitUnconfiguredKey(t *testing.T) {
	l, clock := newTestLimiter(map[string]time.Duration{"repo": 2 * time.Second})

	l.Wait("unknown")
	l.Wait("unknown")

	assert.Empty(t, clock.slept)
}

func TestRateLimited(t *testing.T) {
	tests := []struct {
		name   string
		status int
		header map[string]string
		want   bool
	}{
		{"429", http.StatusTooManyRequests, nil, true},
		{"403 quota exhausted", http.StatusForbidden, map[string]string{"X-RateLimit-Remaining": "0"}, true},
		{"403 plain forbidden", http.StatusForbidden, map[string]string{"X-RateLimit-Remaining": "12"}, false},
		{"403 no header", http.StatusForbidden, nil, false},
		{"200", http.StatusOK, nil, false},
		{"503", http.StatusServiceUnavailable, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &http.Response{StatusCode: tt.status, Header: http.Header{}}
			for k, v := range tt.header {
				resp.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, RateLimited(resp))
		})
	}
}
