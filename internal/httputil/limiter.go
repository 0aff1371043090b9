// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP pacing helpers shared across source clients.
package httputil

import "time"

// Limiter enforces a minimum interval between successive calls that share a
// key. It is driven by a single sequential caller; concurrent callers sharing
// a key are out of scope.
type Limiter struct {
	intervals map[string]time.Duration
	lastCall  map[string]time.Time

	// now and sleep are swapped out by tests to avoid real delays.
	now   func() time.Time
	sleep func(time.Duration)
}

// NewLimiter returns a Limiter with the given per-key minimum intervals.
// Keys without a configured interval pass through without waiting.
func NewLimiter(intervals map[string]time.Duration) *Limiter {
	return &Limiter{
		intervals: intervals,
		lastCall:  make(map[string]time.Time),
		now:       time.Now,
		sleep:     time.Sleep,
	}
}

// Wait blocks until at least the configured interval for key has elapsed
// since the previous Wait for the same key. The first call per key returns
// immediately. Calls with different keys never block each other.
func (l *Limiter) Wait(key string) {
	interval := l.intervals[key]
	if last, ok := l.lastCall[key]; ok && interval > 0 {
		if elapsed := l.now().Sub(last); elapsed < interval {
			l.sleep(interval - elapsed)
		}
	}
	l.lastCall[key] = l.now()
}
