package ratelimit

import (
	"sync"
	"time"
)

// SlidingWindow limits requests per key over a trailing time window.
// State is in-process only and resets on restart; when the service is
// scaled horizontally each instance counts independently.
type SlidingWindow struct {
	limit  int
	window time.Duration

	mu      sync.Mutex
	buckets map[string][]time.Time
	now     func() time.Time
}

// NewSlidingWindow creates a limiter allowing limit requests per key
// within the trailing window.
func NewSlidingWindow(limit int, window time.Duration) *SlidingWindow {
	return &SlidingWindow{
		limit:   limit,
		window:  window,
		buckets: make(map[string][]time.Time),
		now:     time.Now,
	}
}

// Allow reports whether the key is within quota. An accepted request is
// recorded; a rejected one is not. Prune, count and append happen under
// one critical section so concurrent callers cannot both slip past the
// limit.
func (l *SlidingWindow) Allow(key string) bool {
	if key == "" {
		key = "unknown"
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	kept := l.buckets[key][:0]
	for _, ts := range l.buckets[key] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= l.limit {
		l.buckets[key] = kept
		return false
	}

	l.buckets[key] = append(kept, now)
	return true
}
