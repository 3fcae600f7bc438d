// Package ratelimiter throttles repeated attempts per key.
package ratelimiter

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// pruneThreshold is the number of tracked keys above which stale windows are dropped.
const pruneThreshold = 1024

// Limiter decides whether another attempt identified by key may proceed.
type Limiter interface {
	Allow(key string) bool
	Reset(key string)
}

type window struct {
	count     int
	lastReset time.Time
}

// RateLimiter allows at most limit attempts per key within each interval.
// The window of a key starts with its first attempt.
type RateLimiter struct {
	mu       sync.Mutex
	limit    int
	interval time.Duration
	windows  map[string]*window
	now      func() time.Time
}

var _ Limiter = (*RateLimiter)(nil)

// NewRateLimiter creates a RateLimiter. A limit <= 0 disables throttling.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	if interval <= 0 {
		interval = time.Minute
	}
	return &RateLimiter{
		limit:    limit,
		interval: interval,
		windows:  make(map[string]*window),
		now:      time.Now,
	}
}

// Allow records an attempt for key and reports whether it is within the limit.
func (rl *RateLimiter) Allow(key string) bool {
	if rl.limit <= 0 {
		return true
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if len(rl.windows) > pruneThreshold {
		rl.prune(now)
	}

	w, ok := rl.windows[key]
	if !ok || now.Sub(w.lastReset) >= rl.interval {
		w = &window{lastReset: now}
		rl.windows[key] = w
	}
	w.count++
	if w.count > rl.limit {
		logrus.WithFields(logrus.Fields{
			"key":   key,
			"limit": rl.limit,
			"retry": rl.interval - now.Sub(w.lastReset),
		}).Warn("rate limit hit")
		return false
	}
	return true
}

// Reset forgets the attempts recorded for key.
func (rl *RateLimiter) Reset(key string) {
	rl.mu.Lock()
	delete(rl.windows, key)
	rl.mu.Unlock()
}

func (rl *RateLimiter) prune(now time.Time) {
	for k, w := range rl.windows {
		if now.Sub(w.lastReset) >= rl.interval {
			delete(rl.windows, k)
		}
	}
}
