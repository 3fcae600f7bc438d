package ratelimiter

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestLimiter(limit int, interval time.Duration) (*RateLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(limit, interval)
	rl.now = clock.now
	return rl, clock
}

func TestRateLimiter_Allow(t *testing.T) {
	rl, clock := newTestLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("1.2.3.4"), "attempt %d", i+1)
	}
	assert.False(t, rl.Allow("1.2.3.4"), "fourth attempt in the window")
	assert.True(t, rl.Allow("5.6.7.8"), "keys are independent")

	clock.advance(59 * time.Second)
	assert.False(t, rl.Allow("1.2.3.4"))

	clock.advance(time.Second)
	assert.True(t, rl.Allow("1.2.3.4"), "a new window starts after the interval")
}

func TestRateLimiter_Reset(t *testing.T) {
	rl, _ := newTestLimiter(1, time.Minute)

	assert.True(t, rl.Allow("k"))
	assert.False(t, rl.Allow("k"))

	rl.Reset("k")
	assert.True(t, rl.Allow("k"))
}

func TestRateLimiter_Disabled(t *testing.T) {
	rl, _ := newTestLimiter(0, time.Minute)
	for i := 0; i < 100; i++ {
		assert.True(t, rl.Allow("k"))
	}
}

func TestRateLimiter_PrunesStaleWindows(t *testing.T) {
	rl, clock := newTestLimiter(5, time.Minute)
	for i := 0; i <= pruneThreshold; i++ {
		rl.Allow(fmt.Sprintf("key-%d", i))
	}
	clock.advance(2 * time.Minute)

	rl.Allow("fresh")

	assert.Len(t, rl.windows, 1)
}

func TestRateLimiter_Concurrent(t *testing.T) {
	rl := NewRateLimiter(50, time.Hour)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if rl.Allow("shared") {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowed)
}
