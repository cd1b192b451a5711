package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limit is a token bucket: PerMinute sustained, Burst at once.
type Limit struct {
	PerMinute int
	Burst     int
}

func (l Limit) every() rate.Limit {
	if l.PerMinute <= 0 {
		return rate.Inf
	}
	return rate.Every(time.Minute / time.Duration(l.PerMinute))
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one bucket per user and action.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limits   map[string]Limit
	fallback Limit
	now      func() time.Time
}

func NewRateLimiter(fallback Limit, perAction map[string]Limit) *RateLimiter {
	limits := make(map[string]Limit, len(perAction))
	for action, l := range perAction {
		limits[action] = l
	}
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limits:   limits,
		fallback: fallback,
		now:      time.Now,
	}
}

// Allow consumes a token for userID/action. When the bucket is empty it
// returns false and how long to wait before the next token.
func (rl *RateLimiter) Allow(userID, action string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	key := userID + ":" + action

	v, ok := rl.visitors[key]
	if !ok {
		l, found := rl.limits[action]
		if !found {
			l = rl.fallback
		}
		burst := l.Burst
		if burst <= 0 {
			burst = 1
		}
		v = &visitor{limiter: rate.NewLimiter(l.every(), burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = now

	r := v.limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, 0
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// Cleanup drops buckets idle for longer than maxIdle.
func (rl *RateLimiter) Cleanup(maxIdle time.Duration) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	removed := 0
	for key, v := range rl.visitors {
		if now.Sub(v.lastSeen) > maxIdle {
			delete(rl.visitors, key)
			removed++
		}
	}
	return removed
}

func (rl *RateLimiter) StartCleanupRoutine(ctx context.Context, interval, maxIdle time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rl.Cleanup(maxIdle)
			}
		}
	}()
}
