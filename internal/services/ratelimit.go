package services

import (
	"strconv"
	"sync"
	"time"
)

// RateLimiter enforces a minimum interval per user per feature key.
// Telegram gives no client IP to hang an HTTP limiter on, so this is a
// plain last-used map like the rest of the per-user state.
type RateLimiter struct {
	mu       sync.Mutex
	lastUsed map[string]time.Time
	now      func() time.Time
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		lastUsed: make(map[string]time.Time),
		now:      time.Now,
	}
}

func limiterKey(userID int64, feature string) string {
	return strconv.FormatInt(userID, 10) + "_" + feature
}

// Allow reports whether the user may use the feature now. When denied it
// returns the remaining wait. A granted call consumes the slot.
func (r *RateLimiter) Allow(userID int64, feature string, interval time.Duration) (time.Duration, bool) {
	if interval <= 0 {
		return 0, true
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	k := limiterKey(userID, feature)
	now := r.now()
	if last, ok := r.lastUsed[k]; ok {
		if wait := interval - now.Sub(last); wait > 0 {
			return wait, false
		}
	}
	r.lastUsed[k] = now
	return 0, true
}
