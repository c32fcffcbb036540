package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterEnforcesInterval(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r := NewRateLimiter()
	r.now = func() time.Time { return now }

	_, ok := r.Allow(1, "tip", time.Hour)
	assert.True(t, ok, "first use must be allowed")

	wait, ok := r.Allow(1, "tip", time.Hour)
	assert.False(t, ok)
	assert.Equal(t, time.Hour, wait)

	now = now.Add(30 * time.Minute)
	wait, ok = r.Allow(1, "tip", time.Hour)
	assert.False(t, ok)
	assert.Equal(t, 30*time.Minute, wait)

	now = now.Add(31 * time.Minute)
	_, ok = r.Allow(1, "tip", time.Hour)
	assert.True(t, ok, "interval elapsed")
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	r := NewRateLimiter()

	_, ok := r.Allow(1, "tip", time.Hour)
	assert.True(t, ok)

	// Different feature, same user.
	_, ok = r.Allow(1, "test", time.Hour)
	assert.True(t, ok)

	// Different user, same feature.
	_, ok = r.Allow(2, "tip", time.Hour)
	assert.True(t, ok)
}

func TestRateLimiterZeroIntervalAlwaysAllows(t *testing.T) {
	r := NewRateLimiter()
	for i := 0; i < 3; i++ {
		_, ok := r.Allow(1, "tip", 0)
		assert.True(t, ok)
	}
}
