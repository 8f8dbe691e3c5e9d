package ratelimiter

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"gitlab.com/remotefs/remotefs/internal/lru"
	"gitlab.com/remotefs/remotefs/metrics"
)

const (
	// DefaultSourceIPBurstSize is the maximum burst allowed per source IP.
	// E.g. The first 100 requests within 1s will succeed, but the 101st will fail.
	DefaultSourceIPBurstSize = 100

	defaultSourceIPItems              = 5000
	defaultSourceIPExpirationInterval = time.Minute
)

// Option function to configure a RateLimiter
type Option func(*RateLimiter)

// RateLimiter holds an LRU cache of token buckets, one per source IP.
// It uses "golang.org/x/time/rate" as its token bucket implementation.
type RateLimiter struct {
	now            func() time.Time
	limitPerSecond float64
	burstSize      int
	blockedCount   prometheus.Counter
	cache          *lru.Cache
}

// New creates a new RateLimiter with default values that can be configured via Option functions
func New(opts ...Option) *RateLimiter {
	rl := &RateLimiter{
		now:          time.Now,
		burstSize:    DefaultSourceIPBurstSize,
		blockedCount: metrics.RateLimitSourceIPBlockedCount,
		cache: lru.New(
			"source_ip",
			defaultSourceIPItems,
			defaultSourceIPExpirationInterval,
			metrics.RateLimitSourceIPCachedEntries,
			metrics.RateLimitSourceIPCacheRequests,
		),
	}

	for _, opt := range opts {
		opt(rl)
	}

	return rl
}

// WithNow replaces the RateLimiter now function
func WithNow(now func() time.Time) Option {
	return func(rl *RateLimiter) {
		rl.now = now
	}
}

// WithLimitPerSecond configures the number of requests per second each source IP
// is allowed to make, 0 disables the limiter
func WithLimitPerSecond(limit float64) Option {
	return func(rl *RateLimiter) {
		rl.limitPerSecond = limit
	}
}

// WithBurstSize configures the burst allowed per source IP
func WithBurstSize(burst int) Option {
	return func(rl *RateLimiter) {
		rl.burstSize = burst
	}
}

// Enabled reports whether requests can be rejected at all
func (rl *RateLimiter) Enabled() bool {
	return rl.limitPerSecond > 0
}

func (rl *RateLimiter) limiter(sourceIP string) *rate.Limiter {
	return rl.cache.FindOrCreate(sourceIP, func() interface{} {
		return rate.NewLimiter(rate.Limit(rl.limitPerSecond), rl.burstSize)
	}).(*rate.Limiter)
}

// Allowed checks that sourceIP is allowed to perform one more request
func (rl *RateLimiter) Allowed(sourceIP string) bool {
	if !rl.Enabled() {
		return true
	}

	// AllowN allows us to use the rl.now function, so we can test this more easily.
	return rl.limiter(sourceIP).AllowN(rl.now(), 1)
}
