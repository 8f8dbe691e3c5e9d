package handlers

import (
	"net/http"

	"gitlab.com/remotefs/remotefs/internal/config"
	"gitlab.com/remotefs/remotefs/internal/ratelimiter"
)

// Ratelimiter configures the source IP rate limiter middleware
func Ratelimiter(handler http.Handler, config *config.RateLimit) http.Handler {
	if config.SourceIPLimitPerSecond == 0 {
		return handler
	}

	sourceIPLimiter := ratelimiter.New(
		ratelimiter.WithLimitPerSecond(config.SourceIPLimitPerSecond),
		ratelimiter.WithBurstSize(config.SourceIPBurst),
	)

	return sourceIPLimiter.Middleware(handler)
}
