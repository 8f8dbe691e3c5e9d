package ratelimiter

import (
	"net"
	"net/http"

	"github.com/sirupsen/logrus"
	"gitlab.com/gitlab-org/labkit/correlation"
	"gitlab.com/gitlab-org/labkit/log"

	"gitlab.com/remotefs/remotefs/internal/httperrors"
)

const headerXForwardedFor = "X-Forwarded-For"

// Middleware rejects requests with 429 once their source IP runs out of tokens.
// The source IP is taken from r.RemoteAddr, wrap the result with
// handlers.ProxyHeaders to honour X-Forwarded-For.
func (rl *RateLimiter) Middleware(handler http.Handler) http.Handler {
	if !rl.Enabled() {
		return handler
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sourceIP := remoteAddrWithoutPort(r)
		if !rl.Allowed(sourceIP) {
			rl.logSourceIP(r, sourceIP)
			rl.blockedCount.Inc()
			httperrors.Serve429(w)

			return
		}

		handler.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) logSourceIP(r *http.Request, sourceIP string) {
	log.WithFields(logrus.Fields{
		"handler":                       "source_ip_rate_limiter",
		"correlation_id":                correlation.ExtractFromContext(r.Context()),
		"req_method":                    r.Method,
		"req_path":                      r.URL.Path,
		"remote_addr":                   r.RemoteAddr,
		"source_ip":                     sourceIP,
		"x_forwarded_for":               r.Header.Get(headerXForwardedFor),
		"rate_limiter_limit_per_second": rl.limitPerSecond,
		"rate_limiter_burst_size":       rl.burstSize,
	}).Debug("source IP hit rate limit")
}

func remoteAddrWithoutPort(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
