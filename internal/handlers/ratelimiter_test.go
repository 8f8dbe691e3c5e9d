package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/remotefs/remotefs/internal/config"
	"gitlab.com/remotefs/remotefs/internal/testhelpers"
)

var next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func TestRatelimiter(t *testing.T) {
	tt := map[string]struct {
		limit              float64
		secondRemoteAddr   string
		expectedSecondCode int
	}{
		"rejected_by_ip": {
			limit:              0.1,
			secondRemoteAddr:   "10.0.0.1",
			expectedSecondCode: http.StatusTooManyRequests,
		},
		"different_ip_passes": {
			limit:              0.1,
			secondRemoteAddr:   "10.0.0.2",
			expectedSecondCode: http.StatusNoContent,
		},
		"disabled": {
			secondRemoteAddr:   "10.0.0.1",
			expectedSecondCode: http.StatusNoContent,
		},
	}

	for name, tc := range tt {
		t.Run(name, func(t *testing.T) {
			conf := config.RateLimit{
				SourceIPLimitPerSecond: tc.limit,
				SourceIPBurst:          1,
			}

			handler := Ratelimiter(next, &conf)

			r1 := httptest.NewRequest(http.MethodGet, "/a.txt", nil)
			r1.RemoteAddr = "10.0.0.1"

			firstCode, _ := testhelpers.PerformRequest(t, handler, r1)
			require.Equal(t, http.StatusNoContent, firstCode)

			r2 := httptest.NewRequest(http.MethodGet, "/a.txt", nil)
			r2.RemoteAddr = tc.secondRemoteAddr
			secondCode, _ := testhelpers.PerformRequest(t, handler, r2)
			require.Equal(t, tc.expectedSecondCode, secondCode)
		})
	}
}

type passthrough struct{}

func (*passthrough) ServeHTTP(w http.ResponseWriter, r *http.Request) {}

func TestRatelimiterDisabledReturnsHandler(t *testing.T) {
	h := &passthrough{}

	require.Same(t, h, Ratelimiter(h, &config.RateLimit{SourceIPBurst: 100}))
}

func TestCorsPreflightReachesHandler(t *testing.T) {
	var reached bool
	handler := CorsHandler(&config.Config{}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusMethodNotAllowed)
	}))

	r := httptest.NewRequest(http.MethodOptions, "/notes.txt", nil)
	r.Header.Set("Origin", "https://example.com")
	r.Header.Set("Access-Control-Request-Method", http.MethodPut)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	require.True(t, reached)
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, http.MethodPut, w.Header().Get("Access-Control-Allow-Methods"))
}

func TestCorsHandler(t *testing.T) {
	tt := map[string]struct {
		disabled       bool
		expectedOrigin string
	}{
		"enabled": {
			expectedOrigin: "*",
		},
		"disabled": {
			disabled: true,
		},
	}

	for name, tc := range tt {
		t.Run(name, func(t *testing.T) {
			cfg := &config.Config{General: config.General{DisableCrossOriginRequests: tc.disabled}}
			handler := CorsHandler(cfg, next)

			r := httptest.NewRequest(http.MethodPut, "/notes.txt", nil)
			r.Header.Set("Origin", "https://example.com")

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			require.Equal(t, http.StatusNoContent, w.Code)
			require.Equal(t, tc.expectedOrigin, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
