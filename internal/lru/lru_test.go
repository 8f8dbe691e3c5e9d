package lru

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func newMetrics() (*prometheus.GaugeVec, *prometheus.CounterVec) {
	entries := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: "test_cached_entries"}, []string{"op"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_cache_requests"}, []string{"op", "cache"})

	return entries, requests
}

func TestFindOrCreate(t *testing.T) {
	entries, requests := newMetrics()

	c := New("test", 100, time.Minute, entries, requests)
	defer c.Stop()

	created := 0
	create := func() interface{} {
		created++
		return created
	}

	require.Equal(t, 1, c.FindOrCreate("10.0.0.1", create))
	require.Equal(t, 1, c.FindOrCreate("10.0.0.1", create))
	require.Equal(t, 2, c.FindOrCreate("10.0.0.2", create))

	require.Equal(t, 2, created)
	require.Equal(t, float64(1), testutil.ToFloat64(requests.WithLabelValues("test", "hit")))
	require.Equal(t, float64(2), testutil.ToFloat64(requests.WithLabelValues("test", "miss")))
	require.Equal(t, float64(2), testutil.ToFloat64(entries.WithLabelValues("test")))
}

func TestFindOrCreateExpired(t *testing.T) {
	entries, requests := newMetrics()

	c := New("test", 100, time.Nanosecond, entries, requests)
	defer c.Stop()

	created := 0
	create := func() interface{} {
		created++
		return created
	}

	require.Equal(t, 1, c.FindOrCreate("10.0.0.1", create))

	time.Sleep(time.Millisecond)

	require.Equal(t, 2, c.FindOrCreate("10.0.0.1", create))
	require.Equal(t, float64(2), testutil.ToFloat64(requests.WithLabelValues("test", "miss")))
	require.Zero(t, testutil.ToFloat64(requests.WithLabelValues("test", "hit")))
}
