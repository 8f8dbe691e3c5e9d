package lru

import (
	"time"

	"github.com/karlseguin/ccache/v2"
	"github.com/prometheus/client_golang/prometheus"
)

// getsPerPromote is the number of gets after which an item is moved to the
// front of the LRU list
const getsPerPromote = 64

// itemsToPruneDiv prunes 1/16 of the items once the cache is full
const itemsToPruneDiv = 16

// Cache wraps a ccache and reports hits, misses and the number of entries
// under the op label.
type Cache struct {
	op                  string
	duration            time.Duration
	cache               *ccache.Cache
	metricCachedEntries *prometheus.GaugeVec
	metricCacheRequests *prometheus.CounterVec
}

// New creates an LRU cache holding up to maxEntries items, each expiring
// duration after it was created
func New(op string, maxEntries int64, duration time.Duration, cachedEntriesMetric *prometheus.GaugeVec, cacheRequestsMetric *prometheus.CounterVec) *Cache {
	configuration := ccache.Configure()
	configuration.MaxSize(maxEntries)
	configuration.ItemsToPrune(uint32(maxEntries) / itemsToPruneDiv)
	configuration.GetsPerPromote(getsPerPromote)
	configuration.OnDelete(func(*ccache.Item) {
		cachedEntriesMetric.WithLabelValues(op).Dec()
	})

	return &Cache{
		op:                  op,
		cache:               ccache.New(configuration),
		duration:            duration,
		metricCachedEntries: cachedEntriesMetric,
		metricCacheRequests: cacheRequestsMetric,
	}
}

// FindOrCreate returns the live item stored under key, storing the result of
// create when there is none
func (c *Cache) FindOrCreate(key string, create func() interface{}) interface{} {
	item := c.cache.Get(key)

	if item != nil && !item.Expired() {
		c.metricCacheRequests.WithLabelValues(c.op, "hit").Inc()
		return item.Value()
	}

	c.metricCacheRequests.WithLabelValues(c.op, "miss").Inc()

	value := create()

	// a replaced item is reported through OnDelete
	c.metricCachedEntries.WithLabelValues(c.op).Inc()
	c.cache.Set(key, value, c.duration)

	return value
}

// Stop the cache background worker
func (c *Cache) Stop() {
	c.cache.Stop()
}
