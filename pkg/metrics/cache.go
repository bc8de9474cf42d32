package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CacheMetrics records hit/miss/eviction counters per cache domain.
type CacheMetrics struct {
	hits        *prometheus.CounterVec
	misses      *prometheus.CounterVec
	evictions   *prometheus.CounterVec
	invalidated *prometheus.CounterVec
}

// NewCacheMetrics registers the cache metrics on the provided registerer.
func NewCacheMetrics(reg prometheus.Registerer) *CacheMetrics {
	if reg == nil {
		return &CacheMetrics{}
	}
	hits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Cache reads served from a live entry.",
	}, []string{"domain"})
	misses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Cache reads that found no live entry.",
	}, []string{"domain"})
	evictions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cache_evictions_total",
		Help: "Entries removed because they were read after expiry.",
	}, []string{"domain"})
	invalidated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cache_invalidations_total",
		Help: "Whole-domain invalidations.",
	}, []string{"domain"})
	reg.MustRegister(hits, misses, evictions, invalidated)
	return &CacheMetrics{
		hits:        hits,
		misses:      misses,
		evictions:   evictions,
		invalidated: invalidated,
	}
}

func (c *CacheMetrics) Hit(domain string) {
	if c == nil || c.hits == nil {
		return
	}
	c.hits.WithLabelValues(normalizeLabel(domain)).Inc()
}

func (c *CacheMetrics) Miss(domain string) {
	if c == nil || c.misses == nil {
		return
	}
	c.misses.WithLabelValues(normalizeLabel(domain)).Inc()
}

func (c *CacheMetrics) Evict(domain string) {
	if c == nil || c.evictions == nil {
		return
	}
	c.evictions.WithLabelValues(normalizeLabel(domain)).Inc()
}

func (c *CacheMetrics) Invalidate(domain string) {
	if c == nil || c.invalidated == nil {
		return
	}
	c.invalidated.WithLabelValues(normalizeLabel(domain)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
