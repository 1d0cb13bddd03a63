package gridkit

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics
// from row models. Implement this interface to integrate with monitoring
// systems like Prometheus.
type MetricsCollector interface {
	// RecordFetch is called after each block fetch against the data source.
	// rows is the number of items returned, duration the total time taken,
	// err is nil if successful.
	RecordFetch(block int, rows int, duration time.Duration, err error)

	// RecordEviction is called after an eviction pass removes blocks.
	// blocks is the number of blocks removed.
	RecordEviction(blocks int)

	// RecordCacheHit is called when GetRow finds a resident row.
	RecordCacheHit()

	// RecordCacheMiss is called when GetRow misses.
	RecordCacheMiss()
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordFetch(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordEviction(int)                         {}
func (NoopMetricsCollector) RecordCacheHit()                            {}
func (NoopMetricsCollector) RecordCacheMiss()                           {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	FetchCount      atomic.Int64
	FetchErrors     atomic.Int64
	FetchRows       atomic.Int64
	FetchTotalNanos atomic.Int64
	EvictedBlocks   atomic.Int64
	CacheHits       atomic.Int64
	CacheMisses     atomic.Int64
}

func (c *BasicMetricsCollector) RecordFetch(block, rows int, duration time.Duration, err error) {
	c.FetchCount.Add(1)
	c.FetchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		c.FetchErrors.Add(1)
		return
	}
	c.FetchRows.Add(int64(rows))
}

func (c *BasicMetricsCollector) RecordEviction(blocks int) {
	c.EvictedBlocks.Add(int64(blocks))
}

func (c *BasicMetricsCollector) RecordCacheHit() {
	c.CacheHits.Add(1)
}

func (c *BasicMetricsCollector) RecordCacheMiss() {
	c.CacheMisses.Add(1)
}
