package vecmath

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting archive metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordPut is called after each vector is encoded and stored.
	// size is the encoded size in bytes.
	RecordPut(size int, duration time.Duration, err error)

	// RecordGet is called after each vector load that missed the cache.
	RecordGet(size int, duration time.Duration, err error)

	// RecordCacheHit is called when a load is served from the decoded-vector cache.
	RecordCacheHit()

	// RecordBatchGet is called after each bulk load.
	// count is the number of names requested, failed the number that failed.
	RecordBatchGet(count, failed int, duration time.Duration)

	// RecordDelete is called after each delete operation.
	RecordDelete(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordPut(int, time.Duration, error)    {}
func (NoopMetricsCollector) RecordGet(int, time.Duration, error)    {}
func (NoopMetricsCollector) RecordCacheHit()                        {}
func (NoopMetricsCollector) RecordBatchGet(int, int, time.Duration) {}
func (NoopMetricsCollector) RecordDelete(time.Duration, error)      {}

// BasicMetricsCollector provides simple in-memory metrics collection.
type BasicMetricsCollector struct {
	PutCount       atomic.Int64
	PutErrors      atomic.Int64
	PutBytes       atomic.Int64
	PutTotalNanos  atomic.Int64
	GetCount       atomic.Int64
	GetErrors      atomic.Int64
	GetBytes       atomic.Int64
	GetTotalNanos  atomic.Int64
	CacheHits      atomic.Int64
	BatchGetCount  atomic.Int64
	BatchGetItems  atomic.Int64
	BatchGetFailed atomic.Int64
	DeleteCount    atomic.Int64
	DeleteErrors   atomic.Int64
}

// RecordPut implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPut(size int, duration time.Duration, err error) {
	b.PutCount.Add(1)
	b.PutTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.PutErrors.Add(1)
		return
	}
	b.PutBytes.Add(int64(size))
}

// RecordGet implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGet(size int, duration time.Duration, err error) {
	b.GetCount.Add(1)
	b.GetTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.GetErrors.Add(1)
		return
	}
	b.GetBytes.Add(int64(size))
}

// RecordCacheHit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCacheHit() {
	b.CacheHits.Add(1)
}

// RecordBatchGet implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatchGet(count, failed int, _ time.Duration) {
	b.BatchGetCount.Add(1)
	b.BatchGetItems.Add(int64(count))
	b.BatchGetFailed.Add(int64(failed))
}

// RecordDelete implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDelete(_ time.Duration, err error) {
	b.DeleteCount.Add(1)
	if err != nil {
		b.DeleteErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		PutCount:       b.PutCount.Load(),
		PutErrors:      b.PutErrors.Load(),
		PutBytes:       b.PutBytes.Load(),
		PutAvgNanos:    avgNanos(&b.PutTotalNanos, &b.PutCount),
		GetCount:       b.GetCount.Load(),
		GetErrors:      b.GetErrors.Load(),
		GetBytes:       b.GetBytes.Load(),
		GetAvgNanos:    avgNanos(&b.GetTotalNanos, &b.GetCount),
		CacheHits:      b.CacheHits.Load(),
		BatchGetCount:  b.BatchGetCount.Load(),
		BatchGetItems:  b.BatchGetItems.Load(),
		BatchGetFailed: b.BatchGetFailed.Load(),
		DeleteCount:    b.DeleteCount.Load(),
		DeleteErrors:   b.DeleteErrors.Load(),
	}
}

func avgNanos(total, count *atomic.Int64) int64 {
	n := count.Load()
	if n == 0 {
		return 0
	}
	return total.Load() / n
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	PutCount       int64
	PutErrors      int64
	PutBytes       int64
	PutAvgNanos    int64
	GetCount       int64
	GetErrors      int64
	GetBytes       int64
	GetAvgNanos    int64
	CacheHits      int64
	BatchGetCount  int64
	BatchGetItems  int64
	BatchGetFailed int64
	DeleteCount    int64
	DeleteErrors   int64
}
