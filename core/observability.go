package core

import "time"

// Metrics defines the interface for collecting worker pool metrics.
// Implementations can send metrics to monitoring systems (Prometheus,
// StatsD, etc.).
//
// Methods should be non-blocking and fast to avoid impacting task
// execution, and safe for concurrent use.
type Metrics interface {
	// RecordTaskExecuted records one completed execution and its duration.
	RecordTaskExecuted(poolID string, duration time.Duration)

	// RecordTaskRejected records an enqueue the pool refused.
	RecordTaskRejected(poolID string, reason string)

	// RecordTaskAbandoned records a queued unit dropped at shutdown.
	RecordTaskAbandoned(poolID string)

	// RecordQueueDepth records the queue depth after an enqueue or pop.
	RecordQueueDepth(poolID string, depth int)
}

// NilMetrics provides a no-op metrics implementation that does nothing.
// This is the default when no metrics interface is provided.
type NilMetrics struct{}

func (m *NilMetrics) RecordTaskExecuted(poolID string, duration time.Duration) {}
func (m *NilMetrics) RecordTaskRejected(poolID string, reason string)          {}
func (m *NilMetrics) RecordTaskAbandoned(poolID string)                        {}
func (m *NilMetrics) RecordQueueDepth(poolID string, depth int)                {}

// PoolStats represents runtime observability state for a worker pool.
type PoolStats struct {
	ID        string
	Workers   int
	Queued    int
	Accepting bool
}
