package pointbsp

import (
	"sync/atomic"
	"time"
)

// QueryKind identifies one of the three query traversals.
type QueryKind string

// The query kinds recorded by a MetricsCollector.
const (
	QueryNearest  QueryKind = "nearest"
	QueryKNearest QueryKind = "k_nearest"
	QueryBall     QueryKind = "ball"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordBuild is called after each build.
	// points and nodes describe the built tree, err is nil if successful.
	RecordBuild(points, nodes int, duration time.Duration, err error)

	// RecordQuery is called after each query.
	// leafVisits is the number of terminal nodes scanned, err is nil if successful.
	RecordQuery(kind QueryKind, leafVisits int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(int, int, time.Duration, error)       {}
func (NoopMetricsCollector) RecordQuery(QueryKind, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BuildCount      atomic.Int64
	BuildErrors     atomic.Int64
	BuildTotalNanos atomic.Int64
	QueryCount      atomic.Int64
	QueryErrors     atomic.Int64
	QueryTotalNanos atomic.Int64
	LeafVisits      atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(points, nodes int, duration time.Duration, err error) {
	b.BuildCount.Add(1)
	b.BuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BuildErrors.Add(1)
	}
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(kind QueryKind, leafVisits int, duration time.Duration, err error) {
	b.QueryCount.Add(1)
	b.QueryTotalNanos.Add(duration.Nanoseconds())
	b.LeafVisits.Add(int64(leafVisits))
	if err != nil {
		b.QueryErrors.Add(1)
	}
}
