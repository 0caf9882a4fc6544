package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsCollector provides an interface for collecting and exposing harness metrics.
// It abstracts Prometheus metric operations with support for counters, histograms, and gauges.
//
// This interface is implemented by the concrete *Metrics type.
type MetricsCollector interface {
	// Harness metric methods

	// IncrementPublished increments the published counter for a topic.
	IncrementPublished(topic string)

	// IncrementConsumed increments the consumed counter for a topic.
	IncrementConsumed(topic string)

	// IncrementMatched increments the matched counter for a message type.
	IncrementMatched(typeName string)

	// IncrementTimedOut increments the timed-out counter for a message type.
	IncrementTimedOut(typeName string)

	// IncrementSkipped increments the skipped counter for a skip reason.
	IncrementSkipped(reason string)

	// RecordMatchWait records the observed wait until an expectation matched.
	RecordMatchWait(start time.Time, typeName string)

	// Dynamic metric factories

	// CreateCounter creates a new CounterVec metric and registers it.
	CreateCounter(name, help string, labels []string) *prometheus.CounterVec

	// CreateHistogram creates a new HistogramVec metric and registers it.
	CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec

	// CreateGauge creates a new GaugeVec metric and registers it.
	CreateGauge(name, help string, labels []string) *prometheus.GaugeVec
}
