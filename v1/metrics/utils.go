package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// IncrementPublished increments the published counter for a topic.
// Example: metrics.IncrementPublished("Ping")
func (m *Metrics) IncrementPublished(topic string) {
	m.messagesPublished.WithLabelValues(topic).Inc()
}

// IncrementConsumed increments the consumed counter for a topic.
func (m *Metrics) IncrementConsumed(topic string) {
	m.messagesConsumed.WithLabelValues(topic).Inc()
}

// IncrementMatched increments the matched counter for a message type.
func (m *Metrics) IncrementMatched(typeName string) {
	m.expectationsMet.WithLabelValues(typeName).Inc()
}

// IncrementTimedOut increments the timed-out counter for a message type.
func (m *Metrics) IncrementTimedOut(typeName string) {
	m.expectationsTimedOut.WithLabelValues(typeName).Inc()
}

// IncrementSkipped increments the skipped counter for a skip reason.
// Example: metrics.IncrementSkipped("decode")
func (m *Metrics) IncrementSkipped(reason string) {
	m.deliveriesSkipped.WithLabelValues(reason).Inc()
}

// RecordMatchWait records the observed wait until an expectation matched.
// Example: defer metrics.RecordMatchWait(time.Now(), "Ping")
func (m *Metrics) RecordMatchWait(start time.Time, typeName string) {
	duration := time.Since(start).Seconds()
	m.matchWaitSeconds.WithLabelValues(typeName).Observe(duration)
}

// ObserveMatchWait records an already measured wait for a message type.
func (m *Metrics) ObserveMatchWait(wait time.Duration, typeName string) {
	m.matchWaitSeconds.WithLabelValues(typeName).Observe(wait.Seconds())
}

// CreateCounter creates a new CounterVec metric and registers it.
func (m *Metrics) CreateCounter(name, help string, labels []string) *prometheus.CounterVec {
	counter := createCounterVec(name, help, labels)
	m.Registry.MustRegister(counter)
	return counter
}

// CreateHistogram creates a new HistogramVec metric and registers it.
func (m *Metrics) CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	hist := createHistogramVec(name, help, labels, buckets)
	m.Registry.MustRegister(hist)
	return hist
}

// CreateGauge creates a new GaugeVec metric and registers it.
func (m *Metrics) CreateGauge(name, help string, labels []string) *prometheus.GaugeVec {
	gauge := createGaugeVec(name, help, labels)
	m.Registry.MustRegister(gauge)
	return gauge
}

// createCounterVec defines a new CounterVec with standard options.
// Used internally by NewMetrics to maintain consistency.
func createCounterVec(name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: name,
			Help: help,
		},
		labels,
	)
}

// createHistogramVec defines a new HistogramVec with configurable buckets.
// Used internally by NewMetrics for latency tracking.
func createHistogramVec(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    name,
			Help:    help,
			Buckets: buckets,
		},
		labels,
	)
}

// createGaugeVec defines a new GaugeVec safely for resource monitoring.
// Used internally by NewMetrics to track resource utilization.
func createGaugeVec(name, help string, labels []string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: name,
			Help: help,
		},
		labels,
	)
}
