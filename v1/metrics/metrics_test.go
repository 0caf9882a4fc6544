package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/wireprobe/wireprobe/v1/observability"
)

func newTestMetrics() *Metrics {
	return NewMetrics(Config{
		Address:     ":0",
		ServiceName: "test",
	})
}

func TestHarnessCounters(t *testing.T) {
	m := newTestMetrics()

	m.IncrementPublished("Ping")
	m.IncrementPublished("Ping")
	m.IncrementConsumed("Ping")
	m.IncrementMatched("Ping")
	m.IncrementTimedOut("Pong")
	m.IncrementSkipped("decode")

	if got := testutil.ToFloat64(m.messagesPublished.WithLabelValues("Ping")); got != 2 {
		t.Errorf("published = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.messagesConsumed.WithLabelValues("Ping")); got != 1 {
		t.Errorf("consumed = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.expectationsMet.WithLabelValues("Ping")); got != 1 {
		t.Errorf("matched = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.expectationsTimedOut.WithLabelValues("Pong")); got != 1 {
		t.Errorf("timed out = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.deliveriesSkipped.WithLabelValues("decode")); got != 1 {
		t.Errorf("skipped = %v, want 1", got)
	}
}

func TestObserverAdapter(t *testing.T) {
	m := newTestMetrics()
	obs := Observer(m)

	obs.ObserveOperation(observability.OperationContext{
		Component:   "rabbit",
		Operation:   "produce",
		Resource:    "exchange",
		SubResource: "Ping",
	})
	obs.ObserveOperation(observability.OperationContext{
		Component: "expect",
		Operation: "produce",
		Resource:  "Ping",
	})
	obs.ObserveOperation(observability.OperationContext{
		Component: "expect",
		Operation: "match",
		Resource:  "Ping",
		Duration:  50 * time.Millisecond,
	})
	obs.ObserveOperation(observability.OperationContext{
		Component:   "expect",
		Operation:   "skip",
		Resource:    "Ping",
		SubResource: "topic",
	})
	obs.ObserveOperation(observability.OperationContext{
		Component: "expect",
		Operation: "timeout",
		Resource:  "Pong",
	})

	if got := testutil.ToFloat64(m.messagesPublished.WithLabelValues("Ping")); got != 2 {
		t.Errorf("published = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.expectationsMet.WithLabelValues("Ping")); got != 1 {
		t.Errorf("matched = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.deliveriesSkipped.WithLabelValues("topic")); got != 1 {
		t.Errorf("skipped = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.expectationsTimedOut.WithLabelValues("Pong")); got != 1 {
		t.Errorf("timed out = %v, want 1", got)
	}
}

func TestCreateCustomMetrics(t *testing.T) {
	m := newTestMetrics()

	counter := m.CreateCounter("custom_total", "A custom counter", []string{"label"})
	counter.WithLabelValues("a").Inc()
	if got := testutil.ToFloat64(counter.WithLabelValues("a")); got != 1 {
		t.Errorf("custom counter = %v, want 1", got)
	}

	gauge := m.CreateGauge("custom_gauge", "A custom gauge", []string{"label"})
	gauge.WithLabelValues("a").Set(3.5)
	if got := testutil.ToFloat64(gauge.WithLabelValues("a")); got != 3.5 {
		t.Errorf("custom gauge = %v, want 3.5", got)
	}
}

func TestRecordMatchWait(t *testing.T) {
	m := newTestMetrics()

	// Must not panic and must register an observation
	m.RecordMatchWait(time.Now().Add(-10*time.Millisecond), "Ping")
	m.ObserveMatchWait(20*time.Millisecond, "Ping")

	count := testutil.CollectAndCount(m.matchWaitSeconds)
	if count == 0 {
		t.Error("expected wait histogram to have observations")
	}
}
