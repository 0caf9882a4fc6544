package metrics

import (
	"github.com/wireprobe/wireprobe/v1/observability"
)

// Observer adapts a Metrics instance to the observability.Observer
// interface, so the channel backends and the expectation matcher feed the
// harness metrics without depending on this package.
//
// Operation records map onto metrics as follows:
//
//	produce → messages_published_total{topic}
//	consume → messages_consumed_total{topic}
//	match   → expectations_matched_total{type} and expectation_wait_seconds{type}
//	timeout → expectations_timed_out_total{type}
//	skip    → deliveries_skipped_total{reason}
//
// Example:
//
//	m := metrics.NewMetrics(cfg)
//	matcher := expect.NewMatcher(expectCfg, registry, ch).
//	    WithObserver(metrics.Observer(m))
func Observer(m *Metrics) observability.Observer {
	return &metricsObserver{metrics: m}
}

type metricsObserver struct {
	metrics *Metrics
}

func (o *metricsObserver) ObserveOperation(op observability.OperationContext) {
	switch op.Operation {
	case "produce":
		o.metrics.IncrementPublished(topicOf(op))
	case "consume":
		o.metrics.IncrementConsumed(topicOf(op))
	case "match":
		o.metrics.IncrementMatched(op.Resource)
		o.metrics.ObserveMatchWait(op.Duration, op.Resource)
	case "timeout":
		o.metrics.IncrementTimedOut(op.Resource)
	case "skip":
		o.metrics.IncrementSkipped(op.SubResource)
	}
}

// topicOf picks the message topic out of an operation record. The channel
// backends report it as the sub-resource under their exchange or stream; the
// matcher reports it as the resource directly.
func topicOf(op observability.OperationContext) string {
	if op.SubResource != "" {
		return op.SubResource
	}
	return op.Resource
}
