// Package metrics provides Prometheus-based monitoring for the expectation
// harness.
//
// The package exposes a configurable /metrics endpoint for Prometheus
// scraping and maintains counters and histograms for the harness traffic:
// published and consumed messages per topic, matched and timed-out
// expectations per message type, skipped deliveries per reason, and the
// observed wait until a match.
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - MetricsCollector interface: Defines the contract for metrics operations
//   - Metrics struct: Concrete implementation of the MetricsCollector interface
//   - NewMetrics constructor: Returns *Metrics (concrete type)
//   - Observer adapter: Bridges operation records from the channel backends
//     and the matcher onto the harness metrics
//   - FX module: Provides *Metrics and the observability.Observer adapter
//
// # Direct Usage (Without FX)
//
//	m := metrics.NewMetrics(metrics.Config{
//	    Address:     ":9090",
//	    ServiceName: "wireprobe",
//	})
//	go m.Server.ListenAndServe()
//	defer m.Server.Shutdown(context.Background())
//
//	matcher := expect.NewMatcher(cfg, registry, ch).
//	    WithObserver(metrics.Observer(m))
//
// # Usage with Fx
//
//	app := fx.New(
//	    metrics.FXModule,
//	    fx.Provide(func() metrics.Config {
//	        return metrics.Config{Address: ":9090", ServiceName: "wireprobe"}
//	    }),
//	)
//
// The fx module starts the metrics server on application start, shuts it
// down gracefully on stop, and provides the observability.Observer adapter
// so the channel backends and the matcher feed the metrics automatically.
package metrics
