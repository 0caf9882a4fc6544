package metrics

// Config defines the configuration for the Prometheus metrics server.
type Config struct {
	// Address is the listen address of the metrics HTTP server, e.g. ":9090"
	Address string

	// ServiceName is attached to every metric as a constant "service" label
	ServiceName string

	// EnableDefaultCollectors registers the Go, process, and build info
	// collectors alongside the harness metrics
	EnableDefaultCollectors bool
}
