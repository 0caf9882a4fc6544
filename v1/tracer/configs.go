package tracer

// Config defines the configuration for the OpenTelemetry tracer.
type Config struct {
	// ServiceName identifies this service in exported traces
	ServiceName string

	// AppEnv names the deployment environment, e.g. "production" or "staging"
	AppEnv string

	// EnableExport turns on the OTLP HTTP exporter. The exporter endpoint is
	// taken from the standard OTEL_EXPORTER_OTLP_* environment variables.
	// When false, spans are created but never leave the process.
	EnableExport bool
}

// Logger defines the logging operations the tracer package needs.
// This interface allows the package to use any logging implementation that
// conforms to these methods.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}
