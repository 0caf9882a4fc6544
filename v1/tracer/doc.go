// Package tracer provides distributed tracing built on OpenTelemetry.
//
// The tracer wraps an OpenTelemetry TracerProvider with a small API for
// creating spans, recording errors, attaching attributes, and moving trace
// context across service boundaries. Export uses the OTLP HTTP exporter and
// is enabled through configuration; the exporter endpoint comes from the
// standard OTEL_EXPORTER_OTLP_* environment variables.
//
// Trace context propagation pairs with the channel backends: GetCarrier
// extracts W3C Trace Context headers to attach to an outbound publish, and
// SetCarrierOnContext restores the trace context from the headers of a
// received delivery, so a send in one process and the matching expect in
// another appear on the same trace.
//
// # Usage
//
//	tracerClient, err := tracer.NewClient(tracer.Config{
//	    ServiceName:  "wireprobe",
//	    AppEnv:       "staging",
//	    EnableExport: true,
//	}, log)
//	if err != nil {
//	    return err
//	}
//
//	ctx, span := tracerClient.StartSpan(ctx, "send-message")
//	defer span.End()
//
// With Fx, include FXModule; the provider is shut down and flushed on
// application stop.
package tracer
