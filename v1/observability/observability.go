package observability

import "time"

// Observer receives a notification for every observable operation performed
// by a wireprobe component (publishing, receiving, matching). Implementations
// typically forward the context to a metrics or tracing system.
//
// Implementations must be safe for concurrent use; components may call
// ObserveOperation from multiple goroutines.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}

// OperationContext describes a single completed operation.
type OperationContext struct {
	// Component identifies the emitting package, e.g. "rabbit", "kafka", "expect".
	Component string

	// Operation is the verb performed, e.g. "produce", "consume", "match", "skip".
	Operation string

	// Resource is the primary subject of the operation (exchange, topic, or
	// message type name).
	Resource string

	// SubResource refines Resource where applicable (routing key, skip reason).
	SubResource string

	// Duration is how long the operation took.
	Duration time.Duration

	// Error is the failure that terminated the operation, or nil on success.
	Error error

	// Size is the payload size in bytes, where the operation carries one.
	Size int64

	// Metadata carries optional component-specific key-value pairs.
	Metadata map[string]interface{}
}
