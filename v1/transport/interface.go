package transport

import (
	"context"
	"time"
)

// Delivery is one message taken off a channel. Topic and Payload are carried
// as two discrete frames by every backend, so there is no delimiter
// ambiguity between the type label and the wire bytes.
type Delivery struct {
	// Topic is the channel-level label identifying the message's schema
	// type for routing and decode-schema resolution.
	Topic string

	// Payload is the binary wire encoding of the message.
	Payload []byte

	// Headers carries optional transport metadata, such as a propagated
	// trace context. May be nil.
	Headers map[string]interface{}
}

// Channel is a named, ordered message transport.
//
// Implementations are provided by the rabbit and kafka packages; Loopback in
// this package is an in-process implementation for tests and local wiring.
// A Channel handle is owned by a single matcher instance; implementations
// are not required to support concurrent Receive calls.
type Channel interface {
	// Publish sends payload under the given topic. Optional headers are
	// attached when the backend supports them.
	Publish(ctx context.Context, topic string, payload []byte, headers ...map[string]interface{}) error

	// Receive blocks for up to timeout waiting for the next delivery.
	// On an idle window it returns an error wrapping ErrReceiveTimeout;
	// any other error is a transport failure.
	Receive(ctx context.Context, timeout time.Duration) (Delivery, error)

	// Close releases the underlying transport resources. Receive calls in
	// flight return an error wrapping ErrClosed.
	Close() error
}
