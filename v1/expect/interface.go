package expect

import (
	"context"
	"time"
)

// Client validates asynchronous publish/subscribe exchanges against a
// system under test.
//
// This interface is implemented by the concrete *Matcher type.
type Client interface {
	// Send builds a message of the named type from a JSON body, encodes it,
	// and publishes it under the bare type name as topic. Optional headers
	// are attached to the published message, typically for trace-context
	// propagation. Any codec error aborts immediately; nothing reaches the
	// channel.
	Send(ctx context.Context, typeName string, body []byte, headers ...map[string]interface{}) error

	// Expect waits up to timeout per receive for a message of the named
	// type whose decoded textual form partially matches the expectation,
	// and returns that textual form. Non-matching traffic is skipped; an
	// idle window fails with a *TimeoutError.
	Expect(ctx context.Context, typeName string, expectation []byte, timeout time.Duration) (map[string]interface{}, error)
}
