package transport

import "errors"

var (
	// ErrReceiveTimeout is returned by Receive when no delivery arrived
	// within the wait window. It is the only retriable receive outcome.
	ErrReceiveTimeout = errors.New("receive timed out")

	// ErrClosed is returned when the channel has been closed.
	ErrClosed = errors.New("channel closed")
)
