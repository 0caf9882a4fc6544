package expect

import (
	"errors"
	"fmt"
	"time"
)

// ErrExpectationTimeout is the sentinel wrapped by TimeoutError, so callers
// can classify the one retriable failure with errors.Is.
var ErrExpectationTimeout = errors.New("expectation timed out")

// TimeoutError reports that no matching message arrived within the wait
// window. It is the only condition a caller may reasonably retry by
// re-issuing Expect with a new timeout.
type TimeoutError struct {
	// TypeName is the message type that was awaited.
	TypeName string

	// Wait is the configured wait window of the receive call that expired.
	Wait time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out after %s waiting for message %s", e.Wait, e.TypeName)
}

func (e *TimeoutError) Unwrap() error {
	return ErrExpectationTimeout
}
