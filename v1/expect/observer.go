package expect

import (
	"time"

	"github.com/wireprobe/wireprobe/v1/observability"
)

// observeOperation notifies the observer about an operation if one is
// configured. Operations are "produce", "match", "skip", and "timeout";
// for skips the subResource carries the reason.
func (m *Matcher) observeOperation(operation, resource, subResource string, duration time.Duration, err error, size int64) {
	if m.observer != nil {
		m.observer.ObserveOperation(observability.OperationContext{
			Component:   "expect",
			Operation:   operation,
			Resource:    resource,
			SubResource: subResource,
			Duration:    duration,
			Error:       err,
			Size:        size,
		})
	}
}
