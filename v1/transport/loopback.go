package transport

import (
	"context"
	"sync"
	"time"
)

// defaultLoopbackBuffer bounds how many deliveries a loopback holds before
// Publish blocks.
const defaultLoopbackBuffer = 100

// Loopback is an in-process Channel. Deliveries arrive in publish order.
// It backs unit tests and local wiring where no broker is available.
type Loopback struct {
	deliveries chan Delivery

	done      chan struct{}
	closeOnce sync.Once
}

// NewLoopback returns a loopback channel holding up to buffer undelivered
// messages; buffer <= 0 selects a default of 100.
func NewLoopback(buffer int) *Loopback {
	if buffer <= 0 {
		buffer = defaultLoopbackBuffer
	}
	return &Loopback{
		deliveries: make(chan Delivery, buffer),
		done:       make(chan struct{}),
	}
}

// Publish enqueues a delivery. It blocks when the buffer is full until space
// frees up, the context is canceled, or the channel is closed.
func (l *Loopback) Publish(ctx context.Context, topic string, payload []byte, headers ...map[string]interface{}) error {
	var header map[string]interface{}
	if len(headers) > 0 {
		header = headers[0]
	}

	d := Delivery{Topic: topic, Payload: payload, Headers: header}

	select {
	case <-l.done:
		return ErrClosed
	default:
	}

	select {
	case l.deliveries <- d:
		return nil
	case <-l.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Receive returns the next delivery in publish order, waiting up to timeout.
func (l *Loopback) Receive(ctx context.Context, timeout time.Duration) (Delivery, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case d := <-l.deliveries:
		return d, nil
	case <-timer.C:
		return Delivery{}, ErrReceiveTimeout
	case <-l.done:
		return Delivery{}, ErrClosed
	case <-ctx.Done():
		return Delivery{}, ctx.Err()
	}
}

// Close shuts the loopback down. Pending and future Publish and Receive
// calls return ErrClosed. Close is idempotent.
func (l *Loopback) Close() error {
	l.closeOnce.Do(func() {
		close(l.done)
	})
	return nil
}
