package transport

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLoopback_PublishReceiveOrder(t *testing.T) {
	l := NewLoopback(10)
	defer l.Close()
	ctx := context.Background()

	for _, topic := range []string{"A", "B", "C"} {
		if err := l.Publish(ctx, topic, []byte(topic)); err != nil {
			t.Fatalf("Publish(%s): %v", topic, err)
		}
	}

	for _, want := range []string{"A", "B", "C"} {
		d, err := l.Receive(ctx, time.Second)
		if err != nil {
			t.Fatalf("Receive: %v", err)
		}
		if d.Topic != want {
			t.Errorf("expected topic %s, got %s", want, d.Topic)
		}
		if string(d.Payload) != want {
			t.Errorf("expected payload %s, got %s", want, d.Payload)
		}
	}
}

func TestLoopback_ReceiveTimeout(t *testing.T) {
	l := NewLoopback(1)
	defer l.Close()

	start := time.Now()
	_, err := l.Receive(context.Background(), 50*time.Millisecond)
	if !errors.Is(err, ErrReceiveTimeout) {
		t.Fatalf("expected ErrReceiveTimeout, got %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("returned after %s, before the wait window elapsed", elapsed)
	}
}

func TestLoopback_HeadersCarried(t *testing.T) {
	l := NewLoopback(1)
	defer l.Close()
	ctx := context.Background()

	headers := map[string]interface{}{"traceparent": "00-abc-def-01"}
	if err := l.Publish(ctx, "T", nil, headers); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	d, err := l.Receive(ctx, time.Second)
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}
	if d.Headers["traceparent"] != "00-abc-def-01" {
		t.Errorf("expected header to round trip, got %v", d.Headers)
	}
}

func TestLoopback_Close(t *testing.T) {
	l := NewLoopback(1)
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	// Idempotent.
	if err := l.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	if err := l.Publish(context.Background(), "T", nil); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed from Publish, got %v", err)
	}
	if _, err := l.Receive(context.Background(), time.Second); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed from Receive, got %v", err)
	}
}

func TestLoopback_ContextCancellation(t *testing.T) {
	l := NewLoopback(1)
	defer l.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := l.Receive(ctx, time.Minute)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
