package tracer

import (
	"context"
	"errors"
	"testing"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, err error, fields ...map[string]interface{})  {}
func (nopLogger) Warn(msg string, err error, fields ...map[string]interface{})  {}
func (nopLogger) Error(msg string, err error, fields ...map[string]interface{}) {}

func newTestTracer(t *testing.T) *Tracer {
	t.Helper()
	tr, err := NewClient(Config{ServiceName: "test", AppEnv: "test"}, nopLogger{})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return tr
}

func TestCarrierRoundTrip(t *testing.T) {
	tr := newTestTracer(t)

	ctx, span := tr.StartSpan(context.Background(), "outer")
	defer span.End()

	carrier := tr.GetCarrier(ctx)
	if carrier["traceparent"] == "" {
		t.Fatal("carrier must contain a traceparent header")
	}

	restored := tr.SetCarrierOnContext(context.Background(), carrier)
	restoredCarrier := tr.GetCarrier(restored)
	if restoredCarrier["traceparent"] == "" {
		t.Fatal("restored context must carry the trace")
	}
	// traceparent format: version-traceid-spanid-flags; the trace id segment
	// must survive the round trip.
	if carrier["traceparent"][3:35] != restoredCarrier["traceparent"][3:35] {
		t.Errorf("trace id changed across carrier round trip: %q vs %q",
			carrier["traceparent"], restoredCarrier["traceparent"])
	}
}

func TestGetCarrier_NoActiveSpan(t *testing.T) {
	tr := newTestTracer(t)

	carrier := tr.GetCarrier(context.Background())
	if len(carrier) != 0 {
		t.Errorf("expected empty carrier without a span, got %v", carrier)
	}
}

func TestSetAttributesAndRecordError(t *testing.T) {
	tr := newTestTracer(t)

	_, span := tr.StartSpan(context.Background(), "op")
	defer span.End()

	// Must not panic for any supported or unsupported value type
	tr.SetAttributes(span, map[string]interface{}{
		"s": "v",
		"i": 1,
		"l": int64(2),
		"f": 3.5,
		"b": true,
		"o": struct{ X int }{1},
	})
	tr.SetAttributes(span, nil)

	tr.RecordErrorOnSpan(span, errors.New("boom"))
}
