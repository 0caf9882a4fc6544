package codec

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"google.golang.org/protobuf/proto"

	"github.com/wireprobe/wireprobe/v1/schema"
	"github.com/wireprobe/wireprobe/v1/schema/schematest"
)

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	reg, err := schema.NewRegistry(schema.Config{DescriptorSet: schematest.DescriptorSetBytes()})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return NewCodec(reg)
}

func TestBuildEncodeDecodeRoundTrip(t *testing.T) {
	c := newTestCodec(t)

	doc := []byte(`{
		"seq": 5,
		"note": "hello",
		"blob": "aGk=",
		"status": "DEGRADED",
		"meta": {"source": "sensor-1", "ts": 1700000000},
		"readings": [1, 2, 3],
		"labels": {"env": "test"}
	}`)

	built, err := c.BuildFromText("Ping", doc)
	if err != nil {
		t.Fatalf("BuildFromText: %v", err)
	}

	payload, err := c.Encode(built)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := c.Decode("company.project.v1.Ping", payload)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if !proto.Equal(built, decoded) {
		t.Errorf("round trip mismatch:\nbuilt:   %v\ndecoded: %v", c.ToText(built), c.ToText(decoded))
	}
}

func TestToText_NumericRoundTrip(t *testing.T) {
	c := newTestCodec(t)

	// Numeric enum value and nonzero fields only: this form is round-trip
	// stable through ToText.
	doc := []byte(`{"seq": 7, "status": 2, "note": "x"}`)
	msg, err := c.BuildFromText("Ping", doc)
	if err != nil {
		t.Fatalf("BuildFromText: %v", err)
	}

	got := c.ToText(msg)
	want := map[string]interface{}{
		"seq":    json.Number("7"),
		"status": json.Number("2"),
		"note":   "x",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestToText_SymbolicEnumRendersNumeric(t *testing.T) {
	c := newTestCodec(t)

	msg, err := c.BuildFromText("Pong", []byte(`{"status": "FAILED"}`))
	if err != nil {
		t.Fatalf("BuildFromText: %v", err)
	}

	got := c.ToText(msg)
	if got["status"] != json.Number("2") {
		t.Errorf(`expected status to render as 2, got %v (%T)`, got["status"], got["status"])
	}
}

func TestToText_PresentFieldsOnly(t *testing.T) {
	c := newTestCodec(t)

	msg, err := c.BuildFromText("Ping", []byte(`{"note": "only"}`))
	if err != nil {
		t.Fatalf("BuildFromText: %v", err)
	}

	got := c.ToText(msg)
	if len(got) != 1 {
		t.Errorf("expected 1 field, got %d: %v", len(got), got)
	}
	if got["note"] != "only" {
		t.Errorf("expected note=only, got %v", got["note"])
	}
}

func TestToText_NestedAndCollections(t *testing.T) {
	c := newTestCodec(t)

	doc := []byte(`{
		"blob": "cGF5bG9hZA==",
		"meta": {"status": "OK", "source": "s"},
		"readings": [10, 20],
		"labels": {"a": "1", "b": "2"}
	}`)
	msg, err := c.BuildFromText("Ping", doc)
	if err != nil {
		t.Fatalf("BuildFromText: %v", err)
	}

	got := c.ToText(msg)
	if got["blob"] != "cGF5bG9hZA==" {
		t.Errorf("expected base64 blob back, got %v", got["blob"])
	}

	meta, ok := got["meta"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected nested object for meta, got %T", got["meta"])
	}
	// Status OK is the zero enum value and therefore absent in proto3.
	if _, present := meta["status"]; present {
		t.Errorf("expected zero-valued nested enum to be absent, got %v", meta["status"])
	}
	if meta["source"] != "s" {
		t.Errorf("expected meta.source=s, got %v", meta["source"])
	}

	readings, ok := got["readings"].([]interface{})
	if !ok || len(readings) != 2 {
		t.Fatalf("expected 2 readings, got %v", got["readings"])
	}
	if readings[0] != json.Number("10") || readings[1] != json.Number("20") {
		t.Errorf("unexpected readings: %v", readings)
	}

	labels, ok := got["labels"].(map[string]interface{})
	if !ok || len(labels) != 2 {
		t.Fatalf("expected 2 labels, got %v", got["labels"])
	}
	if labels["a"] != "1" || labels["b"] != "2" {
		t.Errorf("unexpected labels: %v", labels)
	}
}

func TestBuild_UnknownField(t *testing.T) {
	c := newTestCodec(t)

	_, err := c.BuildFromText("Ping", []byte(`{"bogus": 1}`))
	if !errors.Is(err, ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}
}

func TestBuild_InvalidBase64(t *testing.T) {
	c := newTestCodec(t)

	_, err := c.BuildFromText("Ping", []byte(`{"blob": "not base64!!"}`))
	if !errors.Is(err, ErrInvalidBytesEncoding) {
		t.Errorf("expected ErrInvalidBytesEncoding, got %v", err)
	}
}

func TestBuild_UnknownEnumName(t *testing.T) {
	c := newTestCodec(t)

	_, err := c.BuildFromText("Pong", []byte(`{"status": "NOPE"}`))
	if !errors.Is(err, ErrUnknownEnumValue) {
		t.Errorf("expected ErrUnknownEnumValue, got %v", err)
	}
}

func TestBuild_RawEnumNumberUnchecked(t *testing.T) {
	c := newTestCodec(t)

	// 99 has no symbolic name; raw integers pass through unchecked.
	msg, err := c.BuildFromText("Pong", []byte(`{"status": 99}`))
	if err != nil {
		t.Fatalf("BuildFromText: %v", err)
	}
	if got := c.ToText(msg)["status"]; got != json.Number("99") {
		t.Errorf("expected status 99, got %v", got)
	}
}

func TestBuild_TypeMismatch(t *testing.T) {
	c := newTestCodec(t)

	for name, doc := range map[string]string{
		"string for int":   `{"seq": "five"}`,
		"int out of range": `{"seq": 3000000000}`,
		"array for scalar": `{"note": [1]}`,
		"scalar for array": `{"readings": 1}`,
		"scalar for map":   `{"labels": 1}`,
	} {
		if _, err := c.BuildFromText("Ping", []byte(doc)); !errors.Is(err, ErrTypeMismatch) {
			t.Errorf("%s: expected ErrTypeMismatch, got %v", name, err)
		}
	}
}

func TestBuild_EmptyAndNullBodies(t *testing.T) {
	c := newTestCodec(t)

	for _, doc := range []string{"", "null", "{}"} {
		msg, err := c.BuildFromText("Ping", []byte(doc))
		if err != nil {
			t.Fatalf("BuildFromText(%q): %v", doc, err)
		}
		if got := c.ToText(msg); len(got) != 0 {
			t.Errorf("BuildFromText(%q): expected empty message, got %v", doc, got)
		}
	}
}

func TestBuild_UnresolvedType(t *testing.T) {
	c := newTestCodec(t)

	_, err := c.BuildFromText("Missing", []byte(`{}`))
	if !errors.Is(err, schema.ErrNotFound) {
		t.Errorf("expected schema.ErrNotFound, got %v", err)
	}
}

func TestDecode_GarbageInput(t *testing.T) {
	c := newTestCodec(t)

	for _, payload := range [][]byte{
		{0xff},
		{0xff, 0xff, 0xff, 0xff},
		{0x0a},       // truncated length-delimited field
		{0x08},       // truncated varint
		{0x3d, 0x01}, // truncated fixed32
	} {
		if _, err := c.Decode("Ping", payload); !errors.Is(err, ErrDecode) {
			t.Errorf("Decode(% x): expected ErrDecode, got %v", payload, err)
		}
	}
}

func TestDecode_EmptyPayload(t *testing.T) {
	c := newTestCodec(t)

	msg, err := c.Decode("Ping", nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := c.ToText(msg); len(got) != 0 {
		t.Errorf("expected empty message, got %v", got)
	}
}
