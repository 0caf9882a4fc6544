package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/dynamicpb"
)

// BuildFromText resolves the named schema and builds a dynamic message from
// a JSON document. The document's top-level keys name message fields; fields
// absent from the document stay absent in the result (no defaulting).
//
// An empty or "null" document produces an empty message. A document that is
// neither an object nor null, a key the schema does not define, or a leaf
// value of the wrong shape is an error; see the package error variables for
// the taxonomy.
func (c *Codec) BuildFromText(typeName string, doc []byte) (*dynamicpb.Message, error) {
	var value interface{}
	if len(bytes.TrimSpace(doc)) > 0 {
		dec := json.NewDecoder(bytes.NewReader(doc))
		dec.UseNumber()
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("%w: invalid JSON body for %s: %v", ErrTypeMismatch, typeName, err)
		}
	}
	return c.Build(typeName, value)
}

// Build is BuildFromText for an already-parsed JSON value. Numeric leaves
// must be json.Number (as produced by a json.Decoder with UseNumber), int,
// or int64.
func (c *Codec) Build(typeName string, value interface{}) (*dynamicpb.Message, error) {
	md, err := c.registry.Resolve(typeName)
	if err != nil {
		return nil, err
	}

	msg := dynamicpb.NewMessage(md)
	if value == nil {
		return msg, nil
	}

	obj, ok := value.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: body for %s must be a JSON object", ErrTypeMismatch, typeName)
	}
	if err := populateMessage(msg, obj); err != nil {
		return nil, err
	}
	return msg, nil
}

// Encode serializes a message into its binary wire form. It never fails for
// a message produced by Build or Decode.
func (c *Codec) Encode(msg proto.Message) ([]byte, error) {
	payload, err := proto.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", msg.ProtoReflect().Descriptor().FullName(), err)
	}
	return payload, nil
}

// Decode resolves the named schema and parses wire bytes against it.
// Truncated or garbage input returns an error wrapping ErrDecode; it never
// panics.
func (c *Codec) Decode(typeName string, payload []byte) (*dynamicpb.Message, error) {
	md, err := c.registry.Resolve(typeName)
	if err != nil {
		return nil, err
	}

	msg := dynamicpb.NewMessage(md)
	if err := proto.Unmarshal(payload, msg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, typeName, err)
	}
	return msg, nil
}

// ToText reconstitutes the textual form of a message. Only present fields
// are emitted. Enumeration fields render as their raw numeric value, not the
// symbolic name; bytes fields render as standard base64; nested messages,
// lists, and maps recurse. All numbers are emitted as json.Number so the
// result compares stably against documents parsed with UseNumber.
func (c *Codec) ToText(msg proto.Message) map[string]interface{} {
	return messageToText(msg.ProtoReflect())
}

// ToTextJSON is ToText rendered as a JSON document.
func (c *Codec) ToTextJSON(msg proto.Message) ([]byte, error) {
	return json.Marshal(c.ToText(msg))
}
