package expect

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/wireprobe/wireprobe/v1/transport"
)

// Send builds, encodes, and publishes a message of the named type.
// The outbound topic is the bare type name exactly as the caller gave it.
// Codec errors abort before any bytes reach the channel and are never
// retried.
func (m *Matcher) Send(ctx context.Context, typeName string, body []byte, headers ...map[string]interface{}) error {
	start := time.Now()

	msg, err := m.codec.BuildFromText(typeName, body)
	if err != nil {
		return fmt.Errorf("build %s: %w", typeName, err)
	}
	payload, err := m.codec.Encode(msg)
	if err != nil {
		return fmt.Errorf("encode %s: %w", typeName, err)
	}

	err = m.channel.Publish(ctx, typeName, payload, headers...)
	m.observeOperation("produce", typeName, "", time.Since(start), err, int64(len(payload)))
	if err != nil {
		return fmt.Errorf("publish %s: %w", typeName, err)
	}
	return nil
}

// Expect runs the receive loop described in the package documentation and
// returns the decoded textual form of the first matching message.
//
// Each receive call gets the full timeout as its own wait window. When
// non-matching traffic keeps arriving, the total observed wait can exceed
// the nominal timeout; only an idle window expires the expectation.
func (m *Matcher) Expect(ctx context.Context, typeName string, expectation []byte, timeout time.Duration) (map[string]interface{}, error) {
	if timeout <= 0 {
		timeout = m.cfg.DefaultTimeout
	}

	expected, err := parseExpectation(expectation)
	if err != nil {
		return nil, fmt.Errorf("expectation for %s: %w", typeName, err)
	}

	start := time.Now()
	for {
		d, err := m.channel.Receive(ctx, timeout)
		if errors.Is(err, transport.ErrReceiveTimeout) {
			m.observeOperation("timeout", typeName, "", time.Since(start), err, 0)
			return nil, &TimeoutError{TypeName: typeName, Wait: timeout}
		}
		if err != nil {
			return nil, fmt.Errorf("receive while awaiting %s: %w", typeName, err)
		}

		msg, err := m.codec.Decode(m.resolveTopicName(d.Topic), d.Payload)
		if err != nil {
			// Not the awaited message: undecodable traffic is skipped, not
			// failed. Persistent corruption surfaces as a timeout.
			m.skip(ctx, typeName, d.Topic, "decode", err)
			continue
		}
		if d.Topic != typeName {
			m.skip(ctx, typeName, d.Topic, "topic", nil)
			continue
		}

		actual := m.codec.ToText(msg)
		normalized := normalizeExpectation(expected, msg.Descriptor())
		if !partialMatch(normalized, actual) {
			m.skip(ctx, typeName, d.Topic, "mismatch", nil)
			continue
		}

		m.observeOperation("match", typeName, "", time.Since(start), nil, int64(len(d.Payload)))
		if m.logger != nil {
			m.logger.DebugWithContext(ctx, "Expectation matched", nil, map[string]interface{}{
				"type": typeName,
			})
		}
		return actual, nil
	}
}

// resolveTopicName combines the fixed namespace prefix with an inbound
// topic to obtain the fully qualified decoding schema name.
func (m *Matcher) resolveTopicName(topic string) string {
	if m.cfg.TopicPrefix == "" {
		return topic
	}
	return m.cfg.TopicPrefix + "." + topic
}

// skip records a discarded delivery and keeps the wait loop silent at the
// protocol level.
func (m *Matcher) skip(ctx context.Context, typeName, topic, reason string, err error) {
	m.observeOperation("skip", typeName, reason, 0, err, 0)
	if m.logger != nil {
		m.logger.DebugWithContext(ctx, "Skipping delivery", err, map[string]interface{}{
			"awaiting": typeName,
			"topic":    topic,
			"reason":   reason,
		})
	}
}

// parseExpectation parses the textual expectation with UseNumber so numeric
// leaves compare against the codec's textual output. An empty document is an
// empty expectation, which matches any message of the right type.
func parseExpectation(expectation []byte) (interface{}, error) {
	if len(bytes.TrimSpace(expectation)) == 0 {
		return map[string]interface{}{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(expectation))
	dec.UseNumber()
	var out interface{}
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if out == nil {
		return map[string]interface{}{}, nil
	}
	return out, nil
}

// normalizeExpectation rewrites symbolic enum names in the expectation to
// their numeric values so they compare against the decoded textual form.
//
// Normalization is shallow: only top-level keys are examined against the
// message's own fields. Enum fields inside nested-message expectations pass
// through unchanged and must be written numerically. An unknown symbolic
// name is left as-is, not an error; it simply never matches.
func normalizeExpectation(expected interface{}, md protoreflect.MessageDescriptor) interface{} {
	obj, ok := expected.(map[string]interface{})
	if !ok {
		return expected
	}

	normalized := make(map[string]interface{}, len(obj))
	for key, value := range obj {
		normalized[key] = value

		fd := md.Fields().ByName(protoreflect.Name(key))
		if fd == nil || fd.Kind() != protoreflect.EnumKind {
			continue
		}
		name, ok := value.(string)
		if !ok {
			continue
		}
		if ev := fd.Enum().Values().ByName(protoreflect.Name(name)); ev != nil {
			normalized[key] = json.Number(strconv.FormatInt(int64(ev.Number()), 10))
		}
	}
	return normalized
}
