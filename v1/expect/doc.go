// Package expect validates asynchronous publish/subscribe exchanges with a
// system under test.
//
// A Matcher composes the schema registry, the codec, and one channel handle
// into two operations:
//
//	Send    build a message from a JSON body, encode it, publish it under
//	        the bare type name as topic
//	Expect  wait for a message of a given type whose decoded textual form
//	        partially matches a JSON expectation
//
// # The receive loop
//
// Expect repeatedly receives from the channel. Each delivery is decoded
// against the schema resolved from the fixed topic prefix plus the inbound
// topic. Deliveries that fail to decode, arrive on the wrong topic, or do
// not match the expectation are discarded silently and the loop continues;
// only an idle receive window fails the expectation, with a *TimeoutError
// naming the awaited type.
//
// Two consequences of that policy are worth knowing:
//
//   - Genuinely corrupted traffic is indistinguishable from benign
//     unrelated traffic. Persistent corruption surfaces only as an eventual
//     timeout. Skips are logged at debug level and reported to the observer
//     so they remain visible operationally.
//   - Every receive call gets the full timeout as a fresh wait window, so
//     the total observed wait can exceed the nominal timeout while
//     non-matching messages keep arriving. Callers needing a hard wall
//     clock can cancel the context passed to Expect.
//
// # Partial matching
//
// Expectations are subsets: every expected key must be present and equal in
// the decoded message, extra fields are ignored, and sequence elements match
// existentially. Symbolic enum names are accepted at the top level of an
// expectation and normalized to their numeric values against the decoded
// message's schema; nested enum fields must be written numerically.
//
// # Usage
//
//	m := expect.NewMatcher(expect.Config{TopicPrefix: "company.project.v1"}, registry, channel)
//	if err := m.Send(ctx, "Ping", []byte(`{"seq": 5}`)); err != nil {
//	    return err
//	}
//	got, err := m.Expect(ctx, "Pong", []byte(`{"seq": 5, "status": "OK"}`), time.Second)
//
// For trace propagation, pass carrier headers to Send:
//
//	m.Send(ctx, "Ping", body, tracerClient.GetCarrier(ctx))
package expect
