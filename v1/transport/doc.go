// Package transport defines the channel contract the expectation matcher
// runs against: publish a (topic, payload) frame pair, receive the next one
// with a bounded wait.
//
// Concrete broker-backed implementations live in the rabbit and kafka
// packages; this package only carries the interface, the shared error
// sentinels, and an in-process Loopback used by tests.
package transport
