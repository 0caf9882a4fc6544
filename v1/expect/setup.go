package expect

import (
	"github.com/wireprobe/wireprobe/v1/codec"
	"github.com/wireprobe/wireprobe/v1/observability"
	"github.com/wireprobe/wireprobe/v1/schema"
	"github.com/wireprobe/wireprobe/v1/transport"
)

// Matcher orchestrates send and expect operations over a single channel
// handle.
//
// A Matcher owns its channel exclusively: Expect runs a synchronous receive
// loop on it, and there is no cancellation primitive beyond the per-receive
// timeout and the caller's context. A caller that wants an early abort must
// close the channel handle from outside.
type Matcher struct {
	cfg      Config
	registry schema.Registry
	codec    *codec.Codec
	channel  transport.Channel

	// logger records skipped deliveries and match outcomes; optional.
	logger Logger

	// observer receives an operation record per publish, skip, and match;
	// optional.
	observer observability.Observer
}

// NewMatcher creates a matcher over the given registry and channel.
//
// Example:
//
//	registry, err := schema.NewRegistry(schema.Config{DescriptorSet: descriptorSet})
//	if err != nil {
//	    return err
//	}
//	ch := transport.NewLoopback(0)
//	m := expect.NewMatcher(expect.Config{TopicPrefix: "company.project.v1"}, registry, ch)
//
//	if err := m.Send(ctx, "Ping", []byte(`{"seq": 5}`)); err != nil {
//	    return err
//	}
//	got, err := m.Expect(ctx, "Pong", []byte(`{"seq": 5}`), time.Second)
func NewMatcher(cfg Config, registry schema.Registry, channel transport.Channel) *Matcher {
	if cfg.DefaultTimeout <= 0 {
		cfg.DefaultTimeout = DefaultTimeout
	}
	return &Matcher{
		cfg:      cfg,
		registry: registry,
		codec:    codec.NewCodec(registry),
		channel:  channel,
	}
}

// WithLogger attaches an optional logger and returns the matcher for
// chaining.
func (m *Matcher) WithLogger(logger Logger) *Matcher {
	m.logger = logger
	return m
}

// WithObserver attaches an optional observer and returns the matcher for
// chaining.
func (m *Matcher) WithObserver(observer observability.Observer) *Matcher {
	m.observer = observer
	return m
}
