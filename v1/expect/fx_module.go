package expect

import (
	"go.uber.org/fx"

	"github.com/wireprobe/wireprobe/v1/observability"
	"github.com/wireprobe/wireprobe/v1/schema"
	"github.com/wireprobe/wireprobe/v1/transport"
)

// FXModule provides the expectation matcher to the Fx dependency injection
// container.
//
// The module provides:
//  1. *Matcher (concrete type) for direct use
//  2. Client interface for dependency injection
//
// It requires a Config, a schema.Registry, and a transport.Channel; a
// Logger and an observability.Observer are picked up when present.
//
// Usage:
//
//	app := fx.New(
//	    schema.FXModule,
//	    rabbit.FXModule,
//	    expect.FXModule,
//	    fx.Provide(
//	        func() expect.Config { return expect.Config{TopicPrefix: "company.project.v1"} },
//	    ),
//	)
var FXModule = fx.Module("expect",
	fx.Provide(
		NewMatcherWithDI,
		fx.Annotate(
			func(m *Matcher) Client { return m },
			fx.As(new(Client)),
		),
	),
)

// MatcherParams groups the dependencies needed to create a Matcher.
type MatcherParams struct {
	fx.In

	Config   Config
	Registry schema.Registry
	Channel  transport.Channel
	Logger   Logger                 `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewMatcherWithDI creates a matcher with dependencies injected by Fx,
// attaching the optional logger and observer when they are provided.
func NewMatcherWithDI(params MatcherParams) *Matcher {
	m := NewMatcher(params.Config, params.Registry, params.Channel)
	if params.Logger != nil {
		m = m.WithLogger(params.Logger)
	}
	if params.Observer != nil {
		m = m.WithObserver(params.Observer)
	}
	return m
}
