package schema

import "go.uber.org/fx"

// FXModule provides the schema registry to the Fx dependency injection
// container.
//
// The module provides:
//  1. *DescriptorRegistry (concrete type) for direct use
//  2. Registry interface for dependency injection
//
// A schema.Config instance must be available in the container. Because
// NewRegistry fails when the descriptor set is missing or malformed, a bad
// schema configuration aborts application startup instead of surfacing later
// on a send or expect call.
//
// Usage:
//
//	app := fx.New(
//	    schema.FXModule,
//	    fx.Provide(func() schema.Config {
//	        return schema.Config{DescriptorSet: descriptorSet}
//	    }),
//	)
var FXModule = fx.Module("schema",
	fx.Provide(
		NewRegistry,
		fx.Annotate(
			func(r *DescriptorRegistry) Registry { return r },
			fx.As(new(Registry)),
		),
	),
)
