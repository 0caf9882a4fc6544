package codec

import "go.uber.org/fx"

// FXModule provides the codec to the Fx dependency injection container.
// It requires a schema.Registry, typically supplied by schema.FXModule.
//
// Usage:
//
//	app := fx.New(
//	    schema.FXModule,
//	    codec.FXModule,
//	    // other modules...
//	)
var FXModule = fx.Module("codec",
	fx.Provide(
		NewCodec,
	),
)
