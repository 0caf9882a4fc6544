package kafka

import (
	"context"

	"go.uber.org/fx"

	"github.com/wireprobe/wireprobe/v1/observability"
	"github.com/wireprobe/wireprobe/v1/transport"
)

// FXModule is an fx.Module that provides and configures the Kafka channel.
//
// The module provides:
// 1. *KafkaChannel (concrete type) for direct use
// 2. transport.Channel interface for dependency injection
// 3. Lifecycle management for graceful shutdown
//
// Usage:
//
//	app := fx.New(
//	    kafka.FXModule,
//	    // other modules...
//	)
var FXModule = fx.Module("kafka",
	fx.Provide(
		NewChannelWithDI, // Provides *KafkaChannel
		// Also provide the transport.Channel interface
		fx.Annotate(
			func(k *KafkaChannel) transport.Channel { return k },
			fx.As(new(transport.Channel)),
		),
	),
	fx.Invoke(RegisterKafkaLifecycle),
)

// KafkaParams groups the dependencies needed to create a Kafka channel
type KafkaParams struct {
	fx.In

	Config   Config
	Logger   Logger                 `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewChannelWithDI creates a new Kafka channel using dependency injection.
// This function is designed to be used with Uber's fx dependency injection
// framework where dependencies are automatically provided via the
// KafkaParams struct.
func NewChannelWithDI(params KafkaParams) (*KafkaChannel, error) {
	ch, err := NewChannel(params.Config)
	if err != nil {
		return nil, err
	}

	if params.Logger != nil {
		ch.logger = params.Logger
	}
	if params.Observer != nil {
		ch.observer = params.Observer
	}

	return ch, nil
}

// KafkaLifecycleParams groups the dependencies needed for Kafka lifecycle management
type KafkaLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Channel   *KafkaChannel
}

// RegisterKafkaLifecycle registers the Kafka channel with the fx lifecycle
// system, closing the writer, reader, and reader goroutine cleanly on
// application stop.
func RegisterKafkaLifecycle(params KafkaLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return params.Channel.Close()
		},
	})
}
