package rabbit

import (
	"context"
	"sync"

	"go.uber.org/fx"

	"github.com/wireprobe/wireprobe/v1/observability"
	"github.com/wireprobe/wireprobe/v1/transport"
)

// FXModule is an fx.Module that provides and configures the RabbitMQ channel.
// This module registers the channel with the Fx dependency injection
// framework, making it available to other components in the application.
//
// The module provides:
// 1. *RabbitChannel (concrete type) for direct use
// 2. transport.Channel interface for dependency injection
// 3. Lifecycle management for graceful startup and shutdown
//
// Usage:
//
//	app := fx.New(
//	    rabbit.FXModule,
//	    // other modules...
//	)
var FXModule = fx.Module("rabbit",
	fx.Provide(
		NewChannelWithDI, // Provides *RabbitChannel
		// Also provide the transport.Channel interface
		fx.Annotate(
			func(rb *RabbitChannel) transport.Channel { return rb },
			fx.As(new(transport.Channel)),
		),
	),
	fx.Invoke(RegisterRabbitLifecycle),
)

// RabbitParams groups the dependencies needed to create a Rabbit channel
type RabbitParams struct {
	fx.In

	Config   Config
	Logger   Logger                 `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewChannelWithDI creates a new RabbitMQ channel using dependency injection.
// This function is designed to be used with Uber's fx dependency injection
// framework where dependencies are automatically provided via the
// RabbitParams struct.
//
// Parameters:
//   - params: A RabbitParams struct that contains the Config instance
//     and optionally a Logger and Observer instances.
//     This struct embeds fx.In to enable automatic injection of these dependencies.
//
// Returns:
//   - *RabbitChannel: A fully initialized RabbitMQ channel ready for use.
//
// Example usage with fx:
//
//	app := fx.New(
//	    rabbit.FXModule,
//	    logger.FXModule,  // Optional: provides logger
//	    fx.Provide(
//	        func() rabbit.Config {
//	            return loadRabbitConfig() // Your config loading function
//	        },
//	    ),
//	)
func NewChannelWithDI(params RabbitParams) (*RabbitChannel, error) {
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

// RabbitLifecycleParams groups the dependencies needed for RabbitMQ lifecycle management
type RabbitLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Channel   *RabbitChannel
	Config    Config
}

// RegisterRabbitLifecycle registers the RabbitMQ channel with the fx
// lifecycle system.
//
// The function:
//  1. On application start: Launches a background goroutine that monitors and
//     maintains the RabbitMQ connection, automatically reconnecting if it
//     fails.
//  2. On application stop: Triggers a graceful shutdown of the channel,
//     closing the consumer, the AMQP channel, and the connection cleanly.
func RegisterRabbitLifecycle(params RabbitLifecycleParams) {
	wg := &sync.WaitGroup{}

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			wg.Add(1)

			go func(cfg Config) {
				defer wg.Done()
				params.Channel.RetryConnection(cfg)
			}(params.Config)

			return nil
		},
		OnStop: func(ctx context.Context) error {
			err := params.Channel.Close()

			wg.Wait()
			return err
		},
	})
}
