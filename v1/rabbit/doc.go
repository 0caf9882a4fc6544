// Package rabbit provides a RabbitMQ-backed channel for the expectation
// harness, built on github.com/rabbitmq/amqp091-go.
//
// The channel publishes to a durable topic exchange with the message topic
// as the routing key, and consumes from a queue bound to the same exchange.
// By default the receive queue is server-named, exclusive, and bound with
// "#", so each channel instance observes the full topic stream without
// competing with other instances. A fixed queue name can be configured when
// a shared, durable queue is wanted instead.
//
// Consumed deliveries are auto-acknowledged and buffered in memory; Receive
// hands them out one at a time with a per-call wait window and returns
// transport.ErrReceiveTimeout when the window elapses.
//
// # Features
//
//   - Automatic reconnection with exchange, queue, and binding re-declaration
//     (run RetryConnection in a goroutine, or use FXModule which does so)
//   - TLS support, with or without client certificates
//   - Message headers for metadata and trace context propagation
//   - Optional structured logging and operation observation
//   - Standardized error translation via TranslateError
//
// # Basic Usage
//
//	cfg := rabbit.Config{
//	    Connection: rabbit.Connection{
//	        Host:     "localhost",
//	        Port:     5672,
//	        User:     "guest",
//	        Password: "guest",
//	    },
//	    Channel: rabbit.Channel{
//	        ExchangeName: "harness",
//	    },
//	}
//
//	ch, err := rabbit.NewChannel(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ch.Close()
//
//	if err := ch.Publish(ctx, "Ping", payload); err != nil {
//	    log.Printf("publish failed: %v", err)
//	}
//
//	d, err := ch.Receive(ctx, 5*time.Second)
//	if errors.Is(err, transport.ErrReceiveTimeout) {
//	    log.Println("nothing arrived")
//	}
//
// # Usage with Fx
//
//	app := fx.New(
//	    rabbit.FXModule,
//	    fx.Provide(func() rabbit.Config { return loadConfig() }),
//	    fx.Invoke(func(ch transport.Channel) {
//	        // use the channel
//	    }),
//	)
//
// The fx module provides both *RabbitChannel and the transport.Channel
// interface, starts connection monitoring on application start, and closes
// the channel on application stop.
package rabbit
