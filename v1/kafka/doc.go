// Package kafka provides a Kafka-backed channel for the expectation harness,
// built on github.com/segmentio/kafka-go.
//
// Unlike the rabbit backend, Kafka has no per-message routing key on a
// shared exchange; instead all harness traffic flows through a single Kafka
// topic (the Stream) and the harness topic of each message rides in the
// record key. The receive side reads the stream from its configured start
// offset and hands records out one at a time through Receive.
//
// Group-less readers with StartOffset = kafka.LastOffset are the usual
// harness setup: every channel instance observes the full stream from the
// moment it opened, without competing in a consumer group.
//
// # Features
//
//   - TLS support, with or without client certificates
//   - SASL authentication: PLAIN, SCRAM-SHA-256, SCRAM-SHA-512
//   - Record headers for metadata and trace context propagation
//   - Optional structured logging and operation observation
//
// # Basic Usage
//
//	cfg := kafka.Config{
//	    Brokers: []string{"localhost:9092"},
//	    Stream:  "harness",
//	}
//
//	ch, err := kafka.NewChannel(cfg)
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
//	    kafka.FXModule,
//	    fx.Provide(func() kafka.Config { return loadConfig() }),
//	)
//
// The fx module provides both *KafkaChannel and the transport.Channel
// interface and closes the channel on application stop.
package kafka
