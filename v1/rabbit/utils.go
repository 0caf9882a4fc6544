package rabbit

import (
	"context"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/wireprobe/wireprobe/v1/transport"
)

// startConsumer launches the goroutine that consumes from the receive queue
// and feeds the delivery buffer.
//
// The goroutine:
//   - Re-establishes the consumer when the AMQP channel is replaced after a
//     reconnect
//   - Uses auto-ack; a delivery handed to Receive is never redelivered
//   - Stops when the channel is closed
func (rb *RabbitChannel) startConsumer() {
	rb.wg.Add(1)
	go func() {
		defer rb.wg.Done()
		ctx := context.Background()
	outerLoop:
		for {
			select {
			case <-rb.shutdownSignal:
				rb.logInfo(ctx, "Stopping consumer due to shutdown signal", map[string]interface{}{
					"queue": rb.queueName,
				})
				return
			default:
				rb.mu.RLock()
				queue := rb.queueName
				msgs, err := rb.channel.Consume(
					queue,
					"",    // consumer
					true,  // autoAck
					false, // exclusive
					false, // noLocal
					false, // noWait
					nil,   // args
				)
				rb.mu.RUnlock()

				if err != nil {
					rb.logError(ctx, "Failed to establish consumer", map[string]interface{}{
						"queue": queue,
						"error": err.Error(),
					})
					time.Sleep(100 * time.Millisecond)
					continue
				}

				for {
					select {
					case <-rb.shutdownSignal:
						rb.logInfo(ctx, "Stopping consumer due to shutdown signal", map[string]interface{}{
							"queue": queue,
						})
						return
					case msg, ok := <-msgs:
						if !ok {
							continue outerLoop
						}

						rb.observeOperation("consume", queue, msg.RoutingKey, 0, nil, int64(len(msg.Body)))

						d := transport.Delivery{
							Topic:   msg.RoutingKey,
							Payload: msg.Body,
							Headers: headersFromTable(msg.Headers),
						}
						select {
						case rb.deliveries <- d:
						case <-rb.shutdownSignal:
							return
						}
					}
				}
			}
		}
	}()
}

// Publish sends a payload to the topic exchange with the topic as the
// routing key. This method is thread-safe and respects context cancellation.
//
// Parameters:
//   - ctx: Context for cancellation control
//   - topic: Routing key for the message; consumers bound with a matching
//     pattern receive it
//   - payload: Message payload as a byte slice
//   - headers: Optional message headers; can be used for metadata and
//     distributed tracing propagation
//
// The headers parameter is particularly useful for distributed tracing,
// allowing trace context to be propagated across service boundaries through
// message queues:
//
//	traceHeaders := tracerClient.GetCarrier(ctx)
//	err := ch.Publish(ctx, "Ping", payload, traceHeaders)
//
// Returns an error if publishing fails or if the context is canceled.
func (rb *RabbitChannel) Publish(ctx context.Context, topic string, payload []byte, headers ...map[string]interface{}) error {
	start := time.Now()
	var publishErr error
	msgSize := int64(len(payload))

	defer func() {
		rb.observeOperation("produce", rb.cfg.Channel.ExchangeName, topic, time.Since(start), publishErr, msgSize)
	}()

	select {
	case <-rb.shutdownSignal:
		publishErr = transport.ErrClosed
		return publishErr
	case <-ctx.Done():
		publishErr = ctx.Err()
		return publishErr
	default:
		var header map[string]interface{}
		if len(headers) > 0 {
			header = headers[0]
		}

		rb.mu.RLock()
		publishErr = rb.channel.PublishWithContext(ctx,
			rb.cfg.Channel.ExchangeName,
			topic,
			false,
			false,
			amqp.Publishing{
				Headers:     amqp.Table(header),
				ContentType: rb.cfg.Channel.ContentType,
				Body:        payload,
			},
		)
		rb.mu.RUnlock()

		if publishErr != nil {
			publishErr = TranslateError(publishErr)
		}
		return publishErr
	}
}

// Receive returns the next buffered delivery, waiting up to timeout for one
// to arrive. It returns transport.ErrReceiveTimeout when the wait window
// elapses and transport.ErrClosed after Close.
func (rb *RabbitChannel) Receive(ctx context.Context, timeout time.Duration) (transport.Delivery, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case d := <-rb.deliveries:
		return d, nil
	case <-timer.C:
		return transport.Delivery{}, transport.ErrReceiveTimeout
	case <-rb.shutdownSignal:
		return transport.Delivery{}, transport.ErrClosed
	case <-ctx.Done():
		return transport.Delivery{}, ctx.Err()
	}
}

// Close shuts the channel down: it stops the consumer goroutine and closes
// the AMQP channel and connection cleanly. Close is idempotent; pending and
// future Publish and Receive calls return transport.ErrClosed.
func (rb *RabbitChannel) Close() error {
	rb.closeShutdownOnce.Do(func() {
		close(rb.shutdownSignal)
	})
	rb.wg.Wait()

	rb.mu.Lock()
	defer rb.mu.Unlock()

	rb.logInfo(context.Background(), "Shutting down RabbitMQ channel", nil)

	if rb.channel != nil {
		if err := rb.channel.Close(); err != nil {
			rb.logWarn(context.Background(), "Failed to close rabbit channel", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	if rb.conn != nil && !rb.conn.IsClosed() {
		if err := rb.conn.Close(); err != nil {
			rb.logWarn(context.Background(), "Failed to close rabbit connection", map[string]interface{}{
				"error": err.Error(),
			})
			return TranslateError(err)
		}
	}
	return nil
}

// headersFromTable converts AMQP header tables to the transport header map.
func headersFromTable(table amqp.Table) map[string]interface{} {
	if len(table) == 0 {
		return nil
	}
	headers := make(map[string]interface{}, len(table))
	for k, v := range table {
		headers[k] = v
	}
	return headers
}

func (rb *RabbitChannel) logInfo(ctx context.Context, msg string, fields map[string]interface{}) {
	if rb.logger != nil {
		rb.logger.InfoWithContext(ctx, msg, nil, fields)
	}
}

func (rb *RabbitChannel) logWarn(ctx context.Context, msg string, fields map[string]interface{}) {
	if rb.logger != nil {
		rb.logger.WarnWithContext(ctx, msg, nil, fields)
	}
}

func (rb *RabbitChannel) logError(ctx context.Context, msg string, fields map[string]interface{}) {
	if rb.logger != nil {
		rb.logger.ErrorWithContext(ctx, msg, nil, fields)
	}
}
