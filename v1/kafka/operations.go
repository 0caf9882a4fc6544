package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/wireprobe/wireprobe/v1/transport"
)

// startReader launches the goroutine that reads from the stream topic and
// feeds the delivery buffer. It stops when the read context is canceled by
// Close.
func (k *KafkaChannel) startReader(ctx context.Context) {
	k.wg.Add(1)
	go func() {
		defer k.wg.Done()
		for {
			msg, err := k.reader.ReadMessage(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
					return
				}
				k.logError(ctx, "Failed to read from Kafka", err)
				select {
				case <-ctx.Done():
					return
				case <-time.After(100 * time.Millisecond):
					continue
				}
			}

			k.observeOperation("consume", k.cfg.Stream, string(msg.Key), 0, nil, int64(len(msg.Value)))

			d := transport.Delivery{
				Topic:   string(msg.Key),
				Payload: msg.Value,
				Headers: headersFromRecord(msg.Headers),
			}
			select {
			case k.deliveries <- d:
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Publish writes a payload to the stream topic with the harness topic as the
// record key. This method is thread-safe and respects context cancellation.
//
// Parameters:
//   - ctx: Context for cancellation control
//   - topic: Harness topic of the message, carried in the record key
//   - payload: Message payload as a byte slice
//   - headers: Optional message headers; can be used for metadata and
//     distributed tracing propagation
//
// Returns an error if publishing fails or if the context is canceled.
func (k *KafkaChannel) Publish(ctx context.Context, topic string, payload []byte, headers ...map[string]interface{}) error {
	start := time.Now()
	var publishErr error
	msgSize := int64(len(payload))

	defer func() {
		k.observeOperation("produce", k.cfg.Stream, topic, time.Since(start), publishErr, msgSize)
	}()

	select {
	case <-k.shutdownSignal:
		publishErr = transport.ErrClosed
		return publishErr
	case <-ctx.Done():
		publishErr = ctx.Err()
		return publishErr
	default:
	}

	var header map[string]interface{}
	if len(headers) > 0 {
		header = headers[0]
	}

	publishErr = k.writer.WriteMessages(ctx, kafkago.Message{
		Key:     []byte(topic),
		Value:   payload,
		Headers: headersToRecord(header),
	})
	if publishErr != nil {
		publishErr = fmt.Errorf("failed to write message: %w", publishErr)
	}
	return publishErr
}

// Receive returns the next buffered record, waiting up to timeout for one
// to arrive. It returns transport.ErrReceiveTimeout when the wait window
// elapses and transport.ErrClosed after Close.
func (k *KafkaChannel) Receive(ctx context.Context, timeout time.Duration) (transport.Delivery, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case d := <-k.deliveries:
		return d, nil
	case <-timer.C:
		return transport.Delivery{}, transport.ErrReceiveTimeout
	case <-k.shutdownSignal:
		return transport.Delivery{}, transport.ErrClosed
	case <-ctx.Done():
		return transport.Delivery{}, ctx.Err()
	}
}

// Close shuts the channel down: it stops the reader goroutine and closes
// the writer and reader cleanly. Close is idempotent; pending and future
// Publish and Receive calls return transport.ErrClosed.
func (k *KafkaChannel) Close() error {
	var closeErr error
	k.closeShutdownOnce.Do(func() {
		close(k.shutdownSignal)
		k.readCancel()
		k.wg.Wait()

		k.logInfo(context.Background(), "Shutting down Kafka channel")

		if err := k.writer.Close(); err != nil {
			closeErr = fmt.Errorf("failed to close writer: %w", err)
		}
		if err := k.reader.Close(); err != nil && closeErr == nil {
			closeErr = fmt.Errorf("failed to close reader: %w", err)
		}
	})
	return closeErr
}

// headersToRecord converts the transport header map to Kafka record headers.
func headersToRecord(headers map[string]interface{}) []kafkago.Header {
	if len(headers) == 0 {
		return nil
	}
	out := make([]kafkago.Header, 0, len(headers))
	for key, value := range headers {
		out = append(out, kafkago.Header{
			Key:   key,
			Value: []byte(fmt.Sprint(value)),
		})
	}
	return out
}

// headersFromRecord converts Kafka record headers to the transport header map.
func headersFromRecord(headers []kafkago.Header) map[string]interface{} {
	if len(headers) == 0 {
		return nil
	}
	out := make(map[string]interface{}, len(headers))
	for _, h := range headers {
		out[h.Key] = string(h.Value)
	}
	return out
}

func (k *KafkaChannel) logInfo(ctx context.Context, msg string) {
	if k.logger != nil {
		k.logger.InfoWithContext(ctx, msg, nil)
	}
}

func (k *KafkaChannel) logError(ctx context.Context, msg string, err error) {
	if k.logger != nil {
		k.logger.ErrorWithContext(ctx, msg, err)
	}
}
