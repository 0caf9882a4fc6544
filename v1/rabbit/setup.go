package rabbit

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/wireprobe/wireprobe/v1/observability"
	"github.com/wireprobe/wireprobe/v1/transport"
)

// defaultReceiveBuffer bounds how many consumed deliveries are held before
// the consumer goroutine blocks.
const defaultReceiveBuffer = 100

// RabbitChannel is a channel backend over a RabbitMQ topic exchange.
// Outbound messages are published with their topic as the routing key;
// the receive side consumes from a queue bound to the same exchange and
// hands deliveries out one at a time through Receive.
//
// It manages the connection, the AMQP channel, and a consumer goroutine,
// with automatic reconnection when RetryConnection is running.
type RabbitChannel struct {
	// cfg stores the configuration for this RabbitMQ channel
	cfg Config

	// channel is the AMQP channel used for publishing and consuming
	channel *amqp.Channel

	// conn is the underlying AMQP connection to the RabbitMQ server
	conn *amqp.Connection

	// queueName is the declared receive queue, which may be server-named
	queueName string

	// deliveries buffers consumed messages for Receive
	deliveries chan transport.Delivery

	// mu protects concurrent access to connection and channel
	mu sync.RWMutex

	// shutdownSignal is closed when the channel is being shut down
	shutdownSignal chan struct{}

	closeShutdownOnce sync.Once

	// wg tracks the consumer goroutine for shutdown
	wg sync.WaitGroup

	logger   Logger
	observer observability.Observer
}

// NewChannel creates a RabbitMQ-backed channel with the provided
// configuration. It establishes the connection, declares the topic exchange
// and the receive queue, binds the queue, and starts the consumer goroutine.
//
// Parameters:
//   - cfg: Configuration for connecting to RabbitMQ and setting up the
//     exchange and queue
//
// Returns a RabbitChannel that is ready to publish and receive.
// If connection or setup fails, it returns an error.
//
// Example:
//
//	ch, err := rabbit.NewChannel(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer ch.Close()
func NewChannel(cfg Config) (*RabbitChannel, error) {
	con, err := newConnection(cfg)
	if err != nil {
		log.Printf("ERROR: error in connecting to rabbit after all retries: %v", err)
		return nil, err
	}

	buffer := cfg.Channel.ReceiveBuffer
	if buffer <= 0 {
		buffer = defaultReceiveBuffer
	}

	rb := &RabbitChannel{
		cfg:            cfg,
		conn:           con,
		deliveries:     make(chan transport.Delivery, buffer),
		shutdownSignal: make(chan struct{}),
	}

	if err := rb.setupChannel(con); err != nil {
		log.Printf("ERROR: error in declaring channel: %v", err)
		_ = con.Close()
		return nil, err
	}

	rb.startConsumer()
	return rb, nil
}

// WithLogger attaches an optional logger and returns the channel for
// chaining.
func (rb *RabbitChannel) WithLogger(logger Logger) *RabbitChannel {
	rb.logger = logger
	return rb
}

// WithObserver attaches an optional observer and returns the channel for
// chaining.
func (rb *RabbitChannel) WithObserver(observer observability.Observer) *RabbitChannel {
	rb.observer = observer
	return rb
}

// setupChannel creates and configures the AMQP channel: it declares the
// topic exchange, declares the receive queue, binds it, and applies QoS.
// Callers hold no lock; the method takes rb.mu itself.
func (rb *RabbitChannel) setupChannel(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to create channel: %w", TranslateError(err))
	}

	// Declare the topic exchange both sides share
	err = ch.ExchangeDeclare(
		rb.cfg.Channel.ExchangeName,
		amqp.ExchangeTopic,
		true,  // Durable
		false, // AutoDelete
		false, // Internal
		false, // NoWait
		nil,   // Arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare exchange: %w", TranslateError(err))
	}

	// Declare the receive queue. An empty name requests a server-named
	// exclusive queue that vanishes with the connection.
	exclusive := rb.cfg.Channel.QueueName == ""
	q, err := ch.QueueDeclare(
		rb.cfg.Channel.QueueName,
		!exclusive, // Durable
		exclusive,  // AutoDelete
		exclusive,  // Exclusive
		false,      // NoWait
		nil,        // Arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", TranslateError(err))
	}

	bindingKey := rb.cfg.Channel.BindingKey
	if bindingKey == "" {
		bindingKey = "#"
	}
	err = ch.QueueBind(
		q.Name,
		bindingKey,
		rb.cfg.Channel.ExchangeName,
		false, // NoWait
		nil,   // Arguments
	)
	if err != nil {
		return fmt.Errorf("failed to bind queue: %w", TranslateError(err))
	}

	if rb.cfg.Channel.PrefetchCount > 0 {
		if err := ch.Qos(rb.cfg.Channel.PrefetchCount, 0, false); err != nil {
			return fmt.Errorf("failed to set QoS: %w", TranslateError(err))
		}
	}

	rb.mu.Lock()
	rb.channel = ch
	rb.queueName = q.Name
	rb.mu.Unlock()
	return nil
}

// RetryConnection continuously monitors the RabbitMQ connection and
// automatically re-establishes it if it fails. This method is typically run
// in a goroutine.
//
// The method will:
//   - Monitor the connection for closure events
//   - Attempt to reconnect when the connection is lost
//   - Re-establish the channel, exchange, queue, and binding
//   - Continue monitoring until the channel is closed
//
// This provides resilience against network issues and RabbitMQ server restarts.
func (rb *RabbitChannel) RetryConnection(cfg Config) {
outerLoop:
	for {
		errChan := make(chan *amqp.Error, 1)
		rb.mu.RLock()
		rb.conn.NotifyClose(errChan)
		rb.mu.RUnlock()

		select {
		case <-rb.shutdownSignal:
			log.Println("INFO: Stopping RetryConnection loop due to shutdown signal")
			return

		case err := <-errChan:
			log.Printf("WARNING: RabbitMQ connection closed, retrying... %v", err)
		reconnectLoop:
			for {
				select {
				case <-rb.shutdownSignal:
					log.Println("INFO: Stopping RetryConnection loop due to shutdown signal")
					return
				default:
					newConn, err := newConnection(cfg)
					if err != nil {
						log.Printf("ERROR: RabbitMQ reconnection failed: %v", err)
						time.Sleep(time.Second)
						continue reconnectLoop
					}

					rb.mu.Lock()
					rb.conn = newConn
					if rb.channel != nil {
						_ = rb.channel.Close()
					}
					rb.mu.Unlock()

					if err := rb.setupChannel(newConn); err != nil {
						log.Printf("ERROR: Failed to re-establish RabbitMQ channel: %v", err)
						continue reconnectLoop
					}

					log.Println("INFO: Successfully reconnected to RabbitMQ")
					continue outerLoop
				}
			}
		}
	}
}

// newConnection establishes a connection to the RabbitMQ server.
// This function handles different connection scenarios, including TLS/SSL configurations.
//
// The function supports three connection modes:
//   - SSL with client certificates (full TLS authentication)
//   - SSL without client certificates (server authentication only)
//   - Plain AMQP (no SSL/TLS)
//
// All connections use a 2-second heartbeat interval to detect disconnections quickly.
func newConnection(cfg Config) (*amqp.Connection, error) {

	if cfg.Connection.IsSSLEnabled && cfg.Connection.UseCert {
		hostURL := fmt.Sprintf("amqps://%v:%v@%v:%v", cfg.Connection.User, cfg.Connection.Password, cfg.Connection.Host, cfg.Connection.Port)
		caCert, err := os.ReadFile(cfg.Connection.CACertPath)
		if err != nil {
			log.Printf("ERROR: failed to read CA cert: %v", err)
			return nil, err
		}
		caCertPool := x509.NewCertPool()
		caCertPool.AppendCertsFromPEM(caCert)

		cert, err := tls.LoadX509KeyPair(cfg.Connection.ClientCertPath, cfg.Connection.ClientKeyPath)
		if err != nil {
			log.Printf("ERROR: failed to load client cert: %v", err)
			return nil, err
		}

		tlsConfig := &tls.Config{
			RootCAs:      caCertPool,
			Certificates: []tls.Certificate{cert},
			ServerName:   cfg.Connection.ServerName,
		}
		conn, err := amqp.DialConfig(hostURL, amqp.Config{
			Heartbeat:       2 * time.Second,
			TLSClientConfig: tlsConfig,
		})
		if err == nil {
			log.Println("INFO: Connected to Rabbit")
			return conn, nil
		}
		log.Printf("ERROR: error in connecting to rabbit: %v", err)
	} else if !cfg.Connection.IsSSLEnabled {
		hostURL := fmt.Sprintf("amqp://%v:%v@%v:%v", cfg.Connection.User, cfg.Connection.Password, cfg.Connection.Host, cfg.Connection.Port)
		conn, err := amqp.DialConfig(hostURL, amqp.Config{
			Heartbeat: 2 * time.Second,
		})
		if err == nil {
			log.Println("INFO: Connected to Rabbit")
			return conn, nil
		}
		log.Printf("ERROR: error in connecting to rabbit: %v", err)
	} else {
		hostURL := fmt.Sprintf("amqps://%v:%v@%v:%v", cfg.Connection.User, cfg.Connection.Password, cfg.Connection.Host, cfg.Connection.Port)
		conn, err := amqp.DialConfig(hostURL, amqp.Config{
			Heartbeat: 2 * time.Second,
		})
		if err == nil {
			log.Println("INFO: Connected to Rabbit")
			return conn, nil
		}
		log.Printf("ERROR: error in connecting to rabbit: %v", err)
	}
	return nil, fmt.Errorf("failed to connect to Rabbit: %w", ErrConnectionFailed)
}
