package kafka

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"

	"github.com/wireprobe/wireprobe/v1/observability"
	"github.com/wireprobe/wireprobe/v1/transport"
)

// KafkaChannel is a channel backend over a single Kafka topic.
// Outbound messages carry their harness topic in the record key; the receive
// side reads the stream and hands records out one at a time through Receive.
type KafkaChannel struct {
	// cfg stores the configuration for this Kafka channel
	cfg Config

	// writer is the Kafka writer used for publishing messages
	writer *kafkago.Writer

	// reader is the Kafka reader used for consuming messages
	reader *kafkago.Reader

	// deliveries buffers consumed records for Receive
	deliveries chan transport.Delivery

	// readCancel stops the reader goroutine
	readCancel context.CancelFunc

	// shutdownSignal is closed when the channel is being shut down
	shutdownSignal chan struct{}

	closeShutdownOnce sync.Once

	// wg tracks the reader goroutine for shutdown
	wg sync.WaitGroup

	logger   Logger
	observer observability.Observer
}

// NewChannel creates and initializes a Kafka-backed channel with the
// provided configuration. It sets up the writer and reader over the stream
// topic and starts the reader goroutine.
//
// Parameters:
//   - cfg: Configuration for connecting to Kafka
//
// Returns a KafkaChannel that is ready to publish and receive.
//
// Example:
//
//	ch, err := kafka.NewChannel(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer ch.Close()
func NewChannel(cfg Config) (*KafkaChannel, error) {
	cfg = cfg.applyDefaults()

	// Set up TLS config if enabled
	var tlsConfig *tls.Config
	var err error
	if cfg.TLS.Enabled {
		tlsConfig, err = createTLSConfig(cfg.TLS)
		if err != nil {
			return nil, fmt.Errorf("failed to create TLS config: %w", err)
		}
	}

	// Set up SASL mechanism if enabled
	var mechanism sasl.Mechanism
	if cfg.SASL.Enabled {
		mechanism, err = createSASLMechanism(cfg.SASL)
		if err != nil {
			return nil, fmt.Errorf("failed to create SASL mechanism: %w", err)
		}
	}

	readCtx, readCancel := context.WithCancel(context.Background())

	k := &KafkaChannel{
		cfg:            cfg,
		writer:         createWriter(cfg, tlsConfig, mechanism),
		reader:         createReader(cfg, tlsConfig, mechanism),
		deliveries:     make(chan transport.Delivery, cfg.ReceiveBuffer),
		readCancel:     readCancel,
		shutdownSignal: make(chan struct{}),
	}
	logger := cfg.Logger
	k.logger = logger

	k.startReader(readCtx)
	log.Println("INFO: Kafka channel initialized")
	return k, nil
}

// WithObserver attaches an observer to the Kafka channel for tracking
// operations. This method uses the builder pattern and returns the channel
// for method chaining.
//
// The observer will be notified of all produce and consume operations,
// allowing external code to collect metrics, create traces, or log
// operations.
func (k *KafkaChannel) WithObserver(observer observability.Observer) *KafkaChannel {
	k.observer = observer
	return k
}

// WithLogger attaches an optional logger and returns the channel for
// chaining.
func (k *KafkaChannel) WithLogger(logger Logger) *KafkaChannel {
	k.logger = logger
	return k
}

// createErrorLogger creates a Kafka error logger from the config
func createErrorLogger(cfg Config) kafkago.LoggerFunc {
	if cfg.Logger != nil {
		return func(msg string, args ...interface{}) {
			formattedMsg := msg
			if len(args) > 0 {
				formattedMsg = fmt.Sprintf(msg, args...)
			}
			cfg.Logger.ErrorWithContext(context.Background(), "Kafka internal error", nil, map[string]interface{}{
				"error": formattedMsg,
			})
		}
	}

	return func(msg string, args ...interface{}) {
		log.Printf("KAFKA ERROR: "+msg, args...)
	}
}

// createWriter creates a Kafka writer with the given configuration
func createWriter(cfg Config, tlsConfig *tls.Config, mechanism sasl.Mechanism) *kafkago.Writer {
	writerConfig := kafkago.WriterConfig{
		Brokers:      cfg.Brokers,
		Topic:        cfg.Stream,
		Balancer:     &kafkago.LeastBytes{},
		MaxAttempts:  cfg.MaxAttempts,
		WriteTimeout: cfg.WriteTimeout,
		BatchTimeout: cfg.BatchTimeout,
		ErrorLogger:  createErrorLogger(cfg),
	}

	// Create dialer with TLS and SASL
	dialer := &kafkago.Dialer{
		TLS:           tlsConfig,
		SASLMechanism: mechanism,
	}
	writerConfig.Dialer = dialer

	return kafkago.NewWriter(writerConfig)
}

// createReader creates a Kafka reader with the given configuration
func createReader(cfg Config, tlsConfig *tls.Config, mechanism sasl.Mechanism) *kafkago.Reader {
	readerConfig := kafkago.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.Stream,
		GroupID:     cfg.GroupID,
		MinBytes:    cfg.MinBytes,
		MaxBytes:    cfg.MaxBytes,
		MaxWait:     cfg.MaxWait,
		StartOffset: cfg.StartOffset,
		ErrorLogger: createErrorLogger(cfg),
	}

	// Create dialer with TLS and SASL
	dialer := &kafkago.Dialer{
		TLS:           tlsConfig,
		SASLMechanism: mechanism,
	}
	readerConfig.Dialer = dialer

	return kafkago.NewReader(readerConfig)
}

// createTLSConfig creates a TLS configuration from the provided config
func createTLSConfig(cfg TLSConfig) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		InsecureSkipVerify: cfg.InsecureSkipVerify,
	}

	// Load CA certificate
	if cfg.CACertPath != "" {
		caCert, err := os.ReadFile(cfg.CACertPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA cert: %w", err)
		}
		caCertPool := x509.NewCertPool()
		if !caCertPool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("failed to parse CA cert")
		}
		tlsConfig.RootCAs = caCertPool
	}

	// Load client certificate
	if cfg.ClientCertPath != "" && cfg.ClientKeyPath != "" {
		cert, err := tls.LoadX509KeyPair(cfg.ClientCertPath, cfg.ClientKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load client cert: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return tlsConfig, nil
}

// createSASLMechanism creates a SASL mechanism from the provided config
func createSASLMechanism(cfg SASLConfig) (sasl.Mechanism, error) {
	switch cfg.Mechanism {
	case "PLAIN":
		return plain.Mechanism{
			Username: cfg.Username,
			Password: cfg.Password,
		}, nil
	case "SCRAM-SHA-256":
		return scram.Mechanism(scram.SHA256, cfg.Username, cfg.Password)
	case "SCRAM-SHA-512":
		return scram.Mechanism(scram.SHA512, cfg.Username, cfg.Password)
	default:
		return nil, fmt.Errorf("unsupported SASL mechanism: %s", cfg.Mechanism)
	}
}

// observeOperation notifies the observer about an operation if one is configured.
func (k *KafkaChannel) observeOperation(operation, resource, subResource string, duration time.Duration, err error, size int64) {
	if k.observer != nil {
		k.observer.ObserveOperation(observability.OperationContext{
			Component:   "kafka",
			Operation:   operation,
			Resource:    resource,
			SubResource: subResource,
			Duration:    duration,
			Error:       err,
			Size:        size,
			Metadata:    nil,
		})
	}
}
