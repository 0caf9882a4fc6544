package kafka

import (
	"context"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// Default configuration values applied by NewChannel when the corresponding
// field is left zero.
const (
	DefaultMinBytes     = 1
	DefaultMaxBytes     = 10e6 // 10MB
	DefaultMaxWait      = 250 * time.Millisecond
	DefaultMaxAttempts  = 3
	DefaultWriteTimeout = 10 * time.Second
	DefaultBatchTimeout = 10 * time.Millisecond

	// defaultReceiveBuffer bounds how many consumed records are held before
	// the reader goroutine blocks.
	defaultReceiveBuffer = 100
)

// Config defines the configuration for the Kafka channel backend.
// All messages flow through a single Kafka topic (the Stream); the harness
// topic of each message rides in the record key.
type Config struct {
	// Brokers is the list of Kafka broker addresses
	Brokers []string

	// Stream is the Kafka topic the channel publishes to and consumes from
	Stream string

	// GroupID is the consumer group ID. An empty value reads the partition
	// directly from StartOffset, which is the usual harness setup: every
	// channel instance sees the full stream.
	GroupID string

	// StartOffset determines where a group-less reader begins.
	// Use kafka.LastOffset to observe only traffic after the channel opened.
	StartOffset int64

	// MinBytes is the minimum batch size the reader accepts
	MinBytes int

	// MaxBytes is the maximum batch size the reader accepts
	MaxBytes int

	// MaxWait is the maximum amount of time the reader waits for a batch
	MaxWait time.Duration

	// MaxAttempts limits how many times a publish is retried
	MaxAttempts int

	// WriteTimeout bounds a single publish attempt
	WriteTimeout time.Duration

	// BatchTimeout is how long the writer waits before flushing an
	// incomplete batch
	BatchTimeout time.Duration

	// ReceiveBuffer bounds how many consumed records are held before the
	// reader goroutine blocks. A value of 0 selects a default of 100.
	ReceiveBuffer int

	// TLS contains the TLS settings for broker connections
	TLS TLSConfig

	// SASL contains the SASL authentication settings
	SASL SASLConfig

	// Logger receives internal kafka-go error output when set
	Logger Logger
}

// TLSConfig contains TLS settings for Kafka connections.
type TLSConfig struct {
	// Enabled determines whether TLS is used for broker connections
	Enabled bool

	// CACertPath is the file path to the CA certificate for verifying brokers
	CACertPath string

	// ClientCertPath is the file path to the client certificate
	ClientCertPath string

	// ClientKeyPath is the file path to the client certificate's private key
	ClientKeyPath string

	// InsecureSkipVerify disables server certificate verification.
	// Only use this in development environments.
	InsecureSkipVerify bool
}

// SASLConfig contains SASL authentication settings for Kafka connections.
type SASLConfig struct {
	// Enabled determines whether SASL authentication is used
	Enabled bool

	// Mechanism selects the SASL mechanism:
	// "PLAIN", "SCRAM-SHA-256", or "SCRAM-SHA-512"
	Mechanism string

	// Username for SASL authentication
	Username string

	// Password for SASL authentication
	Password string
}

// Logger is an interface that matches the v1/logger.Logger interface.
type Logger interface {
	// InfoWithContext logs an informational message with trace context.
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// WarnWithContext logs a warning message with trace context.
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// ErrorWithContext logs an error message with trace context.
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

// applyDefaults fills zero-valued tunables with their defaults.
func (cfg Config) applyDefaults() Config {
	if cfg.MinBytes == 0 {
		cfg.MinBytes = DefaultMinBytes
	}
	if cfg.MaxBytes == 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}
	if cfg.MaxWait == 0 {
		cfg.MaxWait = DefaultMaxWait
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.BatchTimeout == 0 {
		cfg.BatchTimeout = DefaultBatchTimeout
	}
	if cfg.StartOffset == 0 {
		cfg.StartOffset = kafkago.LastOffset
	}
	if cfg.ReceiveBuffer <= 0 {
		cfg.ReceiveBuffer = defaultReceiveBuffer
	}
	return cfg
}
