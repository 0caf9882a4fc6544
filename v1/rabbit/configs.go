package rabbit

import "context"

// Config defines the top-level configuration structure for the RabbitMQ
// channel backend. It contains the settings for establishing a connection and
// for the exchange and queue the channel operates on.
type Config struct {
	// Connection contains the settings needed to establish a connection to the RabbitMQ server
	Connection Connection

	// Channel contains configuration for the exchange, queue, and message routing
	Channel Channel
}

// Connection contains the configuration parameters needed to establish
// a connection to a RabbitMQ server, including authentication and TLS settings.
type Connection struct {
	// Host is the RabbitMQ server hostname or IP address
	Host string

	// Port is the RabbitMQ server port (typically 5672 for non-SSL, 5671 for SSL)
	Port uint

	// User is the RabbitMQ username for authentication
	User string

	// Password is the RabbitMQ password for authentication
	Password string

	// IsSSLEnabled determines whether to use SSL/TLS for the connection
	// When true, connections will use the AMQPs protocol
	IsSSLEnabled bool

	// UseCert determines whether to use client certificate authentication
	// When true, client certificates will be sent for mutual TLS authentication
	UseCert bool

	// CACertPath is the file path to the CA certificate for verifying the server
	// Used when IsSSLEnabled is true
	CACertPath string

	// ClientCertPath is the file path to the client certificate
	// Used when both IsSSLEnabled and UseCert are true
	ClientCertPath string

	// ClientKeyPath is the file path to the client certificate's private key
	// Used when both IsSSLEnabled and UseCert are true
	ClientKeyPath string

	// ServerName is the server name to use for TLS verification
	// This should match a CN or SAN in the server's certificate
	ServerName string
}

// Channel contains configuration for the AMQP exchange, queue, and bindings.
// These settings determine how published messages are routed back to the
// channel's receive side.
type Channel struct {
	// ExchangeName is the name of the topic exchange to publish to and
	// consume from. Outbound messages use their topic as the routing key.
	ExchangeName string

	// BindingKey is the pattern the receive queue is bound with.
	// An empty value binds with "#" so every topic on the exchange is
	// delivered.
	BindingKey string

	// QueueName is the name of the queue to declare for the receive side.
	// An empty value requests a server-named exclusive queue, which is the
	// usual choice: each channel instance then observes the full topic
	// stream without competing with other instances.
	QueueName string

	// PrefetchCount limits the number of unacknowledged messages that can be sent to a consumer
	// A value of 0 means no limit (not recommended for production)
	PrefetchCount int

	// ContentType specifies the MIME type of published messages
	// Common values: "application/json", "text/plain", "application/octet-stream"
	ContentType string

	// ReceiveBuffer bounds how many consumed deliveries are held before the
	// consumer blocks. A value of 0 selects a default of 100.
	ReceiveBuffer int
}

// Logger is an interface that matches the v1/logger.Logger interface.
// It provides context-aware structured logging with optional error and field parameters.
type Logger interface {
	// InfoWithContext logs an informational message with trace context.
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// WarnWithContext logs a warning message with trace context.
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// ErrorWithContext logs an error message with trace context.
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}
