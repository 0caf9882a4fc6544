package rabbit

import (
	"errors"
	"net"
	"strings"
	"syscall"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Common RabbitMQ error types that can be used by consumers of this package.
// These provide a standardized set of errors that abstract away the
// underlying AMQP-specific error details.
var (
	// ErrConnectionFailed is returned when connection to RabbitMQ cannot be established
	ErrConnectionFailed = errors.New("connection failed")

	// ErrConnectionClosed is returned when connection is closed
	ErrConnectionClosed = errors.New("connection closed")

	// ErrChannelClosed is returned when channel is closed
	ErrChannelClosed = errors.New("channel closed")

	// ErrAuthenticationFailed is returned when authentication fails
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrAccessDenied is returned when access is denied to a resource
	ErrAccessDenied = errors.New("access denied")

	// ErrExchangeNotFound is returned when exchange doesn't exist
	ErrExchangeNotFound = errors.New("exchange not found")

	// ErrResourceLocked is returned when resource is locked
	ErrResourceLocked = errors.New("resource locked")

	// ErrPreconditionFailed is returned when precondition check fails
	ErrPreconditionFailed = errors.New("precondition failed")

	// ErrMessageTooLarge is returned when message exceeds size limits
	ErrMessageTooLarge = errors.New("message too large")

	// ErrPublishFailed is returned when publish operation fails
	ErrPublishFailed = errors.New("publish failed")

	// ErrConsumeFailed is returned when consume operation fails
	ErrConsumeFailed = errors.New("consume failed")

	// ErrNetworkError is returned for network-related errors
	ErrNetworkError = errors.New("network error")

	// ErrTimeout is returned when operation times out
	ErrTimeout = errors.New("timeout")

	// ErrShutdown is returned when system is shutting down
	ErrShutdown = errors.New("shutdown")
)

// TranslateError converts AMQP/RabbitMQ-specific errors into standardized application errors.
// This function provides abstraction from the underlying AMQP implementation details,
// allowing application code to handle errors in a RabbitMQ-agnostic way.
//
// It maps common RabbitMQ errors to the standardized error types defined above.
// If an error doesn't match any known type, it's returned unchanged.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	// Check for AMQP specific errors
	var amqpErr *amqp.Error
	if errors.As(err, &amqpErr) {
		return translateAMQPError(amqpErr)
	}

	// Check for network errors
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return ErrTimeout
		}
		return ErrNetworkError
	}

	// Check for syscall errors
	var syscallErr syscall.Errno
	if errors.As(err, &syscallErr) {
		switch syscallErr {
		case syscall.ECONNREFUSED, syscall.EHOSTUNREACH, syscall.ENETUNREACH:
			return ErrConnectionFailed
		case syscall.ECONNRESET, syscall.EPIPE:
			return ErrConnectionClosed
		case syscall.ETIMEDOUT:
			return ErrTimeout
		}
		return ErrNetworkError
	}

	// Check error message for common patterns (fallback for string matching)
	return translateByErrorMessage(strings.ToLower(err.Error()), err)
}

// translateAMQPError maps AMQP error codes to custom errors
func translateAMQPError(amqpErr *amqp.Error) error {
	switch amqpErr.Code {
	case amqp.ConnectionForced:
		return ErrConnectionClosed
	case amqp.AccessRefused:
		return ErrAccessDenied
	case amqp.NotFound:
		return ErrExchangeNotFound
	case amqp.ResourceLocked:
		return ErrResourceLocked
	case amqp.PreconditionFailed:
		return ErrPreconditionFailed
	case amqp.ContentTooLarge:
		return ErrMessageTooLarge
	case amqp.NoRoute, amqp.NoConsumers:
		return ErrPublishFailed
	case amqp.ChannelError:
		return ErrChannelClosed
	default:
		reason := strings.ToLower(amqpErr.Reason)
		switch {
		case strings.Contains(reason, "access refused"):
			return ErrAccessDenied
		case strings.Contains(reason, "login refused"),
			strings.Contains(reason, "authentication failed"):
			return ErrAuthenticationFailed
		}
		return amqpErr
	}
}

// translateByErrorMessage translates errors based on message patterns
func translateByErrorMessage(errMsg string, originalErr error) error {
	switch {
	case strings.Contains(errMsg, "connection refused"):
		return ErrConnectionFailed
	case strings.Contains(errMsg, "connection reset"),
		strings.Contains(errMsg, "broken pipe"):
		return ErrConnectionClosed
	case strings.Contains(errMsg, "channel/connection is not open"):
		return ErrChannelClosed
	case strings.Contains(errMsg, "timeout"):
		return ErrTimeout
	default:
		return originalErr
	}
}
