package expect

import (
	"context"
	"time"
)

// DefaultTimeout is the wait window used when Expect is called with a
// non-positive timeout and the configuration does not set one.
const DefaultTimeout = 5 * time.Second

// Config holds the settings for an expectation matcher.
type Config struct {
	// TopicPrefix is the fixed namespace prefix combined with an inbound
	// topic to resolve the decoding schema, e.g. "company.project.v1" turns
	// topic "Pong" into "company.project.v1.Pong". It is a deployment
	// constant, never derived from the message. Empty means topics are
	// already fully qualified.
	TopicPrefix string `yaml:"topic_prefix" envconfig:"EXPECT_TOPIC_PREFIX"`

	// DefaultTimeout is the wait window applied when Expect receives a
	// non-positive timeout. Zero selects the package default of 5s.
	DefaultTimeout time.Duration `yaml:"default_timeout" envconfig:"EXPECT_DEFAULT_TIMEOUT"`
}

// Logger matches the context-aware subset of v1/logger.Logger that this
// package uses. The logger is optional; a nil logger disables logging.
type Logger interface {
	// DebugWithContext logs a debug message with trace context.
	DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// InfoWithContext logs an informational message with trace context.
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// WarnWithContext logs a warning message with trace context.
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}
