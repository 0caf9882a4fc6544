package rabbit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"

	"github.com/wireprobe/wireprobe/v1/transport"
)

// TestRabbitPublishReceive verifies the full path through a real broker:
// a message published with a topic routing key comes back through Receive
// with its topic, payload, and headers intact.
//
// Test Flow:
// 1. Start a RabbitMQ container using testcontainers.
// 2. Initialize the channel via Uber Fx with a topic exchange and a
//    server-named receive queue bound with "#".
// 3. Publish a payload under topic "Ping" with a header.
// 4. Receive the delivery and assert topic, payload, and header round-trip.
// 5. Gracefully stop the application and terminate the container.
func TestRabbitPublishReceive(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()

	host, port, containerInstance := initializeRabbitMQ(ctx)

	require.Eventually(t, func() bool {
		conn, err := net.DialTimeout("tcp", net.JoinHostPort(host, strconv.Itoa(port)), 2*time.Second)
		if err != nil {
			return false
		}
		_ = conn.Close()
		return true
	}, 60*time.Second, 500*time.Millisecond, "RabbitMQ port not ready")

	cfg := Config{
		Connection: Connection{
			Host:         host,
			Port:         uint(port),
			User:         "guest",
			Password:     "guest",
			IsSSLEnabled: false,
		},
		Channel: Channel{
			ExchangeName: "test-exchange",
			ContentType:  "application/octet-stream",
		},
	}

	var ch *RabbitChannel

	app := fx.New(
		FXModule,
		fx.Provide(
			func() Config { return cfg },
		),
		fx.Populate(&ch),
	)

	startCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(startCtx))

	require.Eventually(t, func() bool {
		ch.mu.RLock()
		defer ch.mu.RUnlock()
		return ch.conn != nil && !ch.conn.IsClosed()
	}, 10*time.Second, 1*time.Second, "Connection should be established")

	payload := []byte{0x08, 0x05}
	headers := map[string]interface{}{"trace-id": "abc123"}
	require.NoError(t, ch.Publish(ctx, "Ping", payload, headers))

	d, err := ch.Receive(ctx, 10*time.Second)
	require.NoError(t, err)
	require.Equal(t, "Ping", d.Topic)
	require.Equal(t, payload, d.Payload)
	require.Equal(t, "abc123", d.Headers["trace-id"])

	// An idle window expires with the transport sentinel
	_, err = ch.Receive(ctx, 200*time.Millisecond)
	require.ErrorIs(t, err, transport.ErrReceiveTimeout)

	require.NoError(t, app.Stop(ctx))

	if err := containerInstance.Terminate(ctx); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
	time.Sleep(2 * time.Second)
}

// TestRabbitTopicFanout verifies that a queue bound with "#" observes every
// topic published on the exchange, in publish order.
func TestRabbitTopicFanout(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()

	host, port, containerInstance := initializeRabbitMQ(ctx)

	require.Eventually(t, func() bool {
		conn, err := net.DialTimeout("tcp", net.JoinHostPort(host, strconv.Itoa(port)), 2*time.Second)
		if err != nil {
			return false
		}
		_ = conn.Close()
		return true
	}, 60*time.Second, 500*time.Millisecond, "RabbitMQ port not ready")

	cfg := Config{
		Connection: Connection{
			Host:         host,
			Port:         uint(port),
			User:         "guest",
			Password:     "guest",
			IsSSLEnabled: false,
		},
		Channel: Channel{
			ExchangeName: "fanout-exchange",
		},
	}

	ch, err := NewChannel(cfg)
	require.NoError(t, err)
	defer func() { _ = ch.Close() }()

	topics := []string{"Ping", "Pong", "Ping"}
	for i, topic := range topics {
		require.NoError(t, ch.Publish(ctx, topic, []byte{byte(i)}))
	}

	for i, topic := range topics {
		d, err := ch.Receive(ctx, 10*time.Second)
		require.NoError(t, err)
		require.Equal(t, topic, d.Topic)
		require.Equal(t, []byte{byte(i)}, d.Payload)
	}

	if err := containerInstance.Terminate(ctx); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
	time.Sleep(2 * time.Second)
}

func initializeRabbitMQ(ctx context.Context) (string, int, testcontainers.Container) {
	hostPort, err := getFreePort()
	if err != nil {
		log.Fatalf("Failed to find free port: %v", err)
	}

	containerInstance, err := createRabbitMQContainer(ctx, hostPort)
	if err != nil {
		log.Fatalf("Failed to create container: %v", err)
	}

	port, err := containerInstance.MappedPort(ctx, "5672")
	if err != nil {
		log.Fatalf("Failed to get mapped port: %v", err)
	}
	host, err := containerInstance.Host(ctx)
	if err != nil {
		log.Fatalf("Failed to get host: %v", err)
	}
	return host, port.Int(), containerInstance
}

// createRabbitMQContainer sets up and starts a RabbitMQ Docker container using
// testcontainers-go. It binds the AMQP port, injects environment variables,
// and waits for RabbitMQ to be healthy.
func createRabbitMQContainer(ctx context.Context, hostPort string) (testcontainers.Container, error) {

	var containerInstance testcontainers.Container
	var lastErr error

	for attempt := 0; attempt < 3; attempt++ {
		portBindings := nat.PortMap{
			"5672/tcp": []nat.PortBinding{{HostPort: hostPort}},
		}

		req := testcontainers.ContainerRequest{
			Image: "rabbitmq:4-management",
			ExposedPorts: []string{
				"5672/tcp",
			},
			HostConfigModifier: func(cfg *container.HostConfig) {
				cfg.PortBindings = portBindings
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5672/tcp").WithStartupTimeout(20*time.Second),
				wait.ForExec([]string{"rabbitmq-diagnostics", "status"}).WithExitCodeMatcher(func(exitCode int) bool {
					return exitCode == 0
				}).WithStartupTimeout(10*time.Second),
			),
		}

		containerInstance, lastErr = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
		if lastErr == nil {
			return containerInstance, nil
		}

		// Retry only for Docker socket-related issues
		if strings.Contains(lastErr.Error(), "docker.sock") || errors.Is(lastErr, io.EOF) {
			log.Printf("Attempt %d: Docker socket error, retrying in %d seconds: %v", attempt+1, attempt+1, lastErr)
			time.Sleep(time.Duration(attempt+1) * time.Second)
			continue
		}

		break // Other errors should not be retried
	}

	return nil, fmt.Errorf("failed to start RabbitMQ container after %d attempts: %w", 3, lastErr)
}

func getFreePort() (string, error) {
	l, err := net.Listen("tcp", ":0") // :0 asks OS for any free port
	if err != nil {
		return "", err
	}
	defer func(l net.Listener) {
		err := l.Close()
		if err != nil {
			panic(err)
		}
	}(l)
	addr := l.Addr().(*net.TCPAddr)
	return strconv.Itoa(addr.Port), nil
}
