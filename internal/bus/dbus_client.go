package bus

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/godbus/dbus/v5"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// DBusClient defines the interface for D-Bus operations.
// This abstraction allows us to mock D-Bus interactions in tests.
//
//go:generate mockgen -destination=mocks/dbus_client_mock.go -package=mocks github.com/genricoloni/mprisctl/internal/bus DBusClient
type DBusClient interface {
	// Close closes the D-Bus connection
	Close() error

	// Call invokes a method on a D-Bus object and returns the reply body
	// dest: The bus name (e.g., "org.mpris.MediaPlayer2.spotify")
	// path: The object path (e.g., "/org/mpris/MediaPlayer2")
	// method: The fully qualified method (e.g., "org.mpris.MediaPlayer2.Player.Next")
	Call(ctx context.Context, dest string, path dbus.ObjectPath, method string, args ...any) ([]any, error)

	// GetProperty retrieves a property from a D-Bus object
	// prop: The fully qualified property (e.g., "org.mpris.MediaPlayer2.Player.Metadata")
	GetProperty(ctx context.Context, dest string, path dbus.ObjectPath, prop string) (dbus.Variant, error)
}

// StdDBusClient is the real implementation using godbus.
// The session bus connection is opened on first use.
type StdDBusClient struct {
	logger *zap.Logger
	mu     sync.Mutex
	conn   *dbus.Conn
	dial   func() (*dbus.Conn, error)
}

// NewStdDBusClient creates a real D-Bus client for the session bus
func NewStdDBusClient(logger *zap.Logger) *StdDBusClient {
	return &StdDBusClient{
		logger: logger,
		dial: func() (*dbus.Conn, error) {
			return dbus.ConnectSessionBus()
		},
	}
}

// NewLifecycleDBusClient creates a session bus client that is closed when the app stops
func NewLifecycleDBusClient(lc fx.Lifecycle, logger *zap.Logger) *StdDBusClient {
	c := NewStdDBusClient(logger)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return c.Close()
		},
	})
	return c
}

func (c *StdDBusClient) connection() (*dbus.Conn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return c.conn, nil
	}

	conn, err := c.dial()
	if err != nil {
		return nil, fmt.Errorf("session bus connection failed: %w", err)
	}
	c.logger.Debug("Connected to session bus")
	c.conn = conn
	return conn, nil
}

// Close closes the D-Bus connection if one was opened
func (c *StdDBusClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// Call invokes a method on a D-Bus object
func (c *StdDBusClient) Call(ctx context.Context, dest string, path dbus.ObjectPath, method string, args ...any) ([]any, error) {
	conn, err := c.connection()
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Calling D-Bus method",
		zap.String("dest", dest),
		zap.String("path", string(path)),
		zap.String("method", method))

	call := conn.Object(dest, path).CallWithContext(ctx, method, 0, args...)
	if call.Err != nil {
		return nil, call.Err
	}
	return call.Body, nil
}

// GetProperty retrieves a property from a D-Bus object
func (c *StdDBusClient) GetProperty(ctx context.Context, dest string, path dbus.ObjectPath, prop string) (dbus.Variant, error) {
	idx := strings.LastIndex(prop, ".")
	if idx <= 0 || idx == len(prop)-1 {
		return dbus.Variant{}, fmt.Errorf("invalid property name: %q", prop)
	}

	conn, err := c.connection()
	if err != nil {
		return dbus.Variant{}, err
	}

	var value dbus.Variant
	err = conn.Object(dest, path).
		CallWithContext(ctx, "org.freedesktop.DBus.Properties.Get", 0, prop[:idx], prop[idx+1:]).
		Store(&value)
	return value, err
}
