package mqtt

import (
	"context"
	"fmt"
	"sync"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/mqtli-go/mqtli/internal/infrastructure/config"
)

// InboundMessage is one `(topic, qos, retain, bytes)` delivery from the
// broker, per spec.md §4.6's inbound stream contract.
type InboundMessage struct {
	Topic   string
	QoS     byte
	Retain  bool
	Payload []byte
}

// Handler receives every inbound message across every active subscription.
// Dispatch against configured topic patterns happens in internal/topicengine,
// not here: the session hands every message to a single Handler.
type Handler func(InboundMessage)

// Logger is the narrow sink Client uses for connection-lifecycle events.
type Logger interface {
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
}

// Client wraps paho.mqtt.golang with the session contract internal/engine
// and internal/topicengine depend on: connect, subscribe, publish,
// disconnect, and a single inbound message stream.
//
// Thread Safety: all methods are safe for concurrent use. Subscriptions are
// restored automatically on reconnect.
type Client struct {
	client  pahomqtt.Client
	options *pahomqtt.ClientOptions
	cfg     config.BrokerConfig

	handler   Handler
	handlerMu sync.RWMutex

	subscriptions map[string]byte
	subMu         sync.RWMutex

	connected bool
	connMu    sync.RWMutex

	logger Logger
}

// Connect dials the broker described by cfg and blocks until the initial
// CONNACK or defaultConnectTimeout elapses. handler receives every inbound
// message for the lifetime of the client.
func Connect(cfg config.BrokerConfig, handler Handler, logger Logger) (*Client, error) {
	opts, err := buildClientOptions(cfg)
	if err != nil {
		return nil, err
	}

	c := &Client{
		cfg:           cfg,
		options:       opts,
		handler:       handler,
		logger:        logger,
		subscriptions: make(map[string]byte),
	}

	opts.SetDefaultPublishHandler(func(_ pahomqtt.Client, msg pahomqtt.Message) {
		c.dispatch(msg)
	})
	opts.SetOnConnectHandler(func(_ pahomqtt.Client) {
		c.handleConnect()
	})
	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
		c.handleDisconnect(err)
	})

	c.client = pahomqtt.NewClient(opts)
	token := c.client.Connect()
	if !token.WaitTimeout(defaultConnectTimeout) {
		return nil, fmt.Errorf("%w: timeout after %v", ErrConnectionFailed, defaultConnectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	c.connMu.Lock()
	c.connected = true
	c.connMu.Unlock()

	return c, nil
}

func (c *Client) dispatch(msg pahomqtt.Message) {
	c.handlerMu.RLock()
	handler := c.handler
	c.handlerMu.RUnlock()
	if handler == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil && c.logger != nil {
			c.logger.Error("mqtt: inbound handler panic recovered", "topic", msg.Topic(), "panic", r)
		}
	}()

	handler(InboundMessage{Topic: msg.Topic(), QoS: msg.Qos(), Retain: msg.Retained(), Payload: msg.Payload()})
}

func (c *Client) handleConnect() {
	c.connMu.Lock()
	c.connected = true
	c.connMu.Unlock()
	c.restoreSubscriptions()
}

func (c *Client) handleDisconnect(err error) {
	c.connMu.Lock()
	c.connected = false
	c.connMu.Unlock()
	if c.logger != nil {
		c.logger.Warn("mqtt: connection lost, reconnect will be attempted", "error", err)
	}
}

func (c *Client) restoreSubscriptions() {
	c.subMu.RLock()
	defer c.subMu.RUnlock()
	for pattern, qos := range c.subscriptions {
		c.client.Subscribe(pattern, qos, nil)
	}
}

// Disconnect cleanly closes the session, per spec.md §5's "send MQTT
// DISCONNECT cleanly; close sinks" shutdown step.
func (c *Client) Disconnect() {
	if c.client == nil {
		return
	}
	c.client.Disconnect(defaultDisconnectQuiesce)
	c.connMu.Lock()
	c.connected = false
	c.connMu.Unlock()
}

// HealthCheck reports whether the session is currently connected.
func (c *Client) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("mqtt: health check: %w", ctx.Err())
	default:
	}
	if !c.IsConnected() {
		return ErrNotConnected
	}
	return nil
}

// IsConnected reports the last-known connection state.
func (c *Client) IsConnected() bool {
	c.connMu.RLock()
	defer c.connMu.RUnlock()
	return c.connected && c.client.IsConnected()
}
