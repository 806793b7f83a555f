package mqtt

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/mqtli-go/mqtli/internal/infrastructure/config"
)

// Connection constants.
const (
	defaultConnectTimeout    = 10 * time.Second
	defaultPublishTimeout    = 5 * time.Second
	defaultDisconnectQuiesce = 1000 // milliseconds

	maxQoS = 2

	protocolVersion311 = 4
	protocolVersion5   = 5
)

// buildClientOptions translates a BrokerConfig into paho's ClientOptions:
// broker URL (tcp/ssl/ws/wss per Protocol+UseTLS), protocol version,
// credentials, TLS, keep-alive, auto-reconnect, and last-will.
func buildClientOptions(cfg config.BrokerConfig) (*pahomqtt.ClientOptions, error) {
	opts := pahomqtt.NewClientOptions()

	scheme := brokerScheme(cfg.Protocol, cfg.UseTLS)
	opts.AddBroker(fmt.Sprintf("%s://%s:%d", scheme, cfg.Host, cfg.Port))
	opts.SetClientID(cfg.ClientID)

	if cfg.MQTTVersion == "v5" {
		// paho's SetProtocolVersion only accepts 3/4 (or >0x80), so set the
		// field directly to request MQTT 5.
		opts.ProtocolVersion = protocolVersion5
	} else {
		opts.SetProtocolVersion(protocolVersion311)
	}

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(time.Second)
	opts.SetMaxReconnectInterval(time.Minute)
	opts.SetConnectTimeout(defaultConnectTimeout)
	opts.SetKeepAlive(time.Duration(cfg.KeepAlive) * time.Second)

	if cfg.UseTLS {
		tlsConfig, err := buildTLSConfig(cfg)
		if err != nil {
			return nil, fmt.Errorf("mqtt: tls config: %w", err)
		}
		opts.SetTLSConfig(tlsConfig)
	}

	if cfg.LastWillTopic != "" {
		opts.SetWill(cfg.LastWillTopic, cfg.LastWillPayload, cfg.LastWillQoS, cfg.LastWillRetain)
	}

	return opts, nil
}

func brokerScheme(protocol string, useTLS bool) string {
	switch protocol {
	case "websocket":
		if useTLS {
			return "wss"
		}
		return "ws"
	default:
		if useTLS {
			return "ssl"
		}
		return "tcp"
	}
}

// buildTLSConfig assembles a tls.Config from an optional CA file and an
// optional client certificate + PKCS#8 key pair, per spec.md §4.6.
func buildTLSConfig(cfg config.BrokerConfig) (*tls.Config, error) {
	tlsConfig := &tls.Config{MinVersion: minTLSVersion(cfg.TLSVersion)}

	if cfg.CAFile != "" {
		caBytes, err := os.ReadFile(cfg.CAFile)
		if err != nil {
			return nil, fmt.Errorf("reading CA file: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caBytes) {
			return nil, fmt.Errorf("parsing CA file %s: no certificates found", cfg.CAFile)
		}
		tlsConfig.RootCAs = pool
	}

	if cfg.ClientCert != "" {
		cert, err := tls.LoadX509KeyPair(cfg.ClientCert, cfg.ClientKey)
		if err != nil {
			return nil, fmt.Errorf("loading client certificate/key: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return tlsConfig, nil
}

func minTLSVersion(version string) uint16 {
	switch version {
	case "v13":
		return tls.VersionTLS13
	default:
		return tls.VersionTLS12
	}
}
