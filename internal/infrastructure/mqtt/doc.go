// Package mqtt wraps github.com/eclipse/paho.mqtt.golang with the session
// contract spec.md §4.6 describes: connect, subscribe, publish, disconnect,
// and a single inbound message stream. It supports MQTT v3.1.1 and v5 (the
// latter via paho's CONNECT-level protocol version switch — see DESIGN.md
// for the ecosystem gap this leaves), TCP or WebSocket transport, TLS with
// an optional CA file and client certificate, auto-reconnect with backoff,
// and last-will registration.
package mqtt
