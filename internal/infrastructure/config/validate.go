package config

import (
	"fmt"
	"strings"
)

// Validate checks the configuration against the ConfigError rules of
// spec.md §7, mirroring original_source's MqttBrokerConnect validation
// (crates/mqtlib/src/config/mqtli_config.rs): keep-alive too short,
// username/password must be paired, client-cert/client-key must be
// paired, required fields must be non-empty.
func (c *Config) Validate() error {
	var errs []string

	errs = append(errs, validateKeepAlive(c.Broker.KeepAlive)...)
	errs = append(errs, validateCredentialPairing(c.Broker.Username, c.Broker.Password)...)
	errs = append(errs, validateTLSCertPairing(c.Broker.ClientCert, c.Broker.ClientKey)...)
	errs = append(errs, validateRequiredFields(c.Broker.Host, c.Broker.ClientID)...)

	if len(errs) > 0 {
		return fmt.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

const minKeepAliveSeconds = 5

func validateKeepAlive(keepAlive int) []string {
	if keepAlive < minKeepAliveSeconds {
		return []string{fmt.Sprintf("broker.keep_alive must be at least %ds", minKeepAliveSeconds)}
	}
	return nil
}

func validateCredentialPairing(username, password string) []string {
	if (username == "") != (password == "") {
		return []string{"broker.username and broker.password must both be set or both be empty"}
	}
	return nil
}

func validateTLSCertPairing(cert, key string) []string {
	if (cert == "") != (key == "") {
		return []string{"broker.client_cert and broker.client_key must both be set or both be empty"}
	}
	return nil
}

func validateRequiredFields(host, clientID string) []string {
	var errs []string
	if host == "" {
		errs = append(errs, "broker.host is required")
	}
	if clientID == "" {
		errs = append(errs, "broker.client_id is required")
	}
	return errs
}
