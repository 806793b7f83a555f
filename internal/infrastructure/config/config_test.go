package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeConfigFile(t, `
broker:
  host: broker.example.com
  port: 8883
  client_id: test-client
  keep_alive: 30
log_level: debug
topics:
  - topic: mqtli/text
    payload:
      kind: text
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "broker.example.com", cfg.Broker.Host)
	assert.Equal(t, 8883, cfg.Broker.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	require.Len(t, cfg.Topics, 1)
	assert.Equal(t, "mqtli/text", cfg.Topics[0].TopicPattern)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml", nil)
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfigFile(t, "broker: [this is not valid yaml")
	_, err := Load(path, nil)
	assert.Error(t, err)
}

func TestLoadAppliesDefaultsWithNoFile(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Broker.Host)
	assert.Equal(t, 1883, cfg.Broker.Port)
	assert.True(t, strings.HasPrefix(cfg.Broker.ClientID, "mqtli-"))
	assert.Equal(t, 60, cfg.Broker.KeepAlive)
}

func TestLoadValidationFailurePropagates(t *testing.T) {
	path := writeConfigFile(t, `
broker:
  host: localhost
  client_id: c1
  keep_alive: 1
`)
	_, err := Load(path, nil)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{Broker: BrokerConfig{Host: "h", ClientID: "c", KeepAlive: 30}}
	}

	cases := map[string]struct {
		mutate  func(*Config)
		wantErr bool
	}{
		"valid":                   {func(*Config) {}, false},
		"keep alive too short":    {func(c *Config) { c.Broker.KeepAlive = 1 }, true},
		"username without password": {func(c *Config) { c.Broker.Username = "u" }, true},
		"password without username": {func(c *Config) { c.Broker.Password = "p" }, true},
		"username and password":  {func(c *Config) { c.Broker.Username, c.Broker.Password = "u", "p" }, false},
		"cert without key":       {func(c *Config) { c.Broker.ClientCert = "cert.pem" }, true},
		"cert and key":           {func(c *Config) { c.Broker.ClientCert, c.Broker.ClientKey = "cert.pem", "key.pem" }, false},
		"missing host":           {func(c *Config) { c.Broker.Host = "" }, true},
		"missing client id":      {func(c *Config) { c.Broker.ClientID = "" }, true},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := base()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadBindsEnvironmentOverFile(t *testing.T) {
	path := writeConfigFile(t, `
broker:
  host: from-file
  client_id: c1
  keep_alive: 30
`)
	t.Setenv("MQTLI_BROKER_HOST", "from-env")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Broker.Host)
}
