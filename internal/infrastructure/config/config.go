package config

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mqtli-go/mqtli/internal/topicengine"
)

// Config is the root configuration value consumed by internal/engine: a
// validated broker connection, logging setup, the topic table, the run
// mode, and an optional SQL sink.
type Config struct {
	Broker     BrokerConfig        `yaml:"broker"`
	LogLevel   string              `yaml:"log_level"`
	Topics     []topicengine.Entry `yaml:"topics"`
	Mode       string              `yaml:"mode"`
	SqlStorage *SqlStorageConfig   `yaml:"sql_storage,omitempty"`
	Sparkplug  SparkplugModeConfig `yaml:"sparkplug,omitempty"`
}

// BrokerConfig is the `MqttBrokerConnect` shape of spec.md §6: connection,
// credentials, TLS, and last-will.
type BrokerConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	Protocol    string `yaml:"protocol"` // tcp | websocket
	ClientID    string `yaml:"client_id"`
	MQTTVersion string `yaml:"mqtt_version"` // v311 | v5
	KeepAlive   int    `yaml:"keep_alive"`   // seconds, >= 5

	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`

	UseTLS      bool   `yaml:"use_tls"`
	CAFile      string `yaml:"ca_file,omitempty"`
	ClientCert  string `yaml:"client_cert,omitempty"`
	ClientKey   string `yaml:"client_key,omitempty"`
	TLSVersion  string `yaml:"tls_version,omitempty"` // all | v12 | v13

	LastWillTopic   string `yaml:"last_will_topic,omitempty"`
	LastWillPayload string `yaml:"last_will_payload,omitempty"`
	LastWillQoS     byte   `yaml:"last_will_qos,omitempty"`
	LastWillRetain  bool   `yaml:"last_will_retain,omitempty"`
}

// LoggingConfig is the `level/format/output` shape logging.New consumes.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// SparkplugModeConfig carries the flags `sp`/`sparkplug` mode adds on top
// of the shared broker flags (spec.md §6). IncludeGroup is the raw
// comma-separated `--include-group` value; empty means subscribe to the
// whole `spBv1.0/#` tree.
type SparkplugModeConfig struct {
	QoS                   byte   `yaml:"qos"`
	IncludeGroup          string `yaml:"include_group,omitempty"`
	IncludeTopicsFromFile string `yaml:"include_topics_from_file,omitempty"`
}

// Groups splits IncludeGroup on commas, trimming whitespace, dropping empty
// entries.
func (s SparkplugModeConfig) Groups() []string {
	if s.IncludeGroup == "" {
		return nil
	}
	var groups []string
	for _, g := range strings.Split(s.IncludeGroup, ",") {
		g = strings.TrimSpace(g)
		if g != "" {
			groups = append(groups, g)
		}
	}
	return groups
}

// SqlStorageConfig is the process-wide `SqlStorage{connection_string}`.
type SqlStorageConfig struct {
	Driver           string `yaml:"driver"` // sqlite | mysql | mariadb | postgresql
	ConnectionString string `yaml:"connection_string" mapstructure:"connection_string"`
}

const envPrefix = "MQTLI"

// Load merges defaults, an optional YAML config file, environment
// variables, and already-parsed CLI flags, in that increasing priority
// order, the way solatis-trapperkeeper's viper.LoadConfig does. flags may
// be nil when called outside a cobra command (e.g. tests).
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("broker.host", "localhost")
	v.SetDefault("broker.port", 1883)
	v.SetDefault("broker.protocol", "tcp")
	v.SetDefault("broker.mqtt_version", "v311")
	v.SetDefault("broker.keep_alive", 60)
	v.SetDefault("broker.tls_version", "all")
	v.SetDefault("log_level", "info")
	v.SetDefault("mode", "")
	v.SetDefault("sparkplug.qos", 1)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", configFile, err)
		}
	}

	if flags != nil {
		if err := bindBrokerFlags(v, flags); err != nil {
			return nil, fmt.Errorf("config: binding flags: %w", err)
		}
	}

	cfg := &Config{
		Broker: BrokerConfig{
			Host:            v.GetString("broker.host"),
			Port:            v.GetInt("broker.port"),
			Protocol:        v.GetString("broker.protocol"),
			ClientID:        v.GetString("broker.client_id"),
			MQTTVersion:     v.GetString("broker.mqtt_version"),
			KeepAlive:       v.GetInt("broker.keep_alive"),
			Username:        v.GetString("broker.username"),
			Password:        v.GetString("broker.password"),
			UseTLS:          v.GetBool("broker.use_tls"),
			CAFile:          v.GetString("broker.ca_file"),
			ClientCert:      v.GetString("broker.client_cert"),
			ClientKey:       v.GetString("broker.client_key"),
			TLSVersion:      v.GetString("broker.tls_version"),
			LastWillTopic:   v.GetString("broker.last_will_topic"),
			LastWillPayload: v.GetString("broker.last_will_payload"),
			LastWillQoS:     byte(v.GetInt("broker.last_will_qos")),
			LastWillRetain:  v.GetBool("broker.last_will_retain"),
		},
		LogLevel: v.GetString("log_level"),
		Mode:     v.GetString("mode"),
		Sparkplug: SparkplugModeConfig{
			QoS:                   byte(v.GetInt("sparkplug.qos")),
			IncludeGroup:          v.GetString("sparkplug.include_group"),
			IncludeTopicsFromFile: v.GetString("sparkplug.include_topics_from_file"),
		},
	}

	if cfg.Broker.ClientID == "" {
		cfg.Broker.ClientID = "mqtli-" + uuid.New().String()
	}

	// topics[]/sql_storage are YAML-only, per spec.md §6; re-unmarshal the
	// file-backed keys viper never binds to a flag or env var.
	if configFile != "" {
		if err := v.UnmarshalKey("topics", &cfg.Topics); err != nil {
			return nil, fmt.Errorf("config: decoding topics: %w", err)
		}
		if v.IsSet("sql_storage") {
			var s SqlStorageConfig
			if err := v.UnmarshalKey("sql_storage", &s); err != nil {
				return nil, fmt.Errorf("config: decoding sql_storage: %w", err)
			}
			cfg.SqlStorage = &s
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// bindBrokerFlags binds the broker/logging persistent flags cmd/mqtli
// registers, so CLI values outrank environment and file values.
func bindBrokerFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	bindings := map[string]string{
		"host":             "broker.host",
		"port":             "broker.port",
		"protocol":         "broker.protocol",
		"client-id":        "broker.client_id",
		"mqtt-version":     "broker.mqtt_version",
		"keep-alive":       "broker.keep_alive",
		"username":         "broker.username",
		"password":         "broker.password",
		"use-tls":          "broker.use_tls",
		"ca-file":          "broker.ca_file",
		"client-cert":      "broker.client_cert",
		"client-key":       "broker.client_key",
		"tls-version":      "broker.tls_version",
		"last-will-topic":   "broker.last_will_topic",
		"last-will-payload": "broker.last_will_payload",
		"last-will-qos":     "broker.last_will_qos",
		"last-will-retain":  "broker.last_will_retain",
		"log-level":         "log_level",
	}
	// qos/include-group/include-topics-from-file are deliberately not
	// bound here: they're local flags the publish/subscribe/sparkplug
	// subcommands each define under the same names (e.g. -q means three
	// different things), so cmd.Flags() resolves "qos" to whichever one
	// is in scope. Each subcommand applies its own flag values onto the
	// loaded Config directly instead of routing them through viper.
	for flagName, key := range bindings {
		f := flags.Lookup(flagName)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}
