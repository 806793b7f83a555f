package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mqtli-go/mqtli/internal/engine"
	"github.com/mqtli-go/mqtli/internal/infrastructure/config"
	"github.com/mqtli-go/mqtli/internal/infrastructure/logging"
)

// version is set at build time via ldflags, the way the teacher's
// cmd/graylogic/main.go does: -ldflags "-X .../cmd.version=1.0.0".
var version = "dev"

var configFile string

var rootCmd = &cobra.Command{
	Use:   "mqtli",
	Short: "A multi-topic MQTT client",
	Long:  `mqtli connects to an MQTT broker and subscribes/publishes across a configured table of topics, converting payloads between text, JSON, YAML, protobuf, and Sparkplug-B.`,
	RunE:  runMultiTopic,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configFile, "config-file", "c", "", "path to a YAML config file")

	flags.String("host", "", "broker host")
	flags.Int("port", 0, "broker port")
	flags.String("protocol", "", "broker transport: tcp or websocket")
	flags.String("client-id", "", "MQTT client id (defaults to a generated mqtli-<uuid>)")
	flags.String("mqtt-version", "", "MQTT protocol version: v311 or v5")
	flags.Int("keep-alive", 0, "keep-alive interval in seconds (>= 5)")

	flags.String("username", "", "broker username")
	flags.String("password", "", "broker password")

	flags.Bool("use-tls", false, "connect over TLS")
	flags.String("ca-file", "", "PEM-encoded CA certificate file")
	flags.String("client-cert", "", "PEM-encoded client certificate file")
	flags.String("client-key", "", "PKCS#8 client private key file")
	flags.String("tls-version", "", "minimum TLS version: all, v12, or v13")

	flags.String("last-will-topic", "", "last-will topic")
	flags.String("last-will-payload", "", "last-will payload")
	flags.Int("last-will-qos", 0, "last-will QoS")
	flags.Bool("last-will-retain", false, "last-will retain flag")

	flags.String("log-level", "", "log level: debug, info, warn, error")
}

// Execute runs the command tree, binding ctx so RunE handlers can hand it to
// internal/engine.Run for shutdown signalling.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// loadAndRun loads the precedence-merged Config for cmd, applies any
// subcommand-specific overrides, builds the logger, and hands off to
// internal/engine.Run.
func loadAndRun(cmd *cobra.Command, override func(*config.Config)) error {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}
	if override != nil {
		override(cfg)
	}

	log := logging.New(config.LoggingConfig{Level: cfg.LogLevel, Format: "json", Output: "stdout"}, version)
	log.Info("starting mqtli", "version", version, "mode", modeLabel(cfg.Mode))

	return engine.Run(cmd.Context(), cfg, log)
}

func modeLabel(mode string) string {
	if mode == "" {
		return "multi-topic"
	}
	return mode
}

func runMultiTopic(cmd *cobra.Command, _ []string) error {
	return loadAndRun(cmd, nil)
}
