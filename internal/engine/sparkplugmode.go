package engine

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/mqtli-go/mqtli/internal/infrastructure/config"
	"github.com/mqtli-go/mqtli/internal/infrastructure/logging"
	"github.com/mqtli-go/mqtli/internal/infrastructure/mqtt"
	"github.com/mqtli-go/mqtli/internal/sparkplug"
)

// sparkplugNamespace is the fixed topic root for Sparkplug Network Mode
// (spec.md §4.8), subscribed in full unless --include-group or
// --include-topics-from-file narrow it.
const sparkplugNamespace = "spBv1.0/#"

// runSparkplugMode implements the `sp`/`sparkplug` subcommand: it
// subscribes the Sparkplug-B topic tree (or a restricted subset), decodes
// every inbound message against the embedded Sparkplug-B schema, and
// prints the decoded metrics/state to stdout as Network tracks alias and
// template state per edge node.
func runSparkplugMode(
	ctx context.Context,
	cfg *config.Config,
	client *mqtt.Client,
	log *logging.Logger,
	fwd *forwarder,
	tracked func(func(context.Context, mqtt.InboundMessage)) mqtt.Handler,
	wg *sync.WaitGroup,
) error {
	network := sparkplug.NewNetwork(log)

	fwd.Set(tracked(func(_ context.Context, msg mqtt.InboundMessage) {
		handleSparkplugMessage(network, msg, log)
	}))

	patterns, err := sparkplugSubscriptions(cfg.Sparkplug)
	if err != nil {
		return err
	}
	for _, pattern := range patterns {
		if err := client.Subscribe(pattern, cfg.Sparkplug.QoS); err != nil {
			return err
		}
		log.Info("subscribed", "pattern", pattern, "qos", cfg.Sparkplug.QoS)
	}

	<-ctx.Done()
	drain(wg, log)
	return nil
}

// sparkplugSubscriptions resolves which topic patterns to subscribe to:
// explicit topics from --include-topics-from-file take precedence, then
// one `spBv1.0/<group>/#` pattern per --include-group entry, falling back
// to the full namespace when neither is set.
func sparkplugSubscriptions(cfg config.SparkplugModeConfig) ([]string, error) {
	if cfg.IncludeTopicsFromFile != "" {
		return readTopicsFile(cfg.IncludeTopicsFromFile)
	}
	if groups := cfg.Groups(); len(groups) > 0 {
		patterns := make([]string, 0, len(groups))
		for _, g := range groups {
			patterns = append(patterns, fmt.Sprintf("spBv1.0/%s/#", g))
		}
		return patterns, nil
	}
	return []string{sparkplugNamespace}, nil
}

func readTopicsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("include-topics-from-file: %w", err)
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("include-topics-from-file: %w", err)
	}
	return patterns, nil
}

func handleSparkplugMessage(network *sparkplug.Network, msg mqtt.InboundMessage, log *logging.Logger) {
	topic, err := sparkplug.ParseTopic(msg.Topic)
	if err != nil {
		log.Warn("sparkplug: skipping message on unparseable topic", "topic", msg.Topic, "error", err)
		return
	}

	if topic.IsHostApplication {
		var tree map[string]any
		if err := json.Unmarshal(msg.Payload, &tree); err != nil {
			log.Warn("sparkplug: decoding STATE payload", "topic", msg.Topic, "error", err)
			return
		}
		fmt.Println(network.HandleState(topic, tree))
		return
	}

	decoded, err := (sparkplug.Codec{}).Decode(msg.Payload)
	if err != nil {
		log.Warn("sparkplug: decoding payload", "topic", msg.Topic, "error", err)
		return
	}
	wireMsg, ok := decoded.(sparkplug.Message)
	if !ok {
		log.Warn("sparkplug: decoded payload is not a sparkplug.Message", "topic", msg.Topic)
		return
	}
	fmt.Println(network.Handle(topic, wireMsg))
}
