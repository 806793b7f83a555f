package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mqtli-go/mqtli/internal/infrastructure/config"
	"github.com/mqtli-go/mqtli/internal/topicengine"
)

var (
	subscribeTopic     string
	subscribeQoS       int
	subscribeTopicType string
)

var subscribeCmd = &cobra.Command{
	Use:     "subscribe",
	Aliases: []string{"sub"},
	Short:   "Subscribe to a topic and print decoded messages to the console",
	RunE:    runSubscribe,
}

func init() {
	rootCmd.AddCommand(subscribeCmd)
	flags := subscribeCmd.Flags()
	flags.StringVarP(&subscribeTopic, "topic", "t", "", "topic filter to subscribe to (required)")
	flags.IntVarP(&subscribeQoS, "qos", "q", 0, "quality of service: 0, 1, or 2")
	flags.StringVarP(&subscribeTopicType, "topic-type", "y", "text", "payload format to decode as: text, json, yaml, hex, base64, protobuf")
	subscribeCmd.MarkFlagRequired("topic")
}

func runSubscribe(cmd *cobra.Command, _ []string) error {
	entry := topicengine.Entry{
		TopicPattern: subscribeTopic,
		Payload:      topicengine.FormatSpec{Kind: subscribeTopicType},
		Subscription: &topicengine.SubscriptionConfig{
			Enabled: true,
			QoS:     byte(subscribeQoS),
			Outputs: []topicengine.OutputConfig{
				{Format: topicengine.FormatSpec{Kind: subscribeTopicType}, Type: "console"},
			},
		},
	}

	return loadAndRun(cmd, func(cfg *config.Config) {
		cfg.Mode = "subscribe"
		cfg.Topics = []topicengine.Entry{entry}
	})
}
