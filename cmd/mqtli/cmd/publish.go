package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mqtli-go/mqtli/internal/infrastructure/config"
	"github.com/mqtli-go/mqtli/internal/topicengine"
)

var (
	publishTopic   string
	publishQoS     int
	publishRetain  bool
	publishMessage string
)

var publishCmd = &cobra.Command{
	Use:     "publish",
	Aliases: []string{"pub"},
	Short:   "Publish a single message and exit",
	RunE:    runPublish,
}

func init() {
	rootCmd.AddCommand(publishCmd)
	flags := publishCmd.Flags()
	flags.StringVarP(&publishTopic, "topic", "t", "", "topic to publish to (required)")
	flags.IntVarP(&publishQoS, "qos", "q", 0, "quality of service: 0, 1, or 2")
	flags.BoolVarP(&publishRetain, "retain", "r", false, "publish with the retain flag")
	flags.StringVarP(&publishMessage, "message", "m", "", "message to publish")
	publishCmd.MarkFlagRequired("topic")
}

func runPublish(cmd *cobra.Command, _ []string) error {
	entry := topicengine.Entry{
		TopicPattern: publishTopic,
		Payload:      topicengine.FormatSpec{Kind: "text"},
		Publish: &topicengine.PublishConfig{
			Enabled: true,
			QoS:     byte(publishQoS),
			Retain:  publishRetain,
			Input:   topicengine.PublishInputConfig{Type: "text", Content: publishMessage},
			Triggers: []topicengine.TriggerConfig{
				{Name: "once", Count: 1},
			},
		},
	}

	return loadAndRun(cmd, func(cfg *config.Config) {
		cfg.Mode = "publish"
		cfg.Topics = []topicengine.Entry{entry}
	})
}
