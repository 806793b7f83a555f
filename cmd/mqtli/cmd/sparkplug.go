package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mqtli-go/mqtli/internal/infrastructure/config"
)

var (
	sparkplugQoS                   int
	sparkplugIncludeGroup          string
	sparkplugIncludeTopicsFromFile string
)

var sparkplugCmd = &cobra.Command{
	Use:     "sp",
	Aliases: []string{"sparkplug"},
	Short:   "Run a Sparkplug Network Mode console that decodes the Sparkplug-B topic tree",
	RunE:    runSparkplug,
}

func init() {
	rootCmd.AddCommand(sparkplugCmd)
	flags := sparkplugCmd.Flags()
	flags.IntVarP(&sparkplugQoS, "qos", "q", 1, "quality of service for the Sparkplug subscription")
	flags.StringVar(&sparkplugIncludeGroup, "include-group", "", "comma-separated group ids to restrict the subscription to (default: the whole spBv1.0/# tree)")
	flags.StringVar(&sparkplugIncludeTopicsFromFile, "include-topics-from-file", "", "file of explicit topic filters, one per line, takes precedence over --include-group")
}

func runSparkplug(cmd *cobra.Command, _ []string) error {
	return loadAndRun(cmd, func(cfg *config.Config) {
		cfg.Mode = "sp"
		cfg.Sparkplug.QoS = byte(sparkplugQoS)
		if sparkplugIncludeGroup != "" {
			cfg.Sparkplug.IncludeGroup = sparkplugIncludeGroup
		}
		if sparkplugIncludeTopicsFromFile != "" {
			cfg.Sparkplug.IncludeTopicsFromFile = sparkplugIncludeTopicsFromFile
		}
	})
}
