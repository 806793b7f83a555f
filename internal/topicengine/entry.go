package topicengine

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mqtli-go/mqtli/internal/filter"
	"github.com/mqtli-go/mqtli/internal/payload"
	"github.com/mqtli-go/mqtli/internal/trigger"
)

// Entry is the YAML shape of one `topics[]` element (spec.md §3's
// TopicEntry): a pattern, its declared payload format, and optional
// subscription and publish sides.
type Entry struct {
	TopicPattern string              `yaml:"topic" mapstructure:"topic"`
	Payload      FormatSpec          `yaml:"payload"`
	Subscription *SubscriptionConfig `yaml:"subscription,omitempty"`
	Publish      *PublishConfig      `yaml:"publish,omitempty"`
}

// SubscriptionConfig is `subscription = { enabled, qos, outputs[], filters[] }`.
type SubscriptionConfig struct {
	Enabled bool             `yaml:"enabled"`
	QoS     byte             `yaml:"qos"`
	Outputs []OutputConfig   `yaml:"outputs"`
	Filters []filter.Config `yaml:"filters"`
}

// OutputConfig is one `Output{format, target}` entry: the format the
// resulting payload is converted to before this specific sink writes it,
// plus the sink selection and its own parameters.
type OutputConfig struct {
	Format FormatSpec `yaml:"format"`
	Type   string     `yaml:"type"`

	// file
	Path      string `yaml:"path,omitempty"`
	Overwrite bool   `yaml:"overwrite,omitempty"`
	Prepend   string `yaml:"prepend,omitempty"`
	Append    string `yaml:"append,omitempty"`

	// topic
	Topic  string `yaml:"topic,omitempty"`
	QoS    byte   `yaml:"qos,omitempty"`
	Retain bool   `yaml:"retain,omitempty"`

	// sql
	InsertStatement string `yaml:"insert_statement,omitempty" mapstructure:"insert_statement"`
}

// PublishConfig is `publish = { enabled, qos, retain, input, triggers[], filters[] }`.
type PublishConfig struct {
	Enabled  bool                `yaml:"enabled"`
	QoS      byte                `yaml:"qos"`
	Retain   bool                `yaml:"retain"`
	Input    PublishInputConfig  `yaml:"input"`
	Triggers []TriggerConfig     `yaml:"triggers"`
	Filters  []filter.Config     `yaml:"filters"`
}

// TriggerConfig is one named `Periodic{interval_ms, initial_delay_ms, count}`.
type TriggerConfig struct {
	Name               string `yaml:"name"`
	IntervalMillis     int    `yaml:"interval_ms" mapstructure:"interval_ms"`
	InitialDelayMillis int    `yaml:"initial_delay_ms" mapstructure:"initial_delay_ms"`
	Count              int    `yaml:"count"`
}

func (t TriggerConfig) Build() trigger.Periodic {
	return trigger.Periodic{
		InitialDelay: time.Duration(t.InitialDelayMillis) * time.Millisecond,
		Interval:     time.Duration(t.IntervalMillis) * time.Millisecond,
		Count:        t.Count,
	}
}

// PublishInputConfig is the `PublishInput` variant from spec.md §3:
// `{Text|Hex|Base64|Json|Yaml{content?,path?}, Raw{path}, Null}`.
type PublishInputConfig struct {
	Type    string `yaml:"type"`
	Content string `yaml:"content,omitempty"`
	Path    string `yaml:"path,omitempty"`
}

// ErrNullInput signals a Null PublishInput: no message should be published
// for this trigger tick.
var ErrNullInput = errors.New("topicengine: publish input is null")

// Assemble builds the Payload this PublishInput describes, reading Path
// when set (file content wins over inline Content, per spec.md §3's
// "path wins if both provided").
func (p PublishInputConfig) Assemble() (payload.Payload, error) {
	switch p.Type {
	case "null", "":
		return payload.Payload{}, ErrNullInput
	case "raw":
		b, err := os.ReadFile(p.Path)
		if err != nil {
			return payload.Payload{}, fmt.Errorf("topicengine: read raw publish input %s: %w", p.Path, err)
		}
		return payload.NewRaw(b), nil
	case "text":
		content, err := p.resolveContent()
		if err != nil {
			return payload.Payload{}, err
		}
		return payload.NewText(content), nil
	case "hex":
		content, err := p.resolveContent()
		if err != nil {
			return payload.Payload{}, err
		}
		return payload.ParseHex(content)
	case "base64":
		content, err := p.resolveContent()
		if err != nil {
			return payload.Payload{}, err
		}
		return payload.ParseBase64(content)
	case "json":
		content, err := p.resolveContent()
		if err != nil {
			return payload.Payload{}, err
		}
		return payload.Convert(payload.NewText(content), payload.KindJSON, payload.Options{})
	case "yaml":
		content, err := p.resolveContent()
		if err != nil {
			return payload.Payload{}, err
		}
		return payload.Convert(payload.NewText(content), payload.KindYAML, payload.Options{})
	default:
		return payload.Payload{}, fmt.Errorf("topicengine: unknown publish input type %q", p.Type)
	}
}

func (p PublishInputConfig) resolveContent() (string, error) {
	if p.Path != "" {
		b, err := os.ReadFile(p.Path)
		if err != nil {
			return "", fmt.Errorf("topicengine: read publish input %s: %w", p.Path, err)
		}
		return string(b), nil
	}
	return p.Content, nil
}
