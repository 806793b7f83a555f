package topicengine

import (
	"fmt"

	"github.com/mqtli-go/mqtli/internal/filter"
	"github.com/mqtli-go/mqtli/internal/output"
	"github.com/mqtli-go/mqtli/internal/sqlsink"
)

// Deps are the process-wide collaborators Bind needs to build live Output
// targets: the MQTT publisher (for Topic outputs) and the shared SQL sink
// (for Sql outputs), both optional if no configured output needs them.
type Deps struct {
	Publisher output.Publisher
	SqlSink   *sqlsink.Sink
}

// Build resolves this OutputConfig's Format and constructs the
// corresponding output.Target, per spec.md §3's OutputTarget variants.
func (oc *OutputConfig) Build(deps Deps) (output.Target, error) {
	if err := oc.Format.Load(); err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}

	switch oc.Type {
	case "console", "":
		return output.NewConsole(), nil
	case "file":
		appendStr := oc.Append
		if appendStr == "" {
			appendStr = "\n"
		}
		f := output.NewFile(oc.Path, oc.Overwrite, oc.Prepend)
		f.Append = appendStr
		return f, nil
	case "topic":
		if deps.Publisher == nil {
			return nil, fmt.Errorf("output: topic output configured but no MQTT publisher available")
		}
		return output.Topic{Publisher: deps.Publisher, Topic: oc.Topic, QoS: oc.QoS, Retain: oc.Retain}, nil
	case "sql":
		if deps.SqlSink == nil {
			return nil, fmt.Errorf("output: sql output configured but no SqlStorage available")
		}
		return output.Sql{Sink: deps.SqlSink, InsertStatement: oc.InsertStatement}, nil
	case "null":
		return output.Null{}, nil
	default:
		return nil, fmt.Errorf("output: unknown type %q", oc.Type)
	}
}

// boundOutput pairs a live output.Target with the FormatSpec its emissions
// must be converted to before writing (spec.md §4.5 step 3).
type boundOutput struct {
	target output.Target
	format FormatSpec
}

type boundSubscription struct {
	qos     byte
	outputs []boundOutput
	filters filter.Chain
}

type boundPublish struct {
	qos      byte
	retain   bool
	input    PublishInputConfig
	filters  filter.Chain
	triggers map[string]TriggerConfig
}

// BoundEntry is one compiled TopicEntry: wildcard pattern, declared wire
// format, and the live subscription/publish pipelines that reference it.
type BoundEntry struct {
	Pattern      string
	Format       FormatSpec
	Subscription *boundSubscription
	Publish      *boundPublish
}

// Bind compiles YAML TopicEntry config into live pipelines: it resolves
// every Protobuf descriptor (fatal on failure per spec.md §4.2/§7) and
// constructs every output.Target and filter.Chain up front, so a
// configuration mistake is caught at startup rather than mid-stream.
func Bind(entries []Entry, deps Deps) ([]*BoundEntry, error) {
	bound := make([]*BoundEntry, 0, len(entries))

	for _, e := range entries {
		if err := e.Payload.Load(); err != nil {
			return nil, fmt.Errorf("topic %q: %w", e.TopicPattern, err)
		}

		be := &BoundEntry{Pattern: e.TopicPattern, Format: e.Payload}

		if e.Subscription != nil && e.Subscription.Enabled {
			chain, err := filter.BuildChain(e.Subscription.Filters)
			if err != nil {
				return nil, fmt.Errorf("topic %q: subscription filters: %w", e.TopicPattern, err)
			}

			outs := make([]boundOutput, 0, len(e.Subscription.Outputs))
			for i, oc := range e.Subscription.Outputs {
				target, err := oc.Build(deps)
				if err != nil {
					return nil, fmt.Errorf("topic %q: output[%d]: %w", e.TopicPattern, i, err)
				}
				outs = append(outs, boundOutput{target: target, format: oc.Format})
			}

			be.Subscription = &boundSubscription{qos: e.Subscription.QoS, outputs: outs, filters: chain}
		}

		if e.Publish != nil && e.Publish.Enabled {
			chain, err := filter.BuildChain(e.Publish.Filters)
			if err != nil {
				return nil, fmt.Errorf("topic %q: publish filters: %w", e.TopicPattern, err)
			}

			triggers := make(map[string]TriggerConfig, len(e.Publish.Triggers))
			for _, tc := range e.Publish.Triggers {
				triggers[tc.Name] = tc
			}

			be.Publish = &boundPublish{
				qos: e.Publish.QoS, retain: e.Publish.Retain,
				input: e.Publish.Input, filters: chain, triggers: triggers,
			}
		}

		bound = append(bound, be)
	}

	return bound, nil
}
