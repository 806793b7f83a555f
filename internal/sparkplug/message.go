package sparkplug

import (
	"encoding/json"
	"fmt"

	"github.com/jhump/protoreflect/dynamic"

	"github.com/mqtli-go/mqtli/internal/payload"
	"github.com/mqtli-go/mqtli/internal/protobuf"
)

// Message is the decoded form of a Sparkplug-B Payload, implementing
// payload.SparkplugMessage.
type Message struct {
	dyn *dynamic.Message
}

func (m Message) Wire() ([]byte, error) { return m.dyn.Marshal() }

func (m Message) Text() string { return protobuf.NewMessage(m.dyn).Text() }

// Tree projects the decoded payload into a generic JSON-compatible tree for
// the Sparkplug<->JSON/YAML conversion cells (spec.md §4.1), reusing the
// descriptor-driven JSON marshaling internal/protobuf already provides
// rather than hand-rolling a second tree walker.
func (m Message) Tree() any {
	data, err := protobuf.NewMessage(m.dyn).JSON()
	if err != nil {
		return map[string]any{}
	}
	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return map[string]any{}
	}
	return tree
}

// Timestamp returns the top-level Payload.timestamp field.
func (m Message) Timestamp() (uint64, bool) {
	if !m.dyn.HasFieldNumber(1) {
		return 0, false
	}
	v, ok := toUint64(m.dyn.GetFieldByNumber(1))
	return v, ok
}

// Seq returns the Payload.seq sequence number.
func (m Message) Seq() (uint64, bool) {
	if !m.dyn.HasFieldNumber(3) {
		return 0, false
	}
	v, ok := toUint64(m.dyn.GetFieldByNumber(3))
	return v, ok
}

// Metrics decodes every Payload.metrics entry into the Go-idiomatic Metric
// projection.
func (m Message) Metrics() []Metric {
	raw, ok := m.dyn.GetFieldByNumber(2).([]interface{})
	if !ok {
		return nil
	}
	metrics := make([]Metric, 0, len(raw))
	for _, v := range raw {
		dyn, ok := v.(*dynamic.Message)
		if !ok {
			continue
		}
		metrics = append(metrics, metricFromDynamic(dyn))
	}
	return metrics
}

func newEmptyPayload() *dynamic.Message {
	return dynamic.NewMessage(payloadDesc.MessageDescriptor())
}

func (m Message) String() string { return fmt.Sprintf("sparkplug.Payload(%d metrics)", len(m.Metrics())) }

var _ payload.SparkplugMessage = Message{}
