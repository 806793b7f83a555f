package output

import "context"

// Publisher is the minimal slice of the MQTT session contract (spec.md
// §4.6) a Topic output needs to re-publish a message.
type Publisher interface {
	Publish(ctx context.Context, topic string, qos byte, retain bool, payload []byte) error
}

// Topic re-publishes an emission to another MQTT topic. Loop avoidance is
// implementer-chosen per spec.md's Open Questions: this core does not
// suppress the republish even when Topic equals the inbound source, and no
// warning is logged, here or in the topic engine, for a target that a
// configured subscription pattern could match.
type Topic struct {
	Publisher Publisher
	Topic     string
	QoS       byte
	Retain    bool
}

func (t Topic) Emit(ctx context.Context, e Emission) error {
	return t.Publisher.Publish(ctx, t.Topic, t.QoS, t.Retain, e.Bytes)
}

var _ Target = Topic{}
