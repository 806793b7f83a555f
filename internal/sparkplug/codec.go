package sparkplug

import (
	"encoding/json"
	"fmt"

	"github.com/mqtli-go/mqtli/internal/payload"
)

// Codec implements payload.SparkplugCodec against the fixed embedded
// Sparkplug-B schema.
type Codec struct{}

func (Codec) Decode(wire []byte) (payload.SparkplugMessage, error) {
	dyn := newEmptyPayload()
	if err := dyn.Unmarshal(wire); err != nil {
		return nil, fmt.Errorf("sparkplug: unmarshal payload: %w", err)
	}
	return Message{dyn: dyn}, nil
}

func (Codec) FromTree(tree any) (payload.SparkplugMessage, error) {
	data, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("sparkplug: re-marshal tree: %w", err)
	}

	dyn := newEmptyPayload()
	if err := dyn.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("sparkplug: unmarshal json into Payload: %w", err)
	}
	return Message{dyn: dyn}, nil
}

var _ payload.SparkplugCodec = Codec{}
