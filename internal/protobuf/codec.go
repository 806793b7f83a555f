package protobuf

import (
	"encoding/json"
	"fmt"

	"github.com/jhump/protoreflect/dynamic"

	"github.com/mqtli-go/mqtli/internal/payload"
)

// Codec implements payload.ProtoCodec over dynamic (descriptor-driven)
// messages, so a topic's `.proto` schema never needs generated Go bindings.
type Codec struct{}

func (Codec) Decode(d payload.Descriptor, messageName string, wire []byte) (payload.ProtoMessage, error) {
	desc, err := toDescriptor(d)
	if err != nil {
		return nil, err
	}

	dyn := dynamic.NewMessage(desc.md)
	if err := dyn.Unmarshal(wire); err != nil {
		return nil, fmt.Errorf("protobuf: unmarshal %s: %w", messageName, err)
	}
	return Message{dyn: dyn}, nil
}

func (Codec) DecodeJSON(d payload.Descriptor, messageName string, data []byte) (payload.ProtoMessage, error) {
	desc, err := toDescriptor(d)
	if err != nil {
		return nil, err
	}

	dyn := dynamic.NewMessage(desc.md)
	if err := dyn.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("protobuf: unmarshal json into %s: %w", messageName, err)
	}
	return Message{dyn: dyn}, nil
}

func (c Codec) DecodeYAML(d payload.Descriptor, messageName string, tree any) (payload.ProtoMessage, error) {
	data, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("protobuf: re-marshal yaml tree for %s: %w", messageName, err)
	}
	return c.DecodeJSON(d, messageName, data)
}

func toDescriptor(d payload.Descriptor) (Descriptor, error) {
	desc, ok := d.(Descriptor)
	if !ok {
		return Descriptor{}, fmt.Errorf("protobuf: descriptor %v not produced by internal/protobuf", d)
	}
	return desc, nil
}

var _ payload.ProtoCodec = Codec{}
