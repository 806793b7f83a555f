package protobuf

import (
	"github.com/jhump/protoreflect/dynamic"

	"github.com/mqtli-go/mqtli/internal/payload"
)

// Message adapts a dynamic.Message to payload.ProtoMessage.
type Message struct {
	dyn *dynamic.Message
}

// NewMessage wraps an already-populated dynamic message, for callers (such
// as internal/sparkplug) that build dynamic.Message values directly against
// an embedded descriptor.
func NewMessage(dyn *dynamic.Message) Message { return Message{dyn: dyn} }

// Dynamic exposes the underlying dynamic.Message for domain-specific field
// access that payload.ProtoMessage does not need.
func (m Message) Dynamic() *dynamic.Message { return m.dyn }

func (m Message) Wire() ([]byte, error) { return m.dyn.Marshal() }

func (m Message) JSON() ([]byte, error) { return m.dyn.MarshalJSON() }

func (m Message) Text() string { return renderText(m.dyn, 0, "") }

func (m Message) MessageName() string { return m.dyn.GetMessageDescriptor().GetFullyQualifiedName() }

var _ payload.ProtoMessage = Message{}
