// Package payload implements the polymorphic MQTli payload value and the
// total conversion function between its eight representations.
package payload

import "fmt"

// Kind identifies one of the eight payload representations.
type Kind int

const (
	KindRaw Kind = iota
	KindText
	KindHex
	KindBase64
	KindJSON
	KindYAML
	KindProtobuf
	KindSparkplug
)

func (k Kind) String() string {
	switch k {
	case KindRaw:
		return "raw"
	case KindText:
		return "text"
	case KindHex:
		return "hex"
	case KindBase64:
		return "base64"
	case KindJSON:
		return "json"
	case KindYAML:
		return "yaml"
	case KindProtobuf:
		return "protobuf"
	case KindSparkplug:
		return "sparkplug"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// RawAs controls how a Raw byte slice appears when serialized into a
// textual representation (Text, JSON, YAML).
type RawAs int

const (
	RawAsHex RawAs = iota
	RawAsBase64
	RawAsUTF8
)

func ParseRawAs(s string) (RawAs, error) {
	switch s {
	case "", "hex":
		return RawAsHex, nil
	case "base64":
		return RawAsBase64, nil
	case "utf8":
		return RawAsUTF8, nil
	default:
		return RawAsHex, fmt.Errorf("payload: unknown raw_as %q", s)
	}
}

// Descriptor is the minimal contract the payload package needs from a
// resolved protobuf descriptor. internal/protobuf implements it.
type Descriptor interface {
	FullName() string
}

// ProtoCodec is implemented by internal/protobuf and injected into Options
// so that this package does not import the protobuf machinery directly for
// the cells of the conversion table that don't touch it.
type ProtoCodec interface {
	Decode(desc Descriptor, messageName string, wire []byte) (ProtoMessage, error)
	DecodeJSON(desc Descriptor, messageName string, data []byte) (ProtoMessage, error)
	DecodeYAML(desc Descriptor, messageName string, tree any) (ProtoMessage, error)
}

// ProtoMessage is the minimal contract a decoded protobuf message exposes
// to the payload conversion matrix.
type ProtoMessage interface {
	Wire() ([]byte, error)
	JSON() ([]byte, error)
	Text() string
	MessageName() string
}

// SparkplugCodec is implemented by internal/sparkplug.
type SparkplugCodec interface {
	Decode(wire []byte) (SparkplugMessage, error)
	FromTree(tree any) (SparkplugMessage, error)
}

// SparkplugMessage is the minimal contract a decoded Sparkplug-B payload
// exposes to the payload conversion matrix.
type SparkplugMessage interface {
	Wire() ([]byte, error)
	Tree() any
	Text() string
}

// Options carries the per-kind configuration needed by Convert: raw_as for
// textual projections of binary data, and the protobuf descriptor/codec for
// the Protobuf kind.
type Options struct {
	RawAs          RawAs
	ProtoCodec     ProtoCodec
	ProtoDescriptor Descriptor
	ProtoMessageName string
	SparkplugCodec SparkplugCodec
}
