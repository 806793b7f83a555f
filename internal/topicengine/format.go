package topicengine

import (
	"fmt"

	"github.com/mqtli-go/mqtli/internal/payload"
	"github.com/mqtli-go/mqtli/internal/protobuf"
	"github.com/mqtli-go/mqtli/internal/sparkplug"
)

// FormatSpec is the YAML `payload:` block from spec.md §3: a payload kind
// plus the options that kind needs. Protobuf's descriptor set is resolved
// once, at Load time, and is fatal for the owning topic if it fails
// (spec.md §4.2, §7's DescriptorError).
type FormatSpec struct {
	Kind  string `yaml:"kind"`
	RawAs string `yaml:"raw_as,omitempty" mapstructure:"raw_as"`

	ProtoImportPaths []string `yaml:"definition_import_paths,omitempty" mapstructure:"definition_import_paths"`
	ProtoFiles       []string `yaml:"definition_path,omitempty" mapstructure:"definition_path"`
	ProtoMessageName string   `yaml:"message_name,omitempty" mapstructure:"message_name"`

	kind       payload.Kind
	rawAs      payload.RawAs
	descriptor payload.Descriptor
}

func parseKind(s string) (payload.Kind, error) {
	switch s {
	case "raw":
		return payload.KindRaw, nil
	case "text":
		return payload.KindText, nil
	case "hex":
		return payload.KindHex, nil
	case "base64":
		return payload.KindBase64, nil
	case "json":
		return payload.KindJSON, nil
	case "yaml":
		return payload.KindYAML, nil
	case "protobuf":
		return payload.KindProtobuf, nil
	case "sparkplug":
		return payload.KindSparkplug, nil
	default:
		return 0, fmt.Errorf("topicengine: unknown payload kind %q", s)
	}
}

// Load resolves RawAs and, for Protobuf, parses the referenced `.proto`
// descriptor set and resolves MessageName against it. Must be called once
// at startup before Build/Render are used.
func (f *FormatSpec) Load() error {
	kind, err := parseKind(f.Kind)
	if err != nil {
		return err
	}
	f.kind = kind

	rawAs, err := payload.ParseRawAs(f.RawAs)
	if err != nil {
		return fmt.Errorf("topicengine: %w", err)
	}
	f.rawAs = rawAs

	if f.kind != payload.KindProtobuf {
		return nil
	}

	pool, err := protobuf.LoadDescriptorSet(f.ProtoImportPaths, f.ProtoFiles)
	if err != nil {
		return fmt.Errorf("topicengine: load descriptor set for %q: %w", f.ProtoMessageName, err)
	}
	desc, err := pool.Resolve(f.ProtoMessageName)
	if err != nil {
		return fmt.Errorf("topicengine: resolve message: %w", err)
	}
	f.descriptor = desc
	return nil
}

// ResolvedKind returns the resolved payload.Kind. Load must have run first.
func (f FormatSpec) ResolvedKind() payload.Kind { return f.kind }

// Options builds the payload.Options this FormatSpec's kind needs to
// convert into or out of it.
func (f FormatSpec) Options() payload.Options {
	return payload.Options{
		RawAs:            f.rawAs,
		ProtoCodec:       protobuf.Codec{},
		ProtoDescriptor:  f.descriptor,
		ProtoMessageName: f.ProtoMessageName,
		SparkplugCodec:   sparkplug.Codec{},
	}
}

// BuildPayload constructs a Payload from inbound wire bytes per spec.md
// §4.5 step 1: bytes are interpreted according to the entry's declared
// kind, not wrapped in the binary/textual "content" convention that
// governs conversions between already-constructed payloads (§4.1).
func BuildPayload(b []byte, f FormatSpec) (payload.Payload, error) {
	opts := f.Options()

	switch f.kind {
	case payload.KindRaw:
		return payload.NewRaw(b), nil
	case payload.KindText:
		return payload.NewText(string(b)), nil
	case payload.KindHex:
		return payload.ParseHex(string(b))
	case payload.KindBase64:
		return payload.ParseBase64(string(b))
	case payload.KindJSON:
		return payload.Convert(payload.NewText(string(b)), payload.KindJSON, opts)
	case payload.KindYAML:
		return payload.Convert(payload.NewText(string(b)), payload.KindYAML, opts)
	case payload.KindProtobuf:
		msg, err := opts.ProtoCodec.Decode(f.descriptor, f.ProtoMessageName, b)
		if err != nil {
			return payload.Payload{}, err
		}
		return payload.NewProtobuf(msg), nil
	case payload.KindSparkplug:
		msg, err := opts.SparkplugCodec.Decode(b)
		if err != nil {
			return payload.Payload{}, err
		}
		return payload.NewSparkplug(msg), nil
	default:
		return payload.Payload{}, fmt.Errorf("topicengine: format not loaded")
	}
}

// Render projects p into f's declared kind and returns the wire/file bytes
// for that kind: binary bytes for Raw/Protobuf/Sparkplug, the textual
// encoding for Hex/Base64/Text, and a marshaled document for JSON/YAML.
func Render(p payload.Payload, f FormatSpec) ([]byte, error) {
	opts := f.Options()
	converted, err := payload.Convert(p, f.kind, opts)
	if err != nil {
		return nil, err
	}

	switch f.kind {
	case payload.KindRaw:
		return converted.Bytes(), nil
	case payload.KindHex:
		return []byte(converted.HexString()), nil
	case payload.KindBase64:
		return []byte(converted.Base64String()), nil
	case payload.KindText:
		return []byte(converted.Text()), nil
	case payload.KindJSON, payload.KindYAML:
		text, err := payload.Convert(converted, payload.KindText, opts)
		if err != nil {
			return nil, err
		}
		return []byte(text.Text()), nil
	case payload.KindProtobuf:
		return converted.Proto().Wire()
	case payload.KindSparkplug:
		return converted.Sparkplug().Wire()
	default:
		return nil, fmt.Errorf("topicengine: format not loaded")
	}
}
