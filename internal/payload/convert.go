package payload

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Convert is the total function from spec.md §4.1: it projects p into the
// target Kind, applying the conversion rules and auto-coercion used by the
// filter pipeline. Coercing a payload already in the target kind is a
// no-op, per the idempotence property in spec.md §8.
func Convert(p Payload, to Kind, opts Options) (Payload, error) {
	if p.kind == to {
		return p, nil
	}

	switch to {
	case KindRaw:
		b, err := toRawBytes(p, opts)
		if err != nil {
			return Payload{}, err
		}
		return NewRaw(b), nil
	case KindHex:
		b, err := toRawBytes(p, opts)
		if err != nil {
			return Payload{}, err
		}
		return NewHex(hex.EncodeToString(b)), nil
	case KindBase64:
		b, err := toRawBytes(p, opts)
		if err != nil {
			return Payload{}, err
		}
		return NewBase64(base64.StdEncoding.EncodeToString(b)), nil
	case KindText:
		return convertToText(p, opts)
	case KindJSON:
		return convertToTree(p, opts, KindJSON)
	case KindYAML:
		return convertToTree(p, opts, KindYAML)
	case KindProtobuf:
		return convertToProtobuf(p, opts)
	case KindSparkplug:
		return convertToSparkplug(p, opts)
	default:
		return Payload{}, fmt.Errorf("payload: unknown target kind %v", to)
	}
}

// toRawBytes produces the canonical byte representation of p, used for
// Raw/Hex/Base64 targets and as the wire form fed to protobuf/sparkplug
// decoders.
func toRawBytes(p Payload, opts Options) ([]byte, error) {
	switch p.kind {
	case KindRaw:
		return p.raw, nil
	case KindHex:
		b, err := hex.DecodeString(p.str)
		if err != nil {
			return nil, newConvertError(InvalidHex, p.kind, KindRaw, err)
		}
		return b, nil
	case KindBase64:
		b, err := base64.StdEncoding.DecodeString(p.str)
		if err != nil {
			return nil, newConvertError(InvalidBase64, p.kind, KindRaw, err)
		}
		return b, nil
	case KindText:
		return []byte(p.str), nil
	case KindJSON, KindYAML:
		content, err := extractContentField(p.tree)
		if err != nil {
			return nil, newConvertError(MissingContentField, p.kind, KindRaw, err)
		}
		b, err := decodeRawAs(content, opts.RawAs)
		if err != nil {
			return nil, newConvertError(rawAsErrorKind(opts.RawAs), p.kind, KindRaw, err)
		}
		return b, nil
	case KindProtobuf:
		b, err := p.proto.Wire()
		if err != nil {
			return nil, newConvertError(ProtobufEncodeError, p.kind, KindRaw, err)
		}
		return b, nil
	case KindSparkplug:
		b, err := p.sparkplug.Wire()
		if err != nil {
			return nil, newConvertError(ProtobufEncodeError, p.kind, KindRaw, err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("payload: unsupported source kind %v", p.kind)
	}
}

func convertToText(p Payload, opts Options) (Payload, error) {
	switch p.kind {
	case KindRaw:
		return NewText(encodeRawAs(p.raw, opts.RawAs)), nil
	case KindHex:
		b, err := hex.DecodeString(p.str)
		if err != nil {
			return Payload{}, newConvertError(InvalidHex, p.kind, KindText, err)
		}
		return NewText(encodeRawAs(b, opts.RawAs)), nil
	case KindBase64:
		b, err := base64.StdEncoding.DecodeString(p.str)
		if err != nil {
			return Payload{}, newConvertError(InvalidBase64, p.kind, KindText, err)
		}
		return NewText(encodeRawAs(b, opts.RawAs)), nil
	case KindJSON:
		b, err := treeToJSONBytes(p.tree)
		if err != nil {
			return Payload{}, newConvertError(StructuralError, p.kind, KindText, err)
		}
		return NewText(string(b)), nil
	case KindYAML:
		b, err := treeToYAMLBytes(p.tree)
		if err != nil {
			return Payload{}, newConvertError(StructuralError, p.kind, KindText, err)
		}
		return NewText(strings.TrimRight(string(b), "\n")), nil
	case KindProtobuf:
		return NewText(p.proto.Text()), nil
	case KindSparkplug:
		return NewText(p.sparkplug.Text()), nil
	default:
		return Payload{}, fmt.Errorf("payload: unsupported source kind %v", p.kind)
	}
}

func convertToTree(p Payload, opts Options, to Kind) (Payload, error) {
	wrap := NewJSON
	if to == KindYAML {
		wrap = NewYAML
	}

	switch p.kind {
	case KindRaw, KindHex, KindBase64:
		b, err := toRawBytes(p, opts)
		if err != nil {
			return Payload{}, err
		}
		tree := map[string]any{"content": encodeRawAs(b, opts.RawAs)}
		return wrap(tree), nil
	case KindText:
		var tree any
		var err error
		if to == KindJSON {
			tree, err = treeFromJSON([]byte(p.str))
		} else {
			tree, err = treeFromYAML([]byte(p.str))
		}
		if err != nil {
			return Payload{}, err
		}
		return wrap(tree), nil
	case KindJSON, KindYAML:
		return wrap(p.tree), nil
	case KindProtobuf:
		data, err := p.proto.JSON()
		if err != nil {
			return Payload{}, newConvertError(ProtobufDecodeError, p.kind, to, err)
		}
		tree, err := treeFromJSON(data)
		if err != nil {
			return Payload{}, err
		}
		return wrap(tree), nil
	case KindSparkplug:
		return wrap(p.sparkplug.Tree()), nil
	default:
		return Payload{}, fmt.Errorf("payload: unsupported source kind %v", p.kind)
	}
}

func convertToProtobuf(p Payload, opts Options) (Payload, error) {
	if opts.ProtoCodec == nil || opts.ProtoDescriptor == nil {
		return Payload{}, newConvertError(ProtobufDecodeError, p.kind, KindProtobuf,
			fmt.Errorf("no protobuf descriptor configured for this topic"))
	}

	if p.kind == KindText {
		return Payload{}, newConvertError(UnsupportedConversion, p.kind, KindProtobuf, nil)
	}

	switch p.kind {
	case KindJSON:
		data, err := treeToJSONBytes(p.tree)
		if err != nil {
			return Payload{}, newConvertError(StructuralError, p.kind, KindProtobuf, err)
		}
		msg, err := opts.ProtoCodec.DecodeJSON(opts.ProtoDescriptor, opts.ProtoMessageName, data)
		if err != nil {
			return Payload{}, newConvertError(ProtobufDecodeError, p.kind, KindProtobuf, err)
		}
		return NewProtobuf(msg), nil
	case KindYAML:
		msg, err := opts.ProtoCodec.DecodeYAML(opts.ProtoDescriptor, opts.ProtoMessageName, p.tree)
		if err != nil {
			return Payload{}, newConvertError(ProtobufDecodeError, p.kind, KindProtobuf, err)
		}
		return NewProtobuf(msg), nil
	default: // Raw, Hex, Base64, Sparkplug
		b, err := toRawBytes(p, opts)
		if err != nil {
			return Payload{}, err
		}
		msg, err := opts.ProtoCodec.Decode(opts.ProtoDescriptor, opts.ProtoMessageName, b)
		if err != nil {
			return Payload{}, newConvertError(ProtobufDecodeError, p.kind, KindProtobuf, err)
		}
		return NewProtobuf(msg), nil
	}
}

func convertToSparkplug(p Payload, opts Options) (Payload, error) {
	if opts.SparkplugCodec == nil {
		return Payload{}, newConvertError(ProtobufDecodeError, p.kind, KindSparkplug,
			fmt.Errorf("no sparkplug codec configured"))
	}

	if p.kind == KindText {
		return Payload{}, newConvertError(UnsupportedConversion, p.kind, KindSparkplug, nil)
	}

	switch p.kind {
	case KindJSON, KindYAML:
		msg, err := opts.SparkplugCodec.FromTree(p.tree)
		if err != nil {
			return Payload{}, newConvertError(ProtobufDecodeError, p.kind, KindSparkplug, err)
		}
		return NewSparkplug(msg), nil
	default: // Raw, Hex, Base64, Protobuf
		b, err := toRawBytes(p, opts)
		if err != nil {
			return Payload{}, err
		}
		msg, err := opts.SparkplugCodec.Decode(b)
		if err != nil {
			return Payload{}, newConvertError(ProtobufDecodeError, p.kind, KindSparkplug, err)
		}
		return NewSparkplug(msg), nil
	}
}

// ParseHex validates and normalizes untrusted hex input (case-insensitive
// on input, per spec.md §4.1).
func ParseHex(s string) (Payload, error) {
	if _, err := hex.DecodeString(s); err != nil {
		return Payload{}, newConvertError(InvalidHex, KindHex, KindHex, err)
	}
	return NewHex(strings.ToLower(s)), nil
}

// ParseBase64 validates untrusted base64 input.
func ParseBase64(s string) (Payload, error) {
	if _, err := base64.StdEncoding.DecodeString(s); err != nil {
		return Payload{}, newConvertError(InvalidBase64, KindBase64, KindBase64, err)
	}
	return NewBase64(s), nil
}

func rawAsErrorKind(r RawAs) ErrorKind {
	switch r {
	case RawAsBase64:
		return InvalidBase64
	default:
		return InvalidHex
	}
}

func encodeRawAs(b []byte, rawAs RawAs) string {
	switch rawAs {
	case RawAsBase64:
		return base64.StdEncoding.EncodeToString(b)
	case RawAsUTF8:
		return utf8Lossy(b)
	default:
		return hex.EncodeToString(b)
	}
}

func decodeRawAs(s string, rawAs RawAs) ([]byte, error) {
	switch rawAs {
	case RawAsBase64:
		return base64.StdEncoding.DecodeString(s)
	case RawAsUTF8:
		return []byte(s), nil
	default:
		return hex.DecodeString(s)
	}
}

// utf8Lossy decodes b as UTF-8, replacing each byte that does not start a
// valid encoding with its own U+FFFD (a truncated multi-byte sequence
// yields one U+FFFD per byte). Never fails.
func utf8Lossy(b []byte) string {
	var sb strings.Builder
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		sb.WriteRune(r)
		b = b[size:]
	}
	return sb.String()
}

func extractContentField(tree any) (string, error) {
	m, ok := tree.(map[string]any)
	if !ok {
		return "", fmt.Errorf("top-level value is not an object")
	}
	v, ok := m["content"]
	if !ok {
		return "", fmt.Errorf("missing \"content\" field")
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("\"content\" field is not a string")
	}
	return s, nil
}

func treeFromJSON(b []byte) (any, error) {
	dec := json.NewDecoder(strings.NewReader(string(b)))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, newConvertError(ParseError, KindText, KindJSON, err)
	}
	norm, err := normalizeNumbers(v)
	if err != nil {
		return nil, newConvertError(StructuralError, KindText, KindJSON, err)
	}
	return norm, nil
}

func treeFromYAML(b []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(b, &v); err != nil {
		return nil, newConvertError(ParseError, KindText, KindYAML, err)
	}
	return normalizeYAMLKeys(v), nil
}

func treeToJSONBytes(tree any) ([]byte, error) {
	return json.Marshal(tree)
}

func treeToYAMLBytes(tree any) ([]byte, error) {
	return yaml.Marshal(tree)
}

// normalizeNumbers converts json.Number leaves into int64 or float64,
// returning a StructuralError-worthy error on overflow of both.
func normalizeNumbers(v any) (any, error) {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i, nil
		}
		if f, err := t.Float64(); err == nil {
			return f, nil
		}
		return nil, fmt.Errorf("numeric value %q does not fit int64 or float64", t.String())
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			nv, err := normalizeNumbers(vv)
			if err != nil {
				return nil, err
			}
			out[k] = nv
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			nv, err := normalizeNumbers(vv)
			if err != nil {
				return nil, err
			}
			out[i] = nv
		}
		return out, nil
	default:
		return v, nil
	}
}

// normalizeYAMLKeys rewrites map[any]any into map[string]any so JSON and
// YAML trees are structurally interchangeable (yaml.v3 already produces
// string-keyed maps, but nested !!map defaults can surface as map[any]any
// in some decode paths).
func normalizeYAMLKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = normalizeYAMLKeys(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[fmt.Sprint(k)] = normalizeYAMLKeys(vv)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = normalizeYAMLKeys(vv)
		}
		return out
	default:
		return v
	}
}
