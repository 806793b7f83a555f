package payload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertHexRoundTrip(t *testing.T) {
	p := NewRaw([]byte{0xDE, 0xAD, 0xBE, 0xEF})

	hex, err := Convert(p, KindHex, Options{})
	require.NoError(t, err)
	assert.Equal(t, "deadbeef", hex.HexString())

	back, err := Convert(hex, KindRaw, Options{})
	require.NoError(t, err)
	assert.Equal(t, p.Bytes(), back.Bytes())
}

func TestConvertBase64RoundTrip(t *testing.T) {
	p := NewRaw([]byte("hello mqtli"))

	b64, err := Convert(p, KindBase64, Options{})
	require.NoError(t, err)

	back, err := Convert(b64, KindRaw, Options{})
	require.NoError(t, err)
	assert.Equal(t, p.Bytes(), back.Bytes())
}

func TestConvertInvalidHex(t *testing.T) {
	p := NewHex("not-hex-zz")
	_, err := Convert(p, KindRaw, Options{})
	require.Error(t, err)

	var ce *ConvertError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, InvalidHex, ce.Kind)
}

func TestConvertInvalidBase64(t *testing.T) {
	p := NewBase64("!!!not base64!!!")
	_, err := Convert(p, KindRaw, Options{})
	require.Error(t, err)

	var ce *ConvertError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, InvalidBase64, ce.Kind)
}

func TestConvertRawToTextUTF8Lossy(t *testing.T) {
	// 'A', an invalid lead byte 0xC3 followed by '(' (not a valid
	// continuation byte), then 'B' -> 4 codepoints: 'A', U+FFFD, '(', 'B'.
	p := NewRaw([]byte{0x41, 0xC3, 0x28, 0x42})

	text, err := Convert(p, KindText, Options{RawAs: RawAsUTF8})
	require.NoError(t, err)
	assert.Equal(t, "A�(B", text.Text())
}

func TestConvertRawToTextHexDefault(t *testing.T) {
	p := NewRaw([]byte{0x01, 0x02})
	text, err := Convert(p, KindText, Options{})
	require.NoError(t, err)
	assert.Equal(t, "0102", text.Text())
}

func TestConvertJSONYAMLRoundTrip(t *testing.T) {
	p := NewJSON(map[string]any{"name": "MQTli", "count": int64(3)})

	y, err := Convert(p, KindYAML, Options{})
	require.NoError(t, err)

	back, err := Convert(y, KindJSON, Options{})
	require.NoError(t, err)
	assert.Equal(t, p.Tree(), back.Tree())
}

func TestConvertJSONToTextIsDirectMarshal(t *testing.T) {
	p := NewJSON(map[string]any{"name": "MQTli"})

	text, err := Convert(p, KindText, Options{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"MQTli"}`, text.Text())
}

func TestConvertTextToJSON(t *testing.T) {
	p := NewText(`{"name":"MQTli"}`)

	j, err := Convert(p, KindJSON, Options{})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "MQTli"}, j.Tree())
}

func TestConvertJSONToRawRequiresContentField(t *testing.T) {
	p := NewJSON(map[string]any{"other": "field"})
	_, err := Convert(p, KindRaw, Options{})
	require.Error(t, err)

	var ce *ConvertError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, MissingContentField, ce.Kind)
}

func TestConvertJSONContentFieldRoundTrip(t *testing.T) {
	raw := NewRaw([]byte{0xCA, 0xFE})
	opts := Options{RawAs: RawAsHex}

	j, err := Convert(raw, KindJSON, opts)
	require.NoError(t, err)
	assert.Equal(t, "cafe", j.Tree().(map[string]any)["content"])

	back, err := Convert(j, KindRaw, opts)
	require.NoError(t, err)
	assert.Equal(t, raw.Bytes(), back.Bytes())
}

func TestConvertTextToProtobufUnsupported(t *testing.T) {
	p := NewText("irrelevant")
	_, err := Convert(p, KindProtobuf, Options{ProtoCodec: stubProtoCodec{}, ProtoDescriptor: stubDescriptor{}})
	require.Error(t, err)

	var ce *ConvertError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, UnsupportedConversion, ce.Kind)
}

func TestConvertTextToSparkplugUnsupported(t *testing.T) {
	p := NewText("irrelevant")
	_, err := Convert(p, KindSparkplug, Options{SparkplugCodec: stubSparkplugCodec{}})
	require.Error(t, err)

	var ce *ConvertError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, UnsupportedConversion, ce.Kind)
}

func TestConvertIdempotentSameKind(t *testing.T) {
	p := NewText("unchanged")
	out, err := Convert(p, KindText, Options{})
	require.NoError(t, err)
	assert.Equal(t, p, out)
}

func TestConvertProtobufBase64RoundTrip(t *testing.T) {
	codec := stubProtoCodec{}
	desc := stubDescriptor{}
	opts := Options{ProtoCodec: codec, ProtoDescriptor: desc, ProtoMessageName: "test.Msg"}

	b64 := NewBase64("aGVsbG8=") // "hello"
	pb, err := Convert(b64, KindProtobuf, opts)
	require.NoError(t, err)
	assert.Equal(t, "test.Msg", pb.Proto().MessageName())

	back, err := Convert(pb, KindHex, opts)
	require.NoError(t, err)
	assert.Equal(t, "68656c6c6f", back.HexString())
}

// --- stubs grounding the Protobuf/Sparkplug conversion cells without
// depending on internal/protobuf or internal/sparkplug from this package's
// tests.

type stubDescriptor struct{}

func (stubDescriptor) FullName() string { return "test.Msg" }

type stubProtoMessage struct {
	wire []byte
	name string
}

func (m stubProtoMessage) Wire() ([]byte, error) { return m.wire, nil }
func (m stubProtoMessage) JSON() ([]byte, error) { return []byte(`{"raw":"` + string(m.wire) + `"}`), nil }
func (m stubProtoMessage) Text() string          { return string(m.wire) }
func (m stubProtoMessage) MessageName() string   { return m.name }

type stubProtoCodec struct{}

func (stubProtoCodec) Decode(desc Descriptor, messageName string, wire []byte) (ProtoMessage, error) {
	return stubProtoMessage{wire: wire, name: messageName}, nil
}

func (stubProtoCodec) DecodeJSON(desc Descriptor, messageName string, data []byte) (ProtoMessage, error) {
	return stubProtoMessage{wire: data, name: messageName}, nil
}

func (stubProtoCodec) DecodeYAML(desc Descriptor, messageName string, tree any) (ProtoMessage, error) {
	return stubProtoMessage{wire: nil, name: messageName}, nil
}

type stubSparkplugMessage struct{ wire []byte }

func (m stubSparkplugMessage) Wire() ([]byte, error) { return m.wire, nil }
func (m stubSparkplugMessage) Tree() any             { return map[string]any{"metrics": []any{}} }
func (m stubSparkplugMessage) Text() string          { return string(m.wire) }

type stubSparkplugCodec struct{}

func (stubSparkplugCodec) Decode(wire []byte) (SparkplugMessage, error) {
	return stubSparkplugMessage{wire: wire}, nil
}

func (stubSparkplugCodec) FromTree(tree any) (SparkplugMessage, error) {
	return stubSparkplugMessage{wire: nil}, nil
}
