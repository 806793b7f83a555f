package payload

// Payload is the tagged variant described in spec.md §3. Exactly one of the
// per-kind fields is meaningful, selected by kind.
type Payload struct {
	kind Kind

	raw []byte // Raw
	str string // Text, Hex (lowercase), Base64

	tree any // JSON, YAML: map[string]any / []any / scalar

	proto     ProtoMessage     // Protobuf
	sparkplug SparkplugMessage // Sparkplug
}

func NewRaw(b []byte) Payload {
	cp := make([]byte, len(b))
	copy(cp, b)
	return Payload{kind: KindRaw, raw: cp}
}

func NewText(s string) Payload {
	return Payload{kind: KindText, str: s}
}

// NewHex wraps an already-validated lowercase hex string. Use ParseHex to
// validate untrusted input.
func NewHex(s string) Payload {
	return Payload{kind: KindHex, str: s}
}

func NewBase64(s string) Payload {
	return Payload{kind: KindBase64, str: s}
}

func NewJSON(tree any) Payload {
	return Payload{kind: KindJSON, tree: tree}
}

func NewYAML(tree any) Payload {
	return Payload{kind: KindYAML, tree: tree}
}

func NewProtobuf(msg ProtoMessage) Payload {
	return Payload{kind: KindProtobuf, proto: msg}
}

func NewSparkplug(msg SparkplugMessage) Payload {
	return Payload{kind: KindSparkplug, sparkplug: msg}
}

func (p Payload) Kind() Kind { return p.kind }

// Bytes returns the raw byte slice for a Raw payload. Panics if called on
// any other kind; callers should Convert first.
func (p Payload) Bytes() []byte {
	if p.kind != KindRaw {
		panic("payload: Bytes called on non-Raw payload")
	}
	return p.raw
}

func (p Payload) Text() string {
	if p.kind != KindText {
		panic("payload: Text called on non-Text payload")
	}
	return p.str
}

func (p Payload) HexString() string {
	if p.kind != KindHex {
		panic("payload: HexString called on non-Hex payload")
	}
	return p.str
}

func (p Payload) Base64String() string {
	if p.kind != KindBase64 {
		panic("payload: Base64String called on non-Base64 payload")
	}
	return p.str
}

func (p Payload) Tree() any {
	if p.kind != KindJSON && p.kind != KindYAML {
		panic("payload: Tree called on non-JSON/YAML payload")
	}
	return p.tree
}

func (p Payload) Proto() ProtoMessage {
	if p.kind != KindProtobuf {
		panic("payload: Proto called on non-Protobuf payload")
	}
	return p.proto
}

func (p Payload) Sparkplug() SparkplugMessage {
	if p.kind != KindSparkplug {
		panic("payload: Sparkplug called on non-Sparkplug payload")
	}
	return p.sparkplug
}
