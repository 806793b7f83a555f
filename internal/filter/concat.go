package filter

import "github.com/mqtli-go/mqtli/internal/payload"

// Prepend and Append are straightforward Text concatenation filters; they
// have no counterpart in the Rust original's filter set but are named in
// spec.md §3, implemented in the same FilterImpl-style dispatch as the rest.

type Prepend struct {
	Value string
}

func (Prepend) InputKind() InputKind { return InputText }

func (f Prepend) Apply(p payload.Payload) ([]payload.Payload, error) {
	return []payload.Payload{payload.NewText(f.Value + p.Text())}, nil
}

type Append struct {
	Value string
}

func (Append) InputKind() InputKind { return InputText }

func (f Append) Apply(p payload.Payload) ([]payload.Payload, error) {
	return []payload.Payload{payload.NewText(p.Text() + f.Value)}, nil
}

var (
	_ Filter = Prepend{}
	_ Filter = Append{}
)
