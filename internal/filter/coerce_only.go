package filter

import "github.com/mqtli-go/mqtli/internal/payload"

// ToText and ToJson do no work of their own: declaring InputText/InputJSON
// makes Chain's auto-coercion step perform the §4.1 conversion, and Apply
// is the identity on the already-coerced result.

type ToText struct{}

func (ToText) InputKind() InputKind { return InputText }

func (ToText) Apply(p payload.Payload) ([]payload.Payload, error) {
	return []payload.Payload{p}, nil
}

type ToJson struct{}

func (ToJson) InputKind() InputKind { return InputJSON }

func (ToJson) Apply(p payload.Payload) ([]payload.Payload, error) {
	return []payload.Payload{p}, nil
}

var (
	_ Filter = ToText{}
	_ Filter = ToJson{}
)
