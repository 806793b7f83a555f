package filter

import (
	"fmt"

	"github.com/mqtli-go/mqtli/internal/payload"
)

// Chain is an ordered list of filters. An empty chain is identity, per
// spec.md §4.3.
type Chain []Filter

// Apply runs data through every stage, auto-coercing before each one and
// flattening fan-out results (a try_fold over Vec<Payload>, same shape as
// the original FilterTypes.apply). A coercion failure or filter error
// aborts the chain and returns the originating error.
func (c Chain) Apply(data payload.Payload, opts payload.Options) ([]payload.Payload, error) {
	current := []payload.Payload{data}

	for i, f := range c {
		var next []payload.Payload

		for _, p := range current {
			coerced, err := coerce(p, f.InputKind(), opts)
			if err != nil {
				return nil, &FilterError{Stage: fmt.Sprintf("#%d", i), Wrapped: err}
			}

			out, err := f.Apply(coerced)
			if err != nil {
				return nil, &FilterError{Stage: fmt.Sprintf("#%d", i), Wrapped: err}
			}
			next = append(next, out...)
		}

		current = next
		if len(current) == 0 {
			break
		}
	}

	return current, nil
}

func coerce(p payload.Payload, kind InputKind, opts payload.Options) (payload.Payload, error) {
	switch kind {
	case InputJSON:
		return payload.Convert(p, payload.KindJSON, opts)
	case InputText:
		return payload.Convert(p, payload.KindText, opts)
	default:
		return p, nil
	}
}
