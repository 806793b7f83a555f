// Package filter implements the MQTli filter pipeline: a chain of payload
// transformations with automatic intermediate-type coercion and fan-out
// support, mirroring the FilterImpl/FilterTypes pattern from the Rust
// implementation this codebase descends from.
package filter

import (
	"fmt"

	"github.com/mqtli-go/mqtli/internal/payload"
)

// InputKind is the coercion target the chain applies before handing a
// payload to a Filter's Apply, per spec.md §4.3.
type InputKind int

const (
	InputAny InputKind = iota
	InputJSON
	InputText
)

// Filter is one stage of a pipeline. Apply receives a payload already
// coerced to InputKind() and returns zero or more resulting payloads — ExtractJson
// is the only stage that can return anything other than exactly one.
type Filter interface {
	InputKind() InputKind
	Apply(p payload.Payload) ([]payload.Payload, error)
}

// FilterError wraps a stage failure with the stage's position in the chain
// ("#0", "#1", ...), so the engine
// can log which stage of a chain dropped a message (spec.md §7).
type FilterError struct {
	Stage   string
	Wrapped error
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("filter %s: %v", e.Stage, e.Wrapped)
}

func (e *FilterError) Unwrap() error { return e.Wrapped }
