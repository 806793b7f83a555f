package output

import "context"

// Null discards every emission.
type Null struct{}

func (Null) Emit(context.Context, Emission) error { return nil }

var _ Target = Null{}
