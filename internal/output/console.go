package output

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Console writes each emitted payload, newline-terminated, to Writer
// (os.Stdout by default).
type Console struct {
	Writer io.Writer
}

func NewConsole() Console { return Console{Writer: os.Stdout} }

func (c Console) Emit(_ context.Context, e Emission) error {
	w := c.Writer
	if w == nil {
		w = os.Stdout
	}
	_, err := fmt.Fprintf(w, "%s\n", e.Bytes)
	return err
}

var _ Target = Console{}
