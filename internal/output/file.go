package output

import (
	"context"
	"fmt"
	"os"
	"sync"
)

// File writes each emission to Path. Per spec.md §3: if Overwrite is true
// the file is truncated on the first write of the run and every write after
// that appends; if false, every write appends to whatever already exists.
type File struct {
	Path      string
	Overwrite bool
	Prepend   string
	Append    string // defaults to "\n" when zero-valued via NewFile

	mu          sync.Mutex
	truncated   bool
	initialized bool
}

func NewFile(path string, overwrite bool, prepend string) *File {
	return &File{Path: path, Overwrite: overwrite, Prepend: prepend, Append: "\n"}
}

func (f *File) Emit(_ context.Context, e Emission) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	flags := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if f.Overwrite && !f.truncated {
		flags = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
		f.truncated = true
	}

	fh, err := os.OpenFile(f.Path, flags, 0o644)
	if err != nil {
		return fmt.Errorf("output.File: open %s: %w", f.Path, err)
	}
	defer fh.Close()

	if _, err := fmt.Fprintf(fh, "%s%s%s", f.Prepend, e.Bytes, f.Append); err != nil {
		return fmt.Errorf("output.File: write %s: %w", f.Path, err)
	}
	return nil
}

var _ Target = (*File)(nil)
