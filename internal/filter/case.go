package filter

import "github.com/mqtli-go/mqtli/internal/payload"

// ToUpper/ToLower apply ASCII-only case mapping; non-ASCII bytes pass
// through unchanged, per spec.md §4.3 (unlike strings.ToUpper/ToLower,
// which would also fold non-ASCII Unicode case).

type ToUpper struct{}

func (ToUpper) InputKind() InputKind { return InputText }

func (ToUpper) Apply(p payload.Payload) ([]payload.Payload, error) {
	return []payload.Payload{payload.NewText(asciiUpper(p.Text()))}, nil
}

type ToLower struct{}

func (ToLower) InputKind() InputKind { return InputText }

func (ToLower) Apply(p payload.Payload) ([]payload.Payload, error) {
	return []payload.Payload{payload.NewText(asciiLower(p.Text()))}, nil
}

func asciiUpper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}

func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

var (
	_ Filter = ToUpper{}
	_ Filter = ToLower{}
)
