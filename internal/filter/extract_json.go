package filter

import (
	"fmt"

	"github.com/PaesslerAG/jsonpath"

	"github.com/mqtli-go/mqtli/internal/payload"
)

// ExtractJson evaluates a JSONPath expression against a JSON payload. Any
// array result fans out into one JSON message per element, including a
// single match whose selected value is itself an array; any other result
// stays one JSON message.
type ExtractJson struct {
	Path string
}

func (ExtractJson) InputKind() InputKind { return InputJSON }

func (f ExtractJson) Apply(p payload.Payload) ([]payload.Payload, error) {
	result, err := jsonpath.Get(f.Path, p.Tree())
	if err != nil {
		return nil, fmt.Errorf("extract_json %q: %w", f.Path, err)
	}

	if elems, ok := result.([]interface{}); ok {
		out := make([]payload.Payload, 0, len(elems))
		for _, e := range elems {
			out = append(out, payload.NewJSON(e))
		}
		return out, nil
	}

	return []payload.Payload{payload.NewJSON(result)}, nil
}

var _ Filter = ExtractJson{}
