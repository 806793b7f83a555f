package output

import (
	"context"
	"fmt"

	"github.com/mqtli-go/mqtli/internal/sqlsink"
)

// Sql dispatches an emission to the process-wide SqlStorage, expanding
// InsertStatement's `{{name}}` placeholders (spec.md §4.7). Sparkplug
// metric fan-out is driven by Emission.Metrics, populated by the topic
// engine when the source topic is a Sparkplug edge-node topic carrying a
// binary Sparkplug payload.
type Sql struct {
	Sink            *sqlsink.Sink
	InsertStatement string
}

func (s Sql) Emit(ctx context.Context, e Emission) error {
	sink := *s.Sink
	sink.Template = s.InsertStatement

	if _, err := sink.Dispatch(ctx, e.Dispatch, e.Metrics); err != nil {
		return fmt.Errorf("output.Sql: %w", err)
	}
	return nil
}

var _ Target = Sql{}
