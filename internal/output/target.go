package output

import (
	"context"
	"time"

	"github.com/mqtli-go/mqtli/internal/sparkplug"
	"github.com/mqtli-go/mqtli/internal/sqlsink"
)

// Emission is everything a Target might need to do its job. Console, File,
// and Null only look at Bytes; Topic also looks only at Bytes; Sql
// ignores Bytes and uses Dispatch/Metrics instead (its own DispatchContext
// carries the raw payload bytes to bind to `{{payload}}`).
type Emission struct {
	Bytes    []byte
	Dispatch sqlsink.DispatchContext
	Metrics  []sparkplug.Metric
}

// Target is one configured OutputTarget.
type Target interface {
	Emit(ctx context.Context, e Emission) error
}

// NewDispatchContext builds a sqlsink.DispatchContext from the given
// message fields, leaving the Sparkplug-derived fields zero. The topic
// engine assembles its own DispatchContext directly, once per inbound
// message.
func NewDispatchContext(topic string, qos byte, retain bool, now time.Time, payloadBytes []byte) sqlsink.DispatchContext {
	return sqlsink.DispatchContext{
		Topic:        topic,
		QoS:          qos,
		Retain:       retain,
		Now:          now,
		PayloadBytes: payloadBytes,
	}
}
