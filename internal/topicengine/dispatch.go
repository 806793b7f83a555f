package topicengine

import (
	"context"
	"time"

	"github.com/mqtli-go/mqtli/internal/output"
	"github.com/mqtli-go/mqtli/internal/payload"
	"github.com/mqtli-go/mqtli/internal/sparkplug"
	"github.com/mqtli-go/mqtli/internal/sqlsink"
)

// Logger is the minimal sink Engine uses to report per-message drops
// (spec.md §7: "per-message errors are logged and skipped").
type Logger interface {
	Warn(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Warn(string, ...any) {}

// Engine binds a set of compiled topics to the running pipeline: inbound
// dispatch and outbound publish assembly, per spec.md §4.5.
type Engine struct {
	entries []*BoundEntry
	logger  Logger
}

func NewEngine(entries []*BoundEntry, logger Logger) *Engine {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Engine{entries: entries, logger: logger}
}

// SubscriptionPatterns returns the union of enabled subscription patterns
// and the max QoS required across them, for the initial MQTT subscribe
// burst on CONNACK (spec.md §4.5).
func (e *Engine) SubscriptionPatterns() map[string]byte {
	out := make(map[string]byte)
	for _, be := range e.entries {
		if be.Subscription == nil {
			continue
		}
		if q, ok := out[be.Pattern]; !ok || be.Subscription.qos > q {
			out[be.Pattern] = be.Subscription.qos
		}
	}
	return out
}

type metricsProvider interface {
	Metrics() []sparkplug.Metric
}

// Dispatch processes one inbound (topic, payload_bytes, qos, retain),
// matching it against every enabled subscription and running each match's
// full pipeline independently (a single message may match several
// entries, per spec.md §4.5).
func (e *Engine) Dispatch(ctx context.Context, topic string, payloadBytes []byte, qos byte, retain bool) {
	for _, be := range e.entries {
		if be.Subscription == nil || !Matches(be.Pattern, topic) {
			continue
		}
		e.dispatchOne(ctx, be, topic, payloadBytes, qos, retain)
	}
}

func (e *Engine) dispatchOne(ctx context.Context, be *BoundEntry, topic string, payloadBytes []byte, qos byte, retain bool) {
	p, err := BuildPayload(payloadBytes, be.Format)
	if err != nil {
		e.logger.Warn("topicengine: decode inbound payload", "topic", topic, "stage", "decode", "error", err)
		return
	}

	results, err := be.Subscription.filters.Apply(p, be.Format.Options())
	if err != nil {
		e.logger.Warn("topicengine: filter chain", "topic", topic, "stage", "filter", "error", err)
		return
	}

	dctx := sqlsink.DispatchContext{Topic: topic, QoS: qos, Retain: retain, Now: time.Now(), PayloadBytes: payloadBytes}

	if spTopic, spErr := sparkplug.ParseTopic(topic); spErr == nil {
		dctx.SparkplugTopic = &spTopic
		if spTopic.IsHostApplication && p.Kind() == payload.KindJSON {
			dctx.HostOnline, dctx.HostTimestamp = stateFields(p.Tree())
		}
	}

	var metrics []sparkplug.Metric
	if p.Kind() == payload.KindSparkplug && dctx.SparkplugTopic != nil && !dctx.SparkplugTopic.IsHostApplication {
		if mp, ok := p.Sparkplug().(metricsProvider); ok {
			metrics = mp.Metrics()
		}
	}

	for _, res := range results {
		for _, bo := range be.Subscription.outputs {
			bytes, err := Render(res, bo.format)
			if err != nil {
				e.logger.Warn("topicengine: render output", "topic", topic, "stage", "output", "error", err)
				continue
			}

			emission := output.Emission{Bytes: bytes, Dispatch: dctx, Metrics: metrics}
			if err := bo.target.Emit(ctx, emission); err != nil {
				e.logger.Warn("topicengine: emit output", "topic", topic, "stage", "output", "error", err)
			}
		}
	}
}

// stateFields extracts online/timestamp from a STATE topic's JSON tree, the
// same shape sparkplug.Network.HandleState reads for console rendering.
func stateFields(tree any) (online bool, timestamp uint64) {
	m, ok := tree.(map[string]any)
	if !ok {
		return false, 0
	}
	if v, ok := m["online"].(bool); ok {
		online = v
	}
	switch v := m["timestamp"].(type) {
	case int64:
		timestamp = uint64(v)
	case float64:
		timestamp = uint64(v)
	}
	return online, timestamp
}
