package topicengine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mqtli-go/mqtli/internal/trigger"
)

// ErrNoPublishResult signals a publish filter chain that fanned out to zero
// messages (e.g. an ExtractJson on a path that matched nothing).
var ErrNoPublishResult = errors.New("topicengine: publish pipeline produced no message")

// PublishMessage is one outbound message ready for the MQTT session,
// already converted to the topic's declared wire format.
type PublishMessage struct {
	Topic  string
	Bytes  []byte
	QoS    byte
	Retain bool
}

// AssemblePublish runs be's publish pipeline once: read the PublishInput,
// apply the publish filter chain (which may fan out to N messages, per
// spec.md §4.3's ExtractJson), and convert each result to the topic's
// declared format, per spec.md §4.5's publishing path.
func (e *Engine) AssemblePublish(be *BoundEntry) ([]PublishMessage, error) {
	if be.Publish == nil {
		return nil, fmt.Errorf("topicengine: topic %q has no publish configuration", be.Pattern)
	}

	input, err := be.Publish.input.Assemble()
	if err != nil {
		return nil, err
	}

	results, err := be.Publish.filters.Apply(input, be.Format.Options())
	if err != nil {
		return nil, fmt.Errorf("topicengine: publish filter chain: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrNoPublishResult
	}

	out := make([]PublishMessage, 0, len(results))
	for _, res := range results {
		b, err := Render(res, be.Format)
		if err != nil {
			return nil, fmt.Errorf("topicengine: render publish payload: %w", err)
		}
		out = append(out, PublishMessage{Topic: be.Pattern, Bytes: b, QoS: be.Publish.qos, Retain: be.Publish.retain})
	}
	return out, nil
}

const triggerKeySep = "::"

func triggerKey(pattern, name string) string { return pattern + triggerKeySep + name }

// AllTriggers returns every configured trigger across every bound entry,
// keyed uniquely for trigger.NewScheduler/Start.
func (e *Engine) AllTriggers() map[string]trigger.Periodic {
	out := make(map[string]trigger.Periodic)
	for _, be := range e.entries {
		if be.Publish == nil {
			continue
		}
		for name, tc := range be.Publish.triggers {
			out[triggerKey(be.Pattern, name)] = tc.Build()
		}
	}
	return out
}

// EntryForTrigger resolves a trigger.Tick's qualified name (as produced by
// AllTriggers' keys) back to the BoundEntry whose publish pipeline fired.
func (e *Engine) EntryForTrigger(qualifiedName string) (*BoundEntry, bool) {
	idx := strings.LastIndex(qualifiedName, triggerKeySep)
	if idx < 0 {
		return nil, false
	}
	pattern, name := qualifiedName[:idx], qualifiedName[idx+len(triggerKeySep):]

	for _, be := range e.entries {
		if be.Pattern != pattern || be.Publish == nil {
			continue
		}
		if _, ok := be.Publish.triggers[name]; ok {
			return be, true
		}
	}
	return nil, false
}
