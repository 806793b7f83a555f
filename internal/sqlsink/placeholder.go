package sqlsink

import (
	"fmt"
	"regexp"
	"time"

	"github.com/mqtli-go/mqtli/internal/sparkplug"
)

var placeholderPattern = regexp.MustCompile(`\{\{(\w+)\}\}`)

// DispatchContext is the `(topic, payload, qos, retain, now)` tuple spec.md
// §4.7 expands placeholders against.
type DispatchContext struct {
	Topic        string
	QoS          byte
	Retain       bool
	Now          time.Time
	PayloadBytes []byte

	// Populated by the caller when Topic parses as a Sparkplug topic.
	SparkplugTopic *sparkplug.Topic
	// Populated for STATE topics, decoded from the JSON payload.
	HostOnline    bool
	HostTimestamp uint64
}

// metricBinding carries the per-iteration `{{sp_metric_name}}` /
// `{{sp_metric_value}}` values for one fan-out statement.
type metricBinding struct {
	name  string
	value []byte
}

// Statement is one expanded, ready-to-execute SQL statement plus its bound
// arguments in positional order.
type Statement struct {
	SQL  string
	Args []any
}

// Expand renders tmpl against ctx, binding the given metric (nil for
// non-Sparkplug or non-per-metric dispatch). `{{payload}}` and
// `{{sp_metric_value}}` become driver-specific parameter markers; every
// other placeholder is a literal text substitution.
func Expand(tmpl string, driver Driver, ctx DispatchContext, metric *metricBinding) Statement {
	literals := literalValues(ctx, metric)

	var args []any
	sql := placeholderPattern.ReplaceAllStringFunc(tmpl, func(token string) string {
		name := placeholderPattern.FindStringSubmatch(token)[1]

		switch name {
		case "payload":
			args = append(args, ctx.PayloadBytes)
			return driver.nextMarker(len(args))
		case "sp_metric_value":
			if metric != nil {
				args = append(args, metric.value)
			} else {
				args = append(args, []byte(nil))
			}
			return driver.nextMarker(len(args))
		default:
			if v, ok := literals[name]; ok {
				return v
			}
			return token // unknown placeholder left untouched
		}
	})

	return Statement{SQL: sql, Args: args}
}

func literalValues(ctx DispatchContext, metric *metricBinding) map[string]string {
	retain := "0"
	if ctx.Retain {
		retain = "1"
	}

	m := map[string]string{
		"topic":              ctx.Topic,
		"retain":             retain,
		"qos":                fmt.Sprintf("%d", ctx.QoS),
		"created_at":         fmt.Sprintf("%d", ctx.Now.Unix()),
		"created_at_millis":  fmt.Sprintf("%d", ctx.Now.UnixMilli()),
		"created_at_iso":     ctx.Now.UTC().Format("2006-01-02 15:04:05.000"),
		"sp_version":         "",
		"sp_message_type":    "",
		"sp_group_id":        "",
		"sp_edge_node_id":    "",
		"sp_device_id":       "",
		"sp_host_id":         "",
		"sp_metric_level":    "null",
		"sp_host_online":     "",
		"sp_host_timestamp":  "",
		"sp_metric_name":     "",
	}

	if t := ctx.SparkplugTopic; t != nil {
		m["sp_version"] = sparkplug.TopicVersion
		m["sp_message_type"] = string(t.MessageType)
		if t.IsHostApplication {
			m["sp_host_id"] = t.HostID
			m["sp_host_online"] = fmt.Sprintf("%v", ctx.HostOnline)
			m["sp_host_timestamp"] = fmt.Sprintf("%d", ctx.HostTimestamp)
		} else {
			m["sp_group_id"] = t.GroupID
			m["sp_edge_node_id"] = t.EdgeNodeID
			m["sp_device_id"] = t.DeviceID
			if len(t.MetricLevels) > 0 {
				m["sp_metric_level"] = "'" + joinSlash(t.MetricLevels) + "'"
			}
		}
	}

	if metric != nil {
		m["sp_metric_name"] = metric.name
	}

	return m
}

func joinSlash(parts []string) string {
	out := parts[0]
	for _, p := range parts[1:] {
		out += "/" + p
	}
	return out
}
