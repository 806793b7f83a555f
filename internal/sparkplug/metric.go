package sparkplug

import (
	"fmt"

	"github.com/jhump/protoreflect/dynamic"
)

// Metric is the Go-idiomatic projection of a decoded Sparkplug-B
// Payload.Metric, per spec.md §4.2: `{ name?, alias?, timestamp?,
// datatype, value }` where value dispatches on datatype.
type Metric struct {
	Name         string
	HasName      bool
	Alias        uint64
	HasAlias     bool
	Timestamp    uint64
	HasTimestamp bool
	Datatype     DataType
	IsNull       bool
	Value        any // int64, uint64, float32, float64, bool, string, []byte, *dynamic.Message (DataSet/Template)
}

// Bytes renders the metric's value as the byte representation the SQL sink
// binds for `{{sp_metric_value}}` (spec.md §4.7, scenario 4).
func (m Metric) Bytes() []byte {
	switch v := m.Value.(type) {
	case nil:
		return nil
	case []byte:
		return v
	case string:
		return []byte(v)
	default:
		return []byte(fmt.Sprintf("%v", v))
	}
}

func metricFromDynamic(dyn *dynamic.Message) Metric {
	m := Metric{}

	if dyn.HasFieldNumber(1) {
		m.Name, _ = dyn.GetFieldByNumber(1).(string)
		m.HasName = true
	}
	if dyn.HasFieldNumber(2) {
		m.Alias, _ = toUint64(dyn.GetFieldByNumber(2))
		m.HasAlias = true
	}
	if dyn.HasFieldNumber(3) {
		m.Timestamp, _ = toUint64(dyn.GetFieldByNumber(3))
		m.HasTimestamp = true
	}
	if dt, ok := toUint64(dyn.GetFieldByNumber(4)); ok {
		m.Datatype = DataType(dt)
	}
	if dyn.HasFieldNumber(7) {
		m.IsNull, _ = dyn.GetFieldByNumber(7).(bool)
	}

	switch m.Datatype.ValueKind() {
	case ValueInt:
		// Int8/16/32 are packed into int_value (field 10, proto type
		// uint32); Int64 is packed into long_value (field 11, proto type
		// uint64). Both need a bit-reinterpreting cast back to signed,
		// since Sparkplug stores negative values via wraparound.
		if m.Datatype == DataTypeInt64 {
			if v, ok := toUint64(dyn.GetFieldByNumber(11)); ok {
				m.Value = int64(v)
			}
		} else if v, ok := toUint32(dyn.GetFieldByNumber(10)); ok {
			m.Value = int64(int32(v))
		}
	case ValueUInt:
		// UInt8/16/32 and DateTime share int_value/long_value the same
		// way: UInt64 and DateTime use long_value (field 11), the rest
		// use int_value (field 10).
		if m.Datatype == DataTypeUInt64 || m.Datatype == DataTypeDateTime {
			if v, ok := toUint64(dyn.GetFieldByNumber(11)); ok {
				m.Value = v
			}
		} else if v, ok := toUint32(dyn.GetFieldByNumber(10)); ok {
			m.Value = uint64(v)
		}
	case ValueFloat:
		if v, ok := dyn.GetFieldByNumber(12).(float32); ok {
			m.Value = v
		}
	case ValueDouble:
		if v, ok := dyn.GetFieldByNumber(13).(float64); ok {
			m.Value = v
		}
	case ValueBool:
		if v, ok := dyn.GetFieldByNumber(14).(bool); ok {
			m.Value = v
		}
	case ValueString:
		if v, ok := dyn.GetFieldByNumber(15).(string); ok {
			m.Value = v
		}
	case ValueBytes:
		if v, ok := dyn.GetFieldByNumber(16).([]byte); ok {
			m.Value = v
		}
	case ValueDataSet:
		if v, ok := dyn.GetFieldByNumber(17).(*dynamic.Message); ok {
			m.Value = v
		}
	case ValueTemplate:
		if v, ok := dyn.GetFieldByNumber(18).(*dynamic.Message); ok {
			m.Value = v
		}
	}

	return m
}

func toUint32(v any) (uint32, bool) {
	n, ok := v.(uint32)
	return n, ok
}

func toUint64(v any) (uint64, bool) {
	switch n := v.(type) {
	case uint32:
		return uint64(n), true
	case uint64:
		return n, true
	default:
		return 0, false
	}
}
