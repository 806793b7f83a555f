package sparkplug

import (
	"errors"
	"strings"
)

// TopicVersion is the fixed Sparkplug-B namespace segment.
const TopicVersion = "spBv1.0"

// MessageType enumerates the Sparkplug-B message types carried in a topic's
// message-type segment, per spec.md §4.2's Sparkplug Topic Grammar.
type MessageType string

const (
	MessageNBIRTH MessageType = "NBIRTH"
	MessageNDEATH MessageType = "NDEATH"
	MessageNDATA  MessageType = "NDATA"
	MessageNCMD   MessageType = "NCMD"
	MessageDBIRTH MessageType = "DBIRTH"
	MessageDDEATH MessageType = "DDEATH"
	MessageDDATA  MessageType = "DDATA"
	MessageDCMD   MessageType = "DCMD"
	MessageSTATE  MessageType = "STATE"
)

func parseMessageType(s string) (MessageType, bool) {
	switch MessageType(s) {
	case MessageNBIRTH, MessageNDEATH, MessageNDATA, MessageNCMD,
		MessageDBIRTH, MessageDDEATH, MessageDDATA, MessageDCMD, MessageSTATE:
		return MessageType(s), true
	default:
		return "", false
	}
}

var (
	ErrNotEnoughSegments  = errors.New("sparkplug: topic has too few segments")
	ErrWrongVersion       = errors.New("sparkplug: topic namespace is not spBv1.0")
	ErrInvalidMessageType = errors.New("sparkplug: topic message type is not valid")
	ErrInvalidSegment     = errors.New("sparkplug: topic segment contains a wildcard character")
)

// Topic is a parsed Sparkplug topic, one of the two shapes in spec.md
// §4.2/§4.8: an edge-node/device topic, or a 3-segment STATE (host
// application) topic.
type Topic struct {
	IsHostApplication bool

	// edge-node shape
	GroupID      string
	EdgeNodeID   string
	DeviceID     string // empty if absent
	MetricLevels []string

	// shared
	MessageType MessageType

	// host-application shape
	HostID string
}

// ParseTopic parses an MQTT topic string under the Sparkplug grammar. The
// STATE variant (`spBv1.0/STATE/<host_id>`) is 3 segments with no group or
// edge node; every other message type requires at least 4 segments
// (namespace, group, message type, edge node), optionally followed by a
// device id and arbitrary metric-level segments.
func ParseTopic(topic string) (Topic, error) {
	segments := strings.Split(topic, "/")
	if len(segments) < 3 {
		return Topic{}, ErrNotEnoughSegments
	}

	if segments[1] == string(MessageSTATE) {
		if segments[0] != TopicVersion {
			return Topic{}, ErrWrongVersion
		}
		mt, ok := parseMessageType(segments[1])
		if !ok {
			return Topic{}, ErrInvalidMessageType
		}
		return Topic{
			IsHostApplication: true,
			MessageType:       mt,
			HostID:            segments[2],
		}, nil
	}

	if len(segments) < 4 {
		return Topic{}, ErrNotEnoughSegments
	}
	if segments[0] != TopicVersion {
		return Topic{}, ErrWrongVersion
	}
	if !isSegmentValid(segments[1]) {
		return Topic{}, ErrInvalidSegment
	}
	if !isSegmentValid(segments[2]) {
		return Topic{}, ErrInvalidMessageType
	}
	mt, ok := parseMessageType(segments[2])
	if !ok {
		return Topic{}, ErrInvalidMessageType
	}

	t := Topic{
		GroupID:     segments[1],
		MessageType: mt,
		EdgeNodeID:  segments[3],
	}

	if len(segments) > 4 {
		if !isSegmentValid(segments[4]) {
			return Topic{}, ErrInvalidSegment
		}
		t.DeviceID = segments[4]
	}
	if len(segments) > 5 {
		t.MetricLevels = append([]string{}, segments[5:]...)
	}

	return t, nil
}

func isSegmentValid(s string) bool {
	return !strings.ContainsAny(s, "+/#")
}

// String reconstructs the topic string, the inverse of ParseTopic.
func (t Topic) String() string {
	if t.IsHostApplication {
		return strings.Join([]string{TopicVersion, string(t.MessageType), t.HostID}, "/")
	}

	parts := []string{TopicVersion, t.GroupID, string(t.MessageType), t.EdgeNodeID}
	if t.DeviceID != "" {
		parts = append(parts, t.DeviceID)
	}
	parts = append(parts, t.MetricLevels...)
	return strings.Join(parts, "/")
}
