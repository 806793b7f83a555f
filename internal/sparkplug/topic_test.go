package sparkplug

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTopicEdgeNode(t *testing.T) {
	topic, err := ParseTopic("spBv1.0/GroupA/NDATA/Edge01")
	require.NoError(t, err)
	assert.False(t, topic.IsHostApplication)
	assert.Equal(t, "GroupA", topic.GroupID)
	assert.Equal(t, MessageNDATA, topic.MessageType)
	assert.Equal(t, "Edge01", topic.EdgeNodeID)
	assert.Empty(t, topic.DeviceID)
	assert.Equal(t, "spBv1.0/GroupA/NDATA/Edge01", topic.String())
}

func TestParseTopicEdgeNodeWithDeviceAndMetricLevels(t *testing.T) {
	topic, err := ParseTopic("spBv1.0/GroupA/DDATA/Edge01/Device01/line1/sensor2")
	require.NoError(t, err)
	assert.Equal(t, "Device01", topic.DeviceID)
	assert.Equal(t, []string{"line1", "sensor2"}, topic.MetricLevels)
}

func TestParseTopicState(t *testing.T) {
	topic, err := ParseTopic("spBv1.0/STATE/scada01")
	require.NoError(t, err)
	assert.True(t, topic.IsHostApplication)
	assert.Equal(t, "scada01", topic.HostID)
	assert.Equal(t, MessageSTATE, topic.MessageType)
	assert.Equal(t, "spBv1.0/STATE/scada01", topic.String())
}

func TestParseTopicTooShort(t *testing.T) {
	_, err := ParseTopic("spBv1.0/GroupA")
	assert.ErrorIs(t, err, ErrNotEnoughSegments)
}

func TestParseTopicWrongVersion(t *testing.T) {
	_, err := ParseTopic("spAv2.0/GroupA/NDATA/Edge01")
	assert.ErrorIs(t, err, ErrWrongVersion)
}

func TestParseTopicInvalidMessageType(t *testing.T) {
	_, err := ParseTopic("spBv1.0/GroupA/BOGUS/Edge01")
	assert.ErrorIs(t, err, ErrInvalidMessageType)
}
