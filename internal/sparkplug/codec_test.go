package sparkplug

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const humidityHex = "08fa8af3a20212170a0868756d696469747918fb8af3a202200965cdcc8f42188c01"

func TestCodecDecodeHumidityMetric(t *testing.T) {
	wire, err := hex.DecodeString(humidityHex)
	require.NoError(t, err)

	codec := Codec{}
	decoded, err := codec.Decode(wire)
	require.NoError(t, err)

	msg := decoded.(Message)
	metrics := msg.Metrics()
	require.Len(t, metrics, 1)
	assert.Equal(t, "humidity", metrics[0].Name)
	assert.Equal(t, DataTypeFloat, metrics[0].Datatype)
	assert.InDelta(t, 71.9, metrics[0].Value.(float32), 0.01)

	seq, ok := msg.Seq()
	require.True(t, ok)
	assert.Equal(t, uint64(140), seq)

	back, err := decoded.Wire()
	require.NoError(t, err)
	assert.Equal(t, wire, back)
}

func TestCodecFromTree(t *testing.T) {
	tree := map[string]any{
		"seq":     "140",
		"metrics": []any{},
	}

	codec := Codec{}
	msg, err := codec.FromTree(tree)
	require.NoError(t, err)
	assert.NotNil(t, msg)
}

func TestCodecDecodeIntegerMetrics(t *testing.T) {
	tree := map[string]any{
		"metrics": []any{
			// Int32: negative values travel as the uint32 two's-complement
			// bit pattern in int_value (-5 == 4294967291).
			map[string]any{"name": "setpoint", "datatype": 3, "intValue": 4294967291},
			// Int64 is carried in long_value, not int_value (-5 == 2^64-5).
			map[string]any{"name": "offset", "datatype": 4, "longValue": uint64(18446744073709551611)},
			// UInt32 is carried in int_value, not long_value.
			map[string]any{"name": "counter", "datatype": 7, "intValue": 4000000000},
			// UInt64 is carried in long_value.
			map[string]any{"name": "total", "datatype": 8, "longValue": uint64(10000000000)},
		},
	}

	codec := Codec{}
	msg, err := codec.FromTree(tree)
	require.NoError(t, err)

	metrics := msg.(Message).Metrics()
	require.Len(t, metrics, 4)

	assert.Equal(t, "setpoint", metrics[0].Name)
	assert.Equal(t, int64(-5), metrics[0].Value)

	assert.Equal(t, "offset", metrics[1].Name)
	assert.Equal(t, int64(-5), metrics[1].Value)

	assert.Equal(t, "counter", metrics[2].Name)
	assert.Equal(t, uint64(4000000000), metrics[2].Value)

	assert.Equal(t, "total", metrics[3].Name)
	assert.Equal(t, uint64(10000000000), metrics[3].Value)
}

func TestNetworkAliasResolutionAndStaleDrop(t *testing.T) {
	net := NewNetwork(nil)

	birthTree := map[string]any{
		"metrics": []any{
			map[string]any{"name": "temperature", "alias": "1", "datatype": 10, "doubleValue": 23.5},
		},
	}
	codec := Codec{}
	birthMsg, err := codec.FromTree(birthTree)
	require.NoError(t, err)

	topic, err := ParseTopic("spBv1.0/GroupA/NBIRTH/Edge01")
	require.NoError(t, err)
	net.Handle(topic, birthMsg.(Message))

	dataTree := map[string]any{
		"metrics": []any{
			map[string]any{"alias": "1", "datatype": 10, "doubleValue": 24.1},
			map[string]any{"alias": "99", "datatype": 10, "doubleValue": 1.0},
		},
	}
	dataMsg, err := codec.FromTree(dataTree)
	require.NoError(t, err)

	dataTopic, err := ParseTopic("spBv1.0/GroupA/NDATA/Edge01")
	require.NoError(t, err)
	rendered := net.Handle(dataTopic, dataMsg.(Message))

	assert.Contains(t, rendered, "temperature")
	assert.NotContains(t, rendered, "alias=99")
}
