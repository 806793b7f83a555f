package output

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mqtli-go/mqtli/internal/sparkplug"
	"github.com/mqtli-go/mqtli/internal/sqlsink"
)

func TestConsoleEmitWritesLine(t *testing.T) {
	var buf bytes.Buffer
	c := Console{Writer: &buf}

	err := c.Emit(context.Background(), Emission{Bytes: []byte("hello")})
	require.NoError(t, err)
	assert.Equal(t, "hello\n", buf.String())
}

func TestFileOverwriteTruncatesOnceThenAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	f := NewFile(path, true, "")

	require.NoError(t, f.Emit(context.Background(), Emission{Bytes: []byte("one")}))
	require.NoError(t, f.Emit(context.Background(), Emission{Bytes: []byte("two")}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", string(data))
}

func TestFileNoOverwriteAppendsAcrossRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, os.WriteFile(path, []byte("existing\n"), 0o644))

	f := NewFile(path, false, "")
	require.NoError(t, f.Emit(context.Background(), Emission{Bytes: []byte("new")}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "existing\nnew\n", string(data))
}

type stubPublisher struct {
	topic   string
	qos     byte
	retain  bool
	payload []byte
}

func (s *stubPublisher) Publish(_ context.Context, topic string, qos byte, retain bool, payload []byte) error {
	s.topic, s.qos, s.retain, s.payload = topic, qos, retain, payload
	return nil
}

func TestTopicEmitPublishesToConfiguredTopic(t *testing.T) {
	pub := &stubPublisher{}
	out := Topic{Publisher: pub, Topic: "mqtli/republish", QoS: 1, Retain: true}

	require.NoError(t, out.Emit(context.Background(), Emission{Bytes: []byte("payload")}))
	assert.Equal(t, "mqtli/republish", pub.topic)
	assert.Equal(t, byte(1), pub.qos)
	assert.True(t, pub.retain)
	assert.Equal(t, []byte("payload"), pub.payload)
}

func TestSqlEmitExecutesStatement(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "mqtli.db")
	sink, err := sqlsink.Open(sqlsink.DriverSQLite, dbPath, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sink.Close() })

	out := Sql{Sink: sink, InsertStatement: "SELECT 1"}
	require.NoError(t, out.Emit(context.Background(), Emission{
		Dispatch: sqlsink.DispatchContext{Topic: "mqtli/test", Now: time.Unix(0, 0)},
	}))
}

func TestSqlEmitPropagatesExecError(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "mqtli.db")
	sink, err := sqlsink.Open(sqlsink.DriverSQLite, dbPath, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sink.Close() })

	out := Sql{Sink: sink, InsertStatement: "INSERT INTO does_not_exist(topic) VALUES ({{topic}})"}
	err = out.Emit(context.Background(), Emission{
		Dispatch: sqlsink.DispatchContext{Topic: "mqtli/test", Now: time.Unix(0, 0)},
	})
	assert.Error(t, err)
}

func TestSqlEmitPerMetricFanOut(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "mqtli.db")
	sink, err := sqlsink.Open(sqlsink.DriverSQLite, dbPath, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sink.Close() })

	out := Sql{Sink: sink, InsertStatement: "SELECT {{sp_metric_value}}"}
	metrics := []sparkplug.Metric{{Name: "temperature", Value: float64(23.5)}}
	require.NoError(t, out.Emit(context.Background(), Emission{
		Dispatch: sqlsink.DispatchContext{Topic: "mqtli/test", Now: time.Unix(0, 0)},
		Metrics:  metrics,
	}))
}

func TestNullEmitAlwaysSucceeds(t *testing.T) {
	assert.NoError(t, Null{}.Emit(context.Background(), Emission{Bytes: []byte("anything")}))
}

func TestNewDispatchContextCarriesFields(t *testing.T) {
	now := time.Unix(1700000000, 0)
	dctx := NewDispatchContext("mqtli/test", 2, true, now, []byte("payload"))
	assert.Equal(t, "mqtli/test", dctx.Topic)
	assert.Equal(t, byte(2), dctx.QoS)
	assert.True(t, dctx.Retain)
	assert.Equal(t, now, dctx.Now)
	assert.Equal(t, []byte("payload"), dctx.PayloadBytes)
}
