package sqlsink

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mqtli-go/mqtli/internal/sparkplug"
)

func TestExpandBasicPlaceholders(t *testing.T) {
	ctx := DispatchContext{
		Topic:  "mqtli/test",
		QoS:    1,
		Retain: true,
		Now:    time.Unix(1700000000, 0),
	}

	st := Expand(`INSERT INTO log(topic, qos, retain, payload) VALUES ("{{topic}}", {{qos}}, {{retain}}, {{payload}})`,
		DriverSQLite, ctx, nil)

	assert.Equal(t, `INSERT INTO log(topic, qos, retain, payload) VALUES ("mqtli/test", 1, 1, ?)`, st.SQL)
	assert.Len(t, st.Args, 1)
}

func TestExpandPostgresMarkersIncrementMonotonically(t *testing.T) {
	ctx := DispatchContext{Topic: "t", Now: time.Unix(0, 0)}

	st := Expand(`INSERT INTO log(topic, payload, again) VALUES ({{topic}}, {{payload}}, {{payload}})`,
		DriverPostgreSQL, ctx, nil)

	assert.Contains(t, st.SQL, "$1")
	assert.Contains(t, st.SQL, "$2")
	assert.Len(t, st.Args, 2)
}

func TestExpandSparkplugPerMetricFanOut(t *testing.T) {
	topic, err := sparkplug.ParseTopic("spBv1.0/GroupA/NDATA/Edge01")
	assert.NoError(t, err)

	ctx := DispatchContext{
		Topic:          topic.String(),
		Now:            time.Unix(0, 0),
		SparkplugTopic: &topic,
	}

	metrics := []sparkplug.Metric{
		{Name: "temperature", Value: float64(23.5)},
		{Name: "ok", Value: true},
	}

	statements := BuildStatements(
		`INSERT INTO sp_metrics(group_id,edge,metric,value) VALUES("{{sp_group_id}}","{{sp_edge_node_id}}","{{sp_metric_name}}",{{sp_metric_value}});`,
		DriverSQLite, ctx, metrics)

	assert.Len(t, statements, 2)
	assert.Contains(t, statements[0].SQL, `"GroupA","Edge01","temperature"`)
	assert.Contains(t, statements[1].SQL, `"GroupA","Edge01","ok"`)
}

func TestExpandNonSparkplugTopicLeavesPlaceholdersEmpty(t *testing.T) {
	ctx := DispatchContext{Topic: "mqtli/test", Now: time.Unix(0, 0)}

	st := Expand(`SELECT '{{sp_group_id}}', {{sp_metric_level}}`, DriverSQLite, ctx, nil)
	assert.Equal(t, `SELECT '', null`, st.SQL)
}
