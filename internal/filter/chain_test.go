package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mqtli-go/mqtli/internal/payload"
)

func TestToTextFromJSON(t *testing.T) {
	chain := Chain{ToText{}}
	p := payload.NewJSON(map[string]any{"name": "MQTli"})

	out, err := chain.Apply(p, payload.Options{})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.JSONEq(t, `{"name":"MQTli"}`, out[0].Text())
}

func TestToJsonFromText(t *testing.T) {
	chain := Chain{ToJson{}}
	p := payload.NewText(`{"name":"MQTli"}`)

	out, err := chain.Apply(p, payload.Options{})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "MQTli", out[0].Tree().(map[string]any)["name"])
}

func TestToUpper(t *testing.T) {
	chain := Chain{ToUpper{}}
	p := payload.NewText("MqTli")

	out, err := chain.Apply(p, payload.Options{})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "MQTLI", out[0].Text())
}

func TestExtractJsonSingleValue(t *testing.T) {
	chain := Chain{ExtractJson{Path: "$.name"}}
	p := payload.NewJSON(map[string]any{"name": "MQTli"})

	out, err := chain.Apply(p, payload.Options{})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "MQTli", out[0].Tree())
}

func TestExtractJsonFanOut(t *testing.T) {
	chain := Chain{ExtractJson{Path: "$.items[*].name"}}
	p := payload.NewJSON(map[string]any{
		"items": []any{
			map[string]any{"name": "a"},
			map[string]any{"name": "b"},
		},
	})

	out, err := chain.Apply(p, payload.Options{})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].Tree())
	assert.Equal(t, "b", out[1].Tree())
}

func TestChainEmptyIsIdentity(t *testing.T) {
	var chain Chain
	p := payload.NewText("unchanged")

	out, err := chain.Apply(p, payload.Options{})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, p, out[0])
}

func TestChainAbortsOnCoercionFailure(t *testing.T) {
	chain := Chain{ToJson{}}
	p := payload.NewText("not json")

	_, err := chain.Apply(p, payload.Options{})
	require.Error(t, err)
}

func TestPrependAppend(t *testing.T) {
	chain := Chain{Prepend{Value: ">> "}, Append{Value: " <<"}}
	p := payload.NewText("core")

	out, err := chain.Apply(p, payload.Options{})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, ">> core <<", out[0].Text())
}
