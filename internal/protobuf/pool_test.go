package protobuf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `
syntax = "proto3";
package test;

message Inner {
  string kind = 1;
}

message Response {
  int32 distance = 1;
  Inner inner = 2;
  int32 position = 3;
  bytes raw = 4;
}
`

func writeSchema(t *testing.T) (dir string, file string) {
	t.Helper()
	dir = t.TempDir()
	file = filepath.Join(dir, "response.proto")
	require.NoError(t, os.WriteFile(file, []byte(testSchema), 0o644))
	return dir, "response.proto"
}

func TestPoolResolveAndDecode(t *testing.T) {
	dir, file := writeSchema(t)

	pool, err := LoadDescriptorSet([]string{dir}, []string{file})
	require.NoError(t, err)

	d, err := pool.Resolve("test.Response")
	require.NoError(t, err)
	assert.Equal(t, "test.Response", d.FullName())

	// 08 2d -> field 1 varint 45; 12 08 0a 06 6b696e646f66 -> field2 message{field1 string "kindof"}
	// 18 02 -> field3 varint 2; 22 02 4142 -> field4 bytes "AB"
	wire := []byte{0x08, 0x2d, 0x12, 0x08, 0x0a, 0x06, 0x6b, 0x69, 0x6e, 0x64, 0x6f, 0x66, 0x18, 0x02, 0x22, 0x02, 0x41, 0x42}

	codec := Codec{}
	msg, err := codec.Decode(d, "test.Response", wire)
	require.NoError(t, err)
	assert.Equal(t, "test.Response", msg.MessageName())

	text := msg.Text()
	assert.Contains(t, text, "distance = 45 (Int32)")
	assert.Contains(t, text, "kindof")
	assert.Contains(t, text, "position = 2 (Int32)")

	roundTripped, err := codec.Decode(d, "test.Response", wire)
	require.NoError(t, err)
	back, err := roundTripped.Wire()
	require.NoError(t, err)
	assert.Equal(t, wire, back)
}

func TestPoolResolveUnknownMessage(t *testing.T) {
	dir, file := writeSchema(t)
	pool, err := LoadDescriptorSet([]string{dir}, []string{file})
	require.NoError(t, err)

	_, err = pool.Resolve("test.DoesNotExist")
	require.Error(t, err)
}
