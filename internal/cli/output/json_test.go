package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testStruct struct {
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintJSON(&buf, testStruct{Name: "test", Value: 42}))

	assert.Contains(t, buf.String(), `"name": "test"`)
	assert.Contains(t, buf.String(), `"value": 42`)
}

func TestPrintJSONCompact(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintJSONCompact(&buf, testStruct{Name: "<a&b>", Value: 42}))

	assert.Equal(t, "{\"name\":\"<a&b>\",\"value\":42}\n", buf.String())
}
