package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableData(t *testing.T) {
	table := NewTableData("Name", "Kind")
	assert.Equal(t, []string{"Name", "Kind"}, table.Headers())
	assert.Empty(t, table.Rows())

	table.AddRow("Memo", "union")
	table.AddRow("Hash", "opaque")
	require.Len(t, table.Rows(), 2)
	assert.Equal(t, []string{"Hash", "opaque"}, table.Rows()[1])
}

func TestPrintTable(t *testing.T) {
	table := NewTableData("Name", "Kind")
	table.AddRow("Memo", "union")

	var buf bytes.Buffer
	require.NoError(t, PrintTable(&buf, table))

	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "KIND")
	assert.Contains(t, out, "Memo")
	assert.Contains(t, out, "union")
}

func TestSimpleTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SimpleTable(&buf, [][2]string{{"version", "v1"}, {"commit", "abc"}}))

	assert.Contains(t, buf.String(), "version")
	assert.Contains(t, buf.String(), "abc")
}
