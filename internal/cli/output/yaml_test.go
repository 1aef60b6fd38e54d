package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/stellar-xdr/pkg/types"
)

func TestPrintYAML(t *testing.T) {
	t.Run("PlainStruct", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, PrintYAML(&buf, testStruct{Name: "test", Value: 42}))

		assert.Contains(t, buf.String(), "name: test")
		assert.Contains(t, buf.String(), "value: 42")
	})

	t.Run("UnionKeepsJSONShape", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, PrintYAML(&buf, types.NewMemoID(7)))

		assert.Equal(t, "id: \"7\"\n", buf.String())
	})

	t.Run("VoidArm", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, PrintYAML(&buf, types.Memo{Type: types.MemoTypeNone}))

		assert.Equal(t, "none\n", buf.String())
	})

	t.Run("StructViaJSONShape", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, PrintJSONAsYAML(&buf, types.TimeBounds{MinTime: 1, MaxTime: 2}))

		assert.Equal(t, "min_time: \"1\"\nmax_time: \"2\"\n", buf.String())
	})

	t.Run("ValuePrinter", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewValuePrinter(&buf, FormatYAML).Print(types.TimeBounds{MaxTime: 9}))

		assert.Contains(t, buf.String(), "max_time: \"9\"")
	})
}
