package input

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/stellar-xdr/internal/compression"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestResolve(t *testing.T) {
	t.Run("NoArgsIsStdin", func(t *testing.T) {
		inputs := Resolve(nil, strings.NewReader("AAAAAQ=="))
		require.Len(t, inputs, 1)
		assert.Equal(t, KindStdin, inputs[0].Kind)
		assert.Equal(t, "stdin", inputs[0].Label)

		data, err := inputs[0].ReadAll(compression.Auto)
		require.NoError(t, err)
		assert.Equal(t, "AAAAAQ==", string(data))
	})

	t.Run("FilesAndLiterals", func(t *testing.T) {
		path := writeFile(t, "value.xdr", []byte{0, 0, 0, 1})
		inputs := Resolve([]string{path, "AAAAAQ==", t.TempDir()}, nil)
		require.Len(t, inputs, 3)

		assert.Equal(t, KindFile, inputs[0].Kind)
		assert.Equal(t, path, inputs[0].Label)
		assert.Equal(t, KindLiteral, inputs[1].Kind)
		assert.Equal(t, "arg[1]", inputs[1].Label)
		assert.Equal(t, KindLiteral, inputs[2].Kind, "directories are not files")
	})
}

func TestOpen(t *testing.T) {
	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	_, err := zw.Write([]byte{0, 0, 0, 7})
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	t.Run("GzipFileAutoDetected", func(t *testing.T) {
		path := writeFile(t, "ledger.xdr.gz", gz.Bytes())
		src, err := Resolve([]string{path}, nil)[0].Open(compression.Auto)
		require.NoError(t, err)
		defer func() { _ = src.Close() }()

		assert.Equal(t, compression.Gzip, src.Compression)
		data, err := io.ReadAll(src)
		require.NoError(t, err)
		assert.Equal(t, []byte{0, 0, 0, 7}, data)
	})

	t.Run("CompressionNoneKeepsBytes", func(t *testing.T) {
		path := writeFile(t, "raw.bin", gz.Bytes())
		data, err := Resolve([]string{path}, nil)[0].ReadAll(compression.None)
		require.NoError(t, err)
		assert.Equal(t, gz.Bytes(), data)
	})

	t.Run("LiteralNotAutoDetected", func(t *testing.T) {
		src, err := Literal("lit", gz.Bytes()).Open(compression.Auto)
		require.NoError(t, err)
		assert.Equal(t, compression.None, src.Compression)
		require.NoError(t, src.Close())
	})

	t.Run("LiteralExplicitCodec", func(t *testing.T) {
		data, err := Literal("lit", gz.Bytes()).ReadAll(compression.Gzip)
		require.NoError(t, err)
		assert.Equal(t, []byte{0, 0, 0, 7}, data)
	})

	t.Run("MissingFile", func(t *testing.T) {
		in := Input{Label: "gone", Kind: KindFile, path: filepath.Join(t.TempDir(), "gone")}
		_, err := in.Open(compression.Auto)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("CorruptCompressedFile", func(t *testing.T) {
		path := writeFile(t, "bad.gz", []byte{0x1f, 0x8b, 0xff})
		_, err := Resolve([]string{path}, nil)[0].Open(compression.Auto)
		assert.Error(t, err)
	})
}
