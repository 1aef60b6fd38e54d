package commands

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/stellar-xdr/cmd/stellar-xdr/cmdutil"
	typescmd "github.com/marmos91/stellar-xdr/cmd/stellar-xdr/commands/types"
	"github.com/marmos91/stellar-xdr/internal/cli/prompt"
	"github.com/marmos91/stellar-xdr/pkg/types"
)

const (
	memoTextHello = "AAAAAQAAAAVoZWxsbwAAAA=="
	memoID7       = "AAAAAgAAAAAAAAAH"
	memoID9       = "AAAAAgAAAAAAAAAJ"
	memoNone      = "AAAAAA=="
	// memoTextHello followed by memoID7 as one base64 stream.
	memoStream = "AAAAAQAAAAVoZWxsbwAAAAAAAAIAAAAAAAAABw=="
)

// ============================================================================
// Test Helper Functions
// ============================================================================

// resetFlags restores every flag of cmd and its children to its default.
// pflag keeps values and Changed marks between Execute calls.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// run executes the root command with args and returns what it wrote to
// stdout. The configuration directory points at an empty temp dir.
func run(t *testing.T, stdin []byte, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	root := GetRootCmd()
	resetFlags(root)

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(bytes.NewReader(stdin))
	root.SetArgs(args)

	err := Execute()
	return stdout.String(), err
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func memoStreamBytes() []byte {
	var b []byte
	b = binary.BigEndian.AppendUint32(b, 1)
	b = binary.BigEndian.AppendUint32(b, 5)
	b = append(b, "hello\x00\x00\x00"...)
	b = binary.BigEndian.AppendUint32(b, 2)
	b = binary.BigEndian.AppendUint64(b, 7)
	return b
}

// ============================================================================
// Decode Tests
// ============================================================================

func TestDecode(t *testing.T) {
	t.Run("SingleBase64", func(t *testing.T) {
		out, err := run(t, nil, "decode", "--type", "Memo", "--input", "single-base64", memoTextHello, memoID7, memoNone)
		require.NoError(t, err)
		assert.Equal(t, "{\"text\":\"hello\"}\n{\"id\":\"7\"}\n\"none\"\n", out)
	})

	t.Run("DefaultStreamBase64", func(t *testing.T) {
		out, err := run(t, nil, "decode", "--type", "Memo", memoStream)
		require.NoError(t, err)
		assert.Equal(t, "{\"text\":\"hello\"}\n{\"id\":\"7\"}\n", out)
	})

	t.Run("Stdin", func(t *testing.T) {
		out, err := run(t, []byte(memoTextHello+"\n"), "decode", "--type", "Memo", "--input", "single-base64")
		require.NoError(t, err)
		assert.Equal(t, "{\"text\":\"hello\"}\n", out)
	})

	t.Run("YAMLDocuments", func(t *testing.T) {
		out, err := run(t, nil, "decode", "--type", "Memo", "-o", "yaml", memoStream)
		require.NoError(t, err)
		assert.Equal(t, "text: hello\n---\nid: \"7\"\n", out)
	})

	t.Run("GzipFileAutoDetected", func(t *testing.T) {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		_, err := zw.Write(memoStreamBytes())
		require.NoError(t, err)
		require.NoError(t, zw.Close())
		path := writeFile(t, "memos.xdr.gz", buf.Bytes())

		out, err := run(t, nil, "decode", "--type", "Memo", "--input", "stream", path)
		require.NoError(t, err)
		assert.Equal(t, "{\"text\":\"hello\"}\n{\"id\":\"7\"}\n", out)
	})

	t.Run("Framed", func(t *testing.T) {
		record := binary.BigEndian.AppendUint32(nil, 0x80000000|12)
		record = append(record, memoStreamBytes()[16:]...)
		path := writeFile(t, "memos.xdr", record)

		out, err := run(t, nil, "decode", "--type", "Memo", "--input", "stream-framed", path)
		require.NoError(t, err)
		assert.Equal(t, "{\"id\":\"7\"}\n", out)
	})

	t.Run("TrailingBytesRejected", func(t *testing.T) {
		_, err := run(t, nil, "decode", "--type", "Memo", "--input", "single-base64", memoStream)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error decoding XDR")
	})

	t.Run("StopsAtFirstFailure", func(t *testing.T) {
		out, err := run(t, nil, "decode", "--type", "Memo", "--input", "single-base64", memoNone, "!!!!", memoID7)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "arg[1]")
		assert.Equal(t, "\"none\"\n", out)
	})

	t.Run("KeepGoing", func(t *testing.T) {
		out, err := run(t, nil, "decode", "--type", "Memo", "--input", "single-base64", "--keep-going", memoNone, "!!!!", memoID7, "AAAA")
		require.Error(t, err)
		assert.Equal(t, "\"none\"\n{\"id\":\"7\"}\n", out)
		assert.Contains(t, err.Error(), "2 errors occurred")
		assert.Contains(t, err.Error(), "arg[1]")
		assert.Contains(t, err.Error(), "arg[3]")
	})

	t.Run("UnknownType", func(t *testing.T) {
		_, err := run(t, nil, "decode", "--type", "Nope", memoNone)
		require.ErrorIs(t, err, types.ErrUnknownType)
		assert.Contains(t, err.Error(), "choose one of")
	})

	t.Run("TypeRequired", func(t *testing.T) {
		_, err := run(t, nil, "decode", memoNone)
		assert.Error(t, err)
	})

	t.Run("LenLimitFlag", func(t *testing.T) {
		_, err := run(t, nil, "decode", "--type", "Memo", "--input", "single-base64", "--len-limit", "4", memoTextHello)
		assert.Error(t, err)
	})
}

// ============================================================================
// Encode Tests
// ============================================================================

func TestEncode(t *testing.T) {
	t.Run("SingleBase64", func(t *testing.T) {
		out, err := run(t, nil, "encode", "--type", "Memo", `{"text":"hello"}`, `{"id":"7"}`)
		require.NoError(t, err)
		assert.Equal(t, memoTextHello+"\n"+memoID7+"\n", out)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		decoded, err := run(t, nil, "decode", "--type", "Memo", "--input", "single-base64", memoID9)
		require.NoError(t, err)

		out, err := run(t, []byte(decoded), "encode", "--type", "Memo")
		require.NoError(t, err)
		assert.Equal(t, memoID9+"\n", out)
	})

	t.Run("StreamFramed", func(t *testing.T) {
		out, err := run(t, nil, "encode", "--type", "Memo", "-o", "stream-framed", `{"id":"7"} {"id":"9"}`)
		require.NoError(t, err)

		want := binary.BigEndian.AppendUint32(nil, 0x80000000|12)
		want = append(want, memoStreamBytes()[16:]...)
		want = binary.BigEndian.AppendUint32(want, 0x80000000|12)
		want = binary.BigEndian.AppendUint32(want, 2)
		want = binary.BigEndian.AppendUint64(want, 9)
		assert.Equal(t, want, []byte(out))
	})

	t.Run("Stream", func(t *testing.T) {
		out, err := run(t, nil, "encode", "--type", "Memo", "-o", "stream", `{"text":"hello"}`+"\n"+`{"id":"7"}`)
		require.NoError(t, err)
		assert.Equal(t, memoStreamBytes(), []byte(out))
	})

	t.Run("GzipOutput", func(t *testing.T) {
		out, err := run(t, nil, "encode", "--type", "Memo", "-o", "stream", "--compression", "gzip", `{"id":"7"}`)
		require.NoError(t, err)
		zr, err := gzip.NewReader(strings.NewReader(out))
		require.NoError(t, err)
		var plain bytes.Buffer
		_, err = plain.ReadFrom(zr)
		require.NoError(t, err)
		assert.Equal(t, memoStreamBytes()[16:], plain.Bytes())
	})

	t.Run("TrailingValueRejected", func(t *testing.T) {
		_, err := run(t, nil, "encode", "--type", "Memo", `{"id":"7"} {"id":"9"}`)
		assert.Error(t, err)
	})

	t.Run("CompressionWithBase64Rejected", func(t *testing.T) {
		_, err := run(t, nil, "encode", "--type", "Memo", "--compression", "zstd", `"none"`)
		assert.Error(t, err)
	})

	t.Run("AutoCompressionRejected", func(t *testing.T) {
		_, err := run(t, nil, "encode", "--type", "Memo", "-o", "stream", "--compression", "auto", `"none"`)
		assert.Error(t, err)
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		_, err := run(t, nil, "encode", "--type", "Memo", `{"color":"red"}`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error decoding JSON")
	})
}

// ============================================================================
// Guess Tests
// ============================================================================

func TestGuess(t *testing.T) {
	t.Run("FindsMemo", func(t *testing.T) {
		out, err := run(t, nil, "guess", memoTextHello)
		require.NoError(t, err)
		assert.Contains(t, strings.Split(out, "\n"), "Memo")
	})

	t.Run("Stream", func(t *testing.T) {
		out, err := run(t, nil, "guess", "--input", "stream-base64", memoStream)
		require.NoError(t, err)
		assert.Contains(t, strings.Split(out, "\n"), "Memo")
	})

	t.Run("NoMatch", func(t *testing.T) {
		out, err := run(t, nil, "guess", "AA==")
		assert.ErrorIs(t, err, cmdutil.ErrNoMatch)
		assert.Empty(t, out)
	})

	t.Run("CertaintyMustBePositive", func(t *testing.T) {
		_, err := run(t, nil, "guess", "--input", "stream-base64", "--certainty", "0", memoStream)
		assert.Error(t, err)
	})
}

// ============================================================================
// Compare Tests
// ============================================================================

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want string
	}{
		{"Less", memoID7, memoID9, "-1\n"},
		{"Equal", memoID7, memoID7, "0\n"},
		{"Greater", memoID9, memoID7, "1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, nil, "compare", "--type", "Memo", tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}

	t.Run("NeedsTwoInputs", func(t *testing.T) {
		_, err := run(t, nil, "compare", "--type", "Memo", memoID7)
		assert.Error(t, err)
	})
}

// ============================================================================
// Types and Version Tests
// ============================================================================

func TestTypes(t *testing.T) {
	t.Run("ListJSON", func(t *testing.T) {
		out, err := run(t, nil, "types", "list", "-o", "json")
		require.NoError(t, err)

		var list []typescmd.TypeInfo
		require.NoError(t, json.Unmarshal([]byte(out), &list))
		require.Len(t, list, len(types.Variants()))
		assert.Contains(t, list, typescmd.TypeInfo{Name: "Memo", GoType: "types.Memo"})
	})

	t.Run("ListTable", func(t *testing.T) {
		out, err := run(t, nil, "types", "list")
		require.NoError(t, err)
		assert.Contains(t, out, "GO TYPE")
		assert.Contains(t, out, "Memo")
	})

	t.Run("Schema", func(t *testing.T) {
		out, err := run(t, nil, "types", "schema", "--type", "Memo")
		require.NoError(t, err)

		var schema map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &schema))
		assert.Equal(t, "Memo", schema["title"])
		assert.Contains(t, schema, "oneOf")
	})
}

func TestVersion(t *testing.T) {
	out, err := run(t, nil, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, Version+"\n", out)

	out, err = run(t, nil, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "XDR files:")
}

// ============================================================================
// Metrics Tests
// ============================================================================

func TestMetricsTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stellar-xdr.prom")

	_, err := run(t, nil, "decode", "--type", "Memo", "--metrics-file", path, memoStream)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `stellar_xdr_decoded_values_total{format="stream-base64",type="Memo"} 2`)
	// 16 bytes of text memo and 12 of id memo, counted after base64 decoding.
	assert.Contains(t, string(data), `stellar_xdr_decoded_bytes_total{format="stream-base64",type="Memo"} 28`)

	t.Run("SingleCountsConsumedBytes", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "single.prom")
		_, err := run(t, nil, "decode", "--type", "Memo", "--input", "single-base64", "--metrics-file", path, memoID9)
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `stellar_xdr_decoded_bytes_total{format="single-base64",type="Memo"} 12`)
	})

	t.Run("WrittenOnFailure", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "failed.prom")
		_, err := run(t, nil, "decode", "--type", "Memo", "--input", "single-base64", "--metrics-file", path, "!!!!")
		require.Error(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "stellar_xdr_errors_total")
	})
}

// ============================================================================
// Config Command Tests
// ============================================================================

func TestConfigCommands(t *testing.T) {
	interactive := prompt.Interactive
	prompt.Interactive = func() bool { return false }
	defer func() { prompt.Interactive = interactive }()

	t.Run("InitValidateShow", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "config.yaml")

		out, err := run(t, nil, "config", "init", "--config", path)
		require.NoError(t, err)
		assert.Contains(t, out, path)
		require.FileExists(t, path)

		_, err = run(t, nil, "config", "init", "--config", path)
		assert.Error(t, err, "existing file needs --force")

		_, err = run(t, nil, "config", "init", "--config", path, "--force")
		require.NoError(t, err)

		out, err = run(t, nil, "config", "validate", "--config", path)
		require.NoError(t, err)
		assert.Contains(t, out, "Validation: OK")
		assert.Contains(t, out, "Depth limit:     500")

		out, err = run(t, nil, "config", "show", "--config", path, "--depth-limit", "9")
		require.NoError(t, err)
		assert.Contains(t, out, "depth: 9")
	})

	t.Run("ValidateRejectsBadValues", func(t *testing.T) {
		path := writeFile(t, "config.yaml", []byte("decode:\n  output_format: xml\n"))
		_, err := run(t, nil, "config", "validate", "--config", path)
		assert.Error(t, err)
	})

	t.Run("ConfigFileDrivesDecode", func(t *testing.T) {
		path := writeFile(t, "config.yaml", []byte("decode:\n  input_format: single-base64\n  output_format: yaml\n"))
		out, err := run(t, nil, "decode", "--config", path, "--type", "Memo", memoTextHello)
		require.NoError(t, err)
		assert.Equal(t, "text: hello\n", out)
	})

	t.Run("ShowTable", func(t *testing.T) {
		out, err := run(t, nil, "config", "show", "-o", "table")
		require.NoError(t, err)
		assert.Contains(t, out, "limits.len")
		assert.Contains(t, out, "64 MiB")
	})

	t.Run("Schema", func(t *testing.T) {
		out, err := run(t, nil, "config", "schema")
		require.NoError(t, err)

		var schema map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &schema))
		assert.Equal(t, "stellar-xdr Configuration", schema["title"])
		props, ok := schema["properties"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, props, "limits")
	})
}
