package logger

import (
	"log/slog"

	"github.com/marmos91/stellar-xdr/pkg/xdr"
)

// Standard field keys for structured logging.
const (
	// ========================================================================
	// Invocation
	// ========================================================================
	KeyCommand = "command" // CLI command name
	KeyConfig  = "config"  // Config file path

	// ========================================================================
	// Inputs and Outputs
	// ========================================================================
	KeyInput       = "input"       // Input label: file path, stdin, arg[N]
	KeyFormat      = "format"      // Input format: single, stream-base64, ...
	KeyOutput      = "output"      // Output format: json, yaml, debug, ...
	KeyCompression = "compression" // Decompression applied to the input
	KeyPath        = "path"        // File path written (metrics textfile, config)

	// ========================================================================
	// Codec
	// ========================================================================
	KeyType      = "type"       // XDR type name
	KeyRecords   = "records"    // Number of values decoded or encoded
	KeyRecord    = "record"     // Zero-based index of a value in a stream
	KeyBytes     = "bytes"      // Byte count
	KeyDepth     = "depth"      // Depth limit
	KeyLenLimit  = "len_limit"  // Length limit in bytes
	KeyMatches   = "matches"    // Number of types matched by guess
	KeyErrorKind = "error_kind" // xdr.Kind of a codec failure

	// ========================================================================
	// Operation Metadata
	// ========================================================================
	KeyDurationMs = "duration_ms" // Operation duration in milliseconds
	KeyError      = "error"       // Error message
	KeyFailed     = "failed"      // Number of failed inputs
)

// ============================================================================
// Field constructors
// ============================================================================

// Command returns a slog.Attr for the CLI command
func Command(name string) slog.Attr { return slog.String(KeyCommand, name) }

// Input returns a slog.Attr for an input label
func Input(label string) slog.Attr { return slog.String(KeyInput, label) }

// Format returns a slog.Attr for an input format
func Format(f string) slog.Attr { return slog.String(KeyFormat, f) }

// Output returns a slog.Attr for an output format
func Output(f string) slog.Attr { return slog.String(KeyOutput, f) }

// Compression returns a slog.Attr for a decompression codec
func Compression(c string) slog.Attr { return slog.String(KeyCompression, c) }

// Path returns a slog.Attr for a file path
func Path(p string) slog.Attr { return slog.String(KeyPath, p) }

// Type returns a slog.Attr for an XDR type name
func Type(name string) slog.Attr { return slog.String(KeyType, name) }

// Records returns a slog.Attr for a value count
func Records(n int) slog.Attr { return slog.Int(KeyRecords, n) }

// Record returns a slog.Attr for a stream index
func Record(i int) slog.Attr { return slog.Int(KeyRecord, i) }

// Bytes returns a slog.Attr for a byte count
func Bytes(n int64) slog.Attr { return slog.Int64(KeyBytes, n) }

// Limits returns the depth and length limits as a group.
func Limits(l xdr.Limits) slog.Attr {
	return slog.Group("limits", slog.Uint64(KeyDepth, uint64(l.Depth)), slog.Int(KeyLenLimit, l.Len))
}

// Matches returns a slog.Attr for the number of guessed types
func Matches(n int) slog.Attr { return slog.Int(KeyMatches, n) }

// DurationMs returns a slog.Attr for duration in milliseconds
func DurationMs(ms float64) slog.Attr { return slog.Float64(KeyDurationMs, ms) }

// Failed returns a slog.Attr for a failure count
func Failed(n int) slog.Attr { return slog.Int(KeyFailed, n) }

// Err returns a slog.Attr for an error
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// ErrKind returns a slog.Attr for the xdr.Kind of err
func ErrKind(err error) slog.Attr {
	return slog.String(KeyErrorKind, string(xdr.KindOf(err)))
}
