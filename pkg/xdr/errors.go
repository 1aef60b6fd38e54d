package xdr

import (
	"errors"
	"fmt"
)

// ============================================================================
// Error Taxonomy
// ============================================================================

// Sentinel errors returned by the codec. Match them with errors.Is; I/O and
// UTF-8 failures are returned as *IOError and *UTF8Error, which match ErrIO and
// ErrUTF8 respectively.
var (
	// ErrInvalid reports a structurally invalid encoding: an unknown union
	// discriminant, a boolean other than 0 or 1, or residual bytes after a
	// value that must consume its whole input.
	ErrInvalid = errors.New("xdr value invalid")

	// ErrUnsupported reports a value or operation the codec cannot handle.
	ErrUnsupported = errors.New("xdr value unsupported")

	// ErrLengthExceedsMax reports a length or count above a type's bound.
	ErrLengthExceedsMax = errors.New("xdr value max length exceeded")

	// ErrLengthMismatch reports a fixed expected length that disagrees with
	// the actual length.
	ErrLengthMismatch = errors.New("xdr value length does not match")

	// ErrNonZeroPadding reports alignment padding bytes that are not zero.
	ErrNonZeroPadding = errors.New("xdr padding contains non-zero bytes")

	// ErrUTF8 reports content that is not valid UTF-8.
	ErrUTF8 = errors.New("xdr value invalid utf8")

	// ErrIO reports a failure of the underlying reader or writer, including
	// short reads and writes.
	ErrIO = errors.New("xdr io error")

	// ErrDepthLimitExceeded reports nesting deeper than Limits.Depth.
	ErrDepthLimitExceeded = errors.New("depth limit exceeded")

	// ErrLengthLimitExceeded reports more bytes processed than Limits.Len.
	ErrLengthLimitExceeded = errors.New("length limit exceeded")

	// ErrInvalidHex reports malformed hex in a textual representation.
	ErrInvalidHex = errors.New("hex invalid")
)

// IOError wraps a failure of the underlying byte source or sink.
type IOError struct {
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %v", ErrIO, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Is reports ErrIO as matching so callers need not know the concrete type.
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

// UTF8Error reports invalid UTF-8 at Offset.
type UTF8Error struct {
	Offset int
}

func (e *UTF8Error) Error() string {
	return fmt.Sprintf("%s: invalid byte at offset %d", ErrUTF8, e.Offset)
}

func (e *UTF8Error) Is(target error) bool {
	return target == ErrUTF8
}

// ioErr wraps err as an *IOError unless it is nil.
func ioErr(err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Err: err}
}

// ============================================================================
// Error Kinds
// ============================================================================

// Kind classifies an error into the codec's closed error set.
type Kind string

const (
	KindNone                Kind = ""
	KindInvalid             Kind = "invalid"
	KindUnsupported         Kind = "unsupported"
	KindLengthExceedsMax    Kind = "length_exceeds_max"
	KindLengthMismatch      Kind = "length_mismatch"
	KindNonZeroPadding      Kind = "non_zero_padding"
	KindUTF8                Kind = "utf8"
	KindIO                  Kind = "io"
	KindDepthLimitExceeded  Kind = "depth_limit_exceeded"
	KindLengthLimitExceeded Kind = "length_limit_exceeded"
	KindInvalidHex          Kind = "invalid_hex"
	KindOther               Kind = "other"
)

var kinds = []struct {
	err  error
	kind Kind
}{
	{ErrInvalid, KindInvalid},
	{ErrUnsupported, KindUnsupported},
	{ErrLengthExceedsMax, KindLengthExceedsMax},
	{ErrLengthMismatch, KindLengthMismatch},
	{ErrNonZeroPadding, KindNonZeroPadding},
	{ErrUTF8, KindUTF8},
	{ErrDepthLimitExceeded, KindDepthLimitExceeded},
	{ErrLengthLimitExceeded, KindLengthLimitExceeded},
	{ErrInvalidHex, KindInvalidHex},
	{ErrIO, KindIO},
}

// KindOf returns the Kind of err. Errors outside the codec's set are KindOther
// and a nil error is KindNone.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindOther
}
