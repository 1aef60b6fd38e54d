package xdr

import (
	"encoding/binary"
	"io"
	"math"
)

// ============================================================================
// Encoder - Go Types → Wire Format
// ============================================================================

// zeroPad holds the bytes written as XDR padding.
var zeroPad [3]byte

// Encoder writes XDR values to an io.Writer while enforcing Limits.
//
// An Encoder is not safe for concurrent use.
type Encoder struct {
	w       io.Writer
	limits  Limits
	scratch [8]byte
}

// NewEncoder returns an Encoder writing to w under limits.
func NewEncoder(w io.Writer, limits Limits) *Encoder {
	return &Encoder{w: w, limits: limits}
}

// Limits returns the remaining depth and length budget.
func (e *Encoder) Limits() Limits {
	return e.limits
}

// Nest runs fn one depth level deeper. The primitive methods below charge
// their own level.
func (e *Encoder) Nest(fn func() error) error {
	return e.limits.nest(fn)
}

// write sends p to the sink. A short write is an *IOError wrapping
// io.ErrShortWrite.
func (e *Encoder) write(p []byte) error {
	if err := e.limits.consumeLen(len(p)); err != nil {
		return err
	}
	n, err := e.w.Write(p)
	if err != nil {
		return ioErr(err)
	}
	if n != len(p) {
		return ioErr(io.ErrShortWrite)
	}
	return nil
}

// EncodeUint32 encodes a 32-bit unsigned integer in big-endian order.
//
// Example:
//
//	258 → [00 00 01 02]
func (e *Encoder) EncodeUint32(v uint32) error {
	if err := e.limits.enter(); err != nil {
		return err
	}
	defer e.limits.leave()
	binary.BigEndian.PutUint32(e.scratch[:4], v)
	return e.write(e.scratch[:4])
}

// EncodeInt32 encodes a 32-bit signed integer (two's complement).
func (e *Encoder) EncodeInt32(v int32) error {
	return e.EncodeUint32(uint32(v))
}

// EncodeUint64 encodes a 64-bit unsigned integer in big-endian order.
func (e *Encoder) EncodeUint64(v uint64) error {
	if err := e.limits.enter(); err != nil {
		return err
	}
	defer e.limits.leave()
	binary.BigEndian.PutUint64(e.scratch[:8], v)
	return e.write(e.scratch[:8])
}

// EncodeInt64 encodes a 64-bit signed integer (two's complement).
func (e *Encoder) EncodeInt64(v int64) error {
	return e.EncodeUint64(uint64(v))
}

// EncodeBool encodes true as 1 and false as 0.
func (e *Encoder) EncodeBool(v bool) error {
	if err := e.limits.enter(); err != nil {
		return err
	}
	defer e.limits.leave()
	if v {
		return e.EncodeUint32(1)
	}
	return e.EncodeUint32(0)
}

// EncodeFloat32 encodes the IEEE-754 bits of v.
func (e *Encoder) EncodeFloat32(v float32) error {
	return e.EncodeUint32(math.Float32bits(v))
}

// EncodeFloat64 encodes the IEEE-754 bits of v.
func (e *Encoder) EncodeFloat64(v float64) error {
	return e.EncodeUint64(math.Float64bits(v))
}

// EncodeEnum writes an enum discriminant. Like DecodeEnum it holds one level
// around the inner int32.
func (e *Encoder) EncodeEnum(v int32) error {
	if err := e.limits.enter(); err != nil {
		return err
	}
	defer e.limits.leave()
	return e.EncodeInt32(v)
}

// WritePadding writes the zero bytes that follow n bytes of opaque data.
//
// Example:
//
//	n=3 → 1 byte, n=4 → nothing, n=5 → 3 bytes
func (e *Encoder) WritePadding(n int) error {
	pad := PadLen(n)
	if pad == 0 {
		return nil
	}
	return e.write(zeroPad[:pad])
}

// EncodeFixedOpaque writes src followed by its padding.
func (e *Encoder) EncodeFixedOpaque(src []byte) error {
	if err := e.limits.enter(); err != nil {
		return err
	}
	defer e.limits.leave()
	if err := e.write(src); err != nil {
		return err
	}
	return e.WritePadding(len(src))
}

// EncodeOpaque writes variable-length opaque data: length, data, padding.
// Data longer than max is ErrLengthExceedsMax and nothing is written.
//
// Example:
//
//	[]byte{0x01, 0x02, 0x03} → [00 00 00 03][01 02 03][00]
func (e *Encoder) EncodeOpaque(data []byte, max uint32) error {
	if uint64(len(data)) > uint64(max) {
		return ErrLengthExceedsMax
	}
	if err := e.limits.enter(); err != nil {
		return err
	}
	defer e.limits.leave()
	if err := e.EncodeUint32(uint32(len(data))); err != nil {
		return err
	}
	if err := e.write(data); err != nil {
		return err
	}
	return e.WritePadding(len(data))
}

// EncodeString writes an XDR string of at most max bytes.
//
// Example:
//
//	"abc" → [00 00 00 03][61 62 63][00]
func (e *Encoder) EncodeString(s string, max uint32) error {
	return e.EncodeOpaque([]byte(s), max)
}
