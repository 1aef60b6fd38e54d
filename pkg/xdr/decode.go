package xdr

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
)

// ============================================================================
// Decoder - Wire Format → Go Types
// ============================================================================

// smallAlloc is the largest variable-length payload allocated up front.
// Longer payloads grow incrementally while bytes actually arrive, so a hostile
// length prefix cannot force a large allocation.
const smallAlloc = 4096

// Decoder reads XDR values from an io.Reader while enforcing Limits.
//
// A Decoder is not safe for concurrent use. Distinct Decoders are independent.
type Decoder struct {
	r       io.Reader
	limits  Limits
	scratch [8]byte
}

// NewDecoder returns a Decoder reading from r under limits.
func NewDecoder(r io.Reader, limits Limits) *Decoder {
	return &Decoder{r: r, limits: limits}
}

// Limits returns the remaining depth and length budget.
func (d *Decoder) Limits() Limits {
	return d.limits
}

// Nest runs fn one depth level deeper. Composite values wrap the decoding of
// their fields in Nest. The primitive methods below charge their own level.
func (d *Decoder) Nest(fn func() error) error {
	return d.limits.nest(fn)
}

// read fills p from the source, charging len(p) to the length budget.
// A short read, including zero bytes at end of input, is an *IOError.
func (d *Decoder) read(p []byte) error {
	if err := d.limits.consumeLen(len(p)); err != nil {
		return err
	}
	if _, err := io.ReadFull(d.r, p); err != nil {
		if err == io.EOF && len(p) > 0 {
			return ioErr(io.ErrUnexpectedEOF)
		}
		return ioErr(err)
	}
	return nil
}

// readN reads exactly n bytes into a freshly owned slice.
func (d *Decoder) readN(n int) ([]byte, error) {
	if err := d.limits.consumeLen(n); err != nil {
		return nil, err
	}
	if n <= smallAlloc {
		buf := make([]byte, n)
		if _, err := io.ReadFull(d.r, buf); err != nil {
			if err == io.EOF && n > 0 {
				return nil, ioErr(io.ErrUnexpectedEOF)
			}
			return nil, ioErr(err)
		}
		return buf, nil
	}

	var buf bytes.Buffer
	buf.Grow(smallAlloc)
	copied, err := io.CopyN(&buf, d.r, int64(n))
	if err != nil {
		if err == io.EOF && copied < int64(n) {
			return nil, ioErr(io.ErrUnexpectedEOF)
		}
		return nil, ioErr(err)
	}
	return buf.Bytes(), nil
}

// ============================================================================
// Integers, Booleans and Floating Point
// ============================================================================

// DecodeUint32 decodes a 32-bit unsigned integer.
//
// Per RFC 4506 Section 4.2 (Unsigned Integer):
// Unsigned 32-bit integers are encoded in big-endian byte order.
func (d *Decoder) DecodeUint32() (uint32, error) {
	if err := d.limits.enter(); err != nil {
		return 0, err
	}
	defer d.limits.leave()
	if err := d.read(d.scratch[:4]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(d.scratch[:4]), nil
}

// DecodeInt32 decodes a 32-bit signed integer.
//
// Per RFC 4506 Section 4.1 (Integer):
// Signed 32-bit integers are encoded in big-endian byte order using
// two's complement representation.
func (d *Decoder) DecodeInt32() (int32, error) {
	v, err := d.DecodeUint32()
	return int32(v), err
}

// DecodeUint64 decodes a 64-bit unsigned integer.
//
// Per RFC 4506 Section 4.5 (Hyper Integer):
// 64-bit integers are encoded in big-endian byte order.
func (d *Decoder) DecodeUint64() (uint64, error) {
	if err := d.limits.enter(); err != nil {
		return 0, err
	}
	defer d.limits.leave()
	if err := d.read(d.scratch[:8]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(d.scratch[:8]), nil
}

// DecodeInt64 decodes a 64-bit signed integer.
func (d *Decoder) DecodeInt64() (int64, error) {
	v, err := d.DecodeUint64()
	return int64(v), err
}

// DecodeBool decodes an XDR boolean.
//
// Per RFC 4506 Section 4.4 (Boolean):
// Booleans are encoded as a 4-byte integer, 1 for true and 0 for false.
// Every other value is rejected with ErrInvalid.
func (d *Decoder) DecodeBool() (bool, error) {
	if err := d.limits.enter(); err != nil {
		return false, err
	}
	defer d.limits.leave()
	v, err := d.DecodeUint32()
	if err != nil {
		return false, err
	}
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, ErrInvalid
	}
}

// DecodeFloat32 decodes an IEEE-754 single-precision value (RFC 4506 Section 4.6).
func (d *Decoder) DecodeFloat32() (float32, error) {
	v, err := d.DecodeUint32()
	return math.Float32frombits(v), err
}

// DecodeFloat64 decodes an IEEE-754 double-precision value (RFC 4506 Section 4.7).
func (d *Decoder) DecodeFloat64() (float64, error) {
	v, err := d.DecodeUint64()
	return math.Float64frombits(v), err
}

// DecodeEnum decodes a 32-bit enum discriminant and checks it against valid.
// An unknown value is ErrInvalid.
func (d *Decoder) DecodeEnum(valid map[int32]string) (int32, error) {
	if err := d.limits.enter(); err != nil {
		return 0, err
	}
	defer d.limits.leave()
	v, err := d.DecodeInt32()
	if err != nil {
		return 0, err
	}
	if _, ok := valid[v]; !ok {
		return 0, ErrInvalid
	}
	return v, nil
}

// ============================================================================
// Opaque Data and Padding
// ============================================================================

// PadLen returns the number of zero bytes that follow n bytes of opaque data
// to reach the next 4-byte boundary.
//
// Example: n=5 → 3, n=8 → 0
func PadLen(n int) int {
	return (4 - n%4) % 4
}

// ReadPadding consumes the padding that follows n bytes of opaque data and
// fails with ErrNonZeroPadding if any padding byte is not zero.
func (d *Decoder) ReadPadding(n int) error {
	pad := PadLen(n)
	if pad == 0 {
		return nil
	}
	if err := d.read(d.scratch[:pad]); err != nil {
		return err
	}
	for _, b := range d.scratch[:pad] {
		if b != 0 {
			return ErrNonZeroPadding
		}
	}
	return nil
}

// DecodeFixedOpaque fills dst with fixed-length opaque data followed by its
// padding.
//
// Per RFC 4506 Section 4.9 (Fixed-Length Opaque Data):
// Format: [data:n bytes][padding:0-3 zero bytes]
func (d *Decoder) DecodeFixedOpaque(dst []byte) error {
	if err := d.limits.enter(); err != nil {
		return err
	}
	defer d.limits.leave()
	if err := d.read(dst); err != nil {
		return err
	}
	return d.ReadPadding(len(dst))
}

// DecodeOpaque decodes variable-length opaque data of at most max bytes.
//
// Per RFC 4506 Section 4.10 (Variable-Length Opaque Data):
// Format: [length:uint32][data:length bytes][padding:0-3 zero bytes]
//
// The length is checked against max before any payload byte is read.
func (d *Decoder) DecodeOpaque(max uint32) ([]byte, error) {
	if err := d.limits.enter(); err != nil {
		return nil, err
	}
	defer d.limits.leave()
	length, err := d.DecodeUint32()
	if err != nil {
		return nil, err
	}
	if length > max {
		return nil, ErrLengthExceedsMax
	}
	if uint64(length) > uint64(math.MaxInt) {
		return nil, ErrLengthExceedsMax
	}
	data, err := d.readN(int(length))
	if err != nil {
		return nil, err
	}
	if err := d.ReadPadding(len(data)); err != nil {
		return nil, err
	}
	return data, nil
}

// DecodeString decodes an XDR string of at most max bytes.
//
// Per RFC 4506 Section 4.11 (String):
// Strings share the opaque encoding. The bytes are returned as-is, without
// UTF-8 validation.
func (d *Decoder) DecodeString(max uint32) (string, error) {
	data, err := d.DecodeOpaque(max)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
