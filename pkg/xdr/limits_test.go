package xdr

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nested builds a recursive value to exercise the depth budget.
type nested struct {
	Next *nested
}

func (n nested) EncodeXDR(e *Encoder) error {
	return e.Nest(func() error {
		return EncodeOptional(e, n.Next)
	})
}

func (n *nested) DecodeXDR(d *Decoder) error {
	return d.Nest(func() error {
		next, err := DecodeOptional[nested](d)
		if err != nil {
			return err
		}
		n.Next = next
		return nil
	})
}

// chain returns a value with depth values below the outermost one.
func chain(depth int) nested {
	var next *nested
	for range depth {
		next = &nested{Next: next}
	}
	return nested{Next: next}
}

// ============================================================================
// Limits Tests
// ============================================================================

func TestLengthLimit(t *testing.T) {
	t.Run("DecodeWithinBudget", func(t *testing.T) {
		d := NewDecoder(bytes.NewReader([]byte{0, 0, 0, 1}), Limits{Depth: 10, Len: 4})
		var v Uint32
		require.NoError(t, Read(d, &v))
		assert.Equal(t, 0, d.Limits().Len)
	})

	t.Run("DecodeOverBudget", func(t *testing.T) {
		d := NewDecoder(bytes.NewReader([]byte{0, 0, 0, 0, 0, 0, 0, 1}), Limits{Depth: 10, Len: 7})
		var v Uint64
		assert.ErrorIs(t, Read(d, &v), ErrLengthLimitExceeded)
	})

	t.Run("OpaqueChargedBeforeRead", func(t *testing.T) {
		d := NewDecoder(bytes.NewReader([]byte{0, 0, 0x10, 0}), Limits{Depth: 10, Len: 100})
		var v BytesM[Unbounded]
		err := Read(d, &v)
		assert.ErrorIs(t, err, ErrLengthLimitExceeded)
		assert.NotErrorIs(t, err, ErrIO)
	})

	t.Run("EncodeOverBudget", func(t *testing.T) {
		var buf bytes.Buffer
		err := Write(&buf, point{X: 1, Y: 2}, Limits{Depth: 10, Len: 8})
		assert.ErrorIs(t, err, ErrLengthLimitExceeded)
	})
}

func TestDepthLimit(t *testing.T) {
	// Four nested values, each holding an optional, ending in a u32 flag:
	// nine levels in total.
	data := mustMarshal(t, chain(3))

	t.Run("WithinBudget", func(t *testing.T) {
		var n nested
		require.NoError(t, Unmarshal(data, &n, Limits{Depth: 9, Len: 1 << 10}))
		assert.NotNil(t, n.Next)
	})

	t.Run("OverBudget", func(t *testing.T) {
		var n nested
		err := Unmarshal(data, &n, Limits{Depth: 8, Len: 1 << 10})
		assert.ErrorIs(t, err, ErrDepthLimitExceeded)
	})

	t.Run("EncodeWithinBudget", func(t *testing.T) {
		_, err := Marshal(chain(3), Limits{Depth: 9, Len: 1 << 10})
		assert.NoError(t, err)
	})

	t.Run("EncodeOverBudget", func(t *testing.T) {
		_, err := Marshal(chain(3), Limits{Depth: 8, Len: 1 << 10})
		assert.ErrorIs(t, err, ErrDepthLimitExceeded)
	})

	t.Run("DepthRestoredAfterValue", func(t *testing.T) {
		d := NewDecoder(bytes.NewReader(append(append([]byte{}, data...), data...)), Limits{Depth: 9, Len: 1 << 10})
		var a, b nested
		require.NoError(t, Read(d, &a))
		require.NoError(t, Read(d, &b))
		assert.Equal(t, uint32(9), d.Limits().Depth)
	})
}

// optUint32 holds an optional u32 without adding a level of its own.
type optUint32 struct {
	V *Uint32
}

func (o optUint32) EncodeXDR(e *Encoder) error { return EncodeOptional(e, o.V) }

func (o *optUint32) DecodeXDR(d *Decoder) error {
	v, err := DecodeOptional[Uint32](d)
	o.V = v
	return err
}

// fixed4 is a four-byte fixed opaque value.
type fixed4 [4]byte

func (f fixed4) EncodeXDR(e *Encoder) error  { return e.EncodeFixedOpaque(f[:]) }
func (f *fixed4) DecodeXDR(d *Decoder) error { return d.DecodeFixedOpaque(f[:]) }

// enum4 is an enum with the single member 0.
type enum4 int32

func (v enum4) EncodeXDR(e *Encoder) error { return e.EncodeEnum(int32(v)) }

func (v *enum4) DecodeXDR(d *Decoder) error {
	n, err := d.DecodeEnum(map[int32]string{0: "zero"})
	*v = enum4(n)
	return err
}

func TestDepthThresholds(t *testing.T) {
	seven := Uint32(7)
	str, err := NewStringM[max8]("abc")
	require.NoError(t, err)
	vec, err := VecMOf[Uint32, max2](1, 2)
	require.NoError(t, err)

	// need is the smallest depth at which the value encodes and decodes.
	cases := []struct {
		name string
		v    XdrEncoder
		mk   func() XdrDecoder
		need uint32
	}{
		{"Uint32", Uint32(1), func() XdrDecoder { return new(Uint32) }, 1},
		{"Int64", Int64(-1), func() XdrDecoder { return new(Int64) }, 1},
		{"Float64", Float64(1.5), func() XdrDecoder { return new(Float64) }, 1},
		{"Bool", Bool(true), func() XdrDecoder { return new(Bool) }, 2},
		{"Enum", enum4(0), func() XdrDecoder { return new(enum4) }, 2},
		{"FixedOpaque", fixed4{1, 2, 3, 4}, func() XdrDecoder { return new(fixed4) }, 1},
		{"BytesM", Bytes8{data: []byte{1, 2, 3}}, func() XdrDecoder { return new(Bytes8) }, 2},
		{"StringM", str, func() XdrDecoder { return new(StringM[max8]) }, 2},
		{"OptionalAbsent", optUint32{}, func() XdrDecoder { return new(optUint32) }, 2},
		{"OptionalPresent", optUint32{V: &seven}, func() XdrDecoder { return new(optUint32) }, 2},
		{"Struct", point{X: 1, Y: 2}, func() XdrDecoder { return new(point) }, 2},
		{"VecM", vec, func() XdrDecoder { return new(VecM[Uint32, max2, *Uint32]) }, 2},
		{"Void", Void{}, func() XdrDecoder { return new(Void) }, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := mustMarshal(t, tc.v)

			_, err := Marshal(tc.v, Limits{Depth: tc.need, Len: 1 << 10})
			assert.NoError(t, err)
			require.NoError(t, Unmarshal(data, tc.mk(), Limits{Depth: tc.need, Len: 1 << 10}))

			if tc.need == 0 {
				return
			}
			_, err = Marshal(tc.v, Limits{Depth: tc.need - 1, Len: 1 << 10})
			assert.ErrorIs(t, err, ErrDepthLimitExceeded)
			err = Unmarshal(data, tc.mk(), Limits{Depth: tc.need - 1, Len: 1 << 10})
			assert.ErrorIs(t, err, ErrDepthLimitExceeded)
		})
	}
}

func TestDepthIterItems(t *testing.T) {
	data := append(mustMarshal(t, Uint32(1)), mustMarshal(t, Uint32(2))...)

	t.Run("NextTakesALevel", func(t *testing.T) {
		it := NewReadIter(NewDecoder(bytes.NewReader(data), Limits{Depth: 1, Len: 1 << 10}))
		var v Uint32
		assert.ErrorIs(t, it.Next(&v), ErrDepthLimitExceeded)
	})

	t.Run("NextWithinBudget", func(t *testing.T) {
		d := NewDecoder(bytes.NewReader(data), Limits{Depth: 2, Len: 1 << 10})
		it := NewReadIter(d)
		var a, b Uint32
		require.NoError(t, it.Next(&a))
		require.NoError(t, it.Next(&b))
		assert.Equal(t, Uint32(2), b)
		assert.Equal(t, uint32(2), d.Limits().Depth)
	})

	t.Run("NextFramed", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, EncodeFramed(NewEncoder(&buf, NoLimits()), Uint32(9)))

		it := NewReadIter(NewDecoder(bytes.NewReader(buf.Bytes()), Limits{Depth: 1, Len: 1 << 10}))
		var v Uint32
		assert.ErrorIs(t, it.NextFramed(&v), ErrDepthLimitExceeded)

		it = NewReadIter(NewDecoder(bytes.NewReader(buf.Bytes()), Limits{Depth: 2, Len: 1 << 10}))
		require.NoError(t, it.NextFramed(&v))
		assert.Equal(t, Uint32(9), v)
	})
}

// ============================================================================
// Error Kind Tests
// ============================================================================

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		want Kind
	}{
		{nil, KindNone},
		{ErrInvalid, KindInvalid},
		{fmt.Errorf("decode memo: %w", ErrNonZeroPadding), KindNonZeroPadding},
		{&IOError{Err: io.ErrUnexpectedEOF}, KindIO},
		{&UTF8Error{Offset: 1}, KindUTF8},
		{ioErr(ErrLengthLimitExceeded), KindLengthLimitExceeded},
		{ErrInvalidHex, KindInvalidHex},
		{errors.New("other"), KindOther},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, KindOf(tc.err), "%v", tc.err)
	}
}

func TestIOErrorMessage(t *testing.T) {
	err := &IOError{Err: io.ErrUnexpectedEOF}
	assert.Equal(t, "xdr io error: unexpected EOF", err.Error())
}
