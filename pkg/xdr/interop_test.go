package xdr

import (
	"bytes"
	"testing"

	goxdr "github.com/rasky/go-xdr/xdr2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Interop Tests (github.com/rasky/go-xdr)
// ============================================================================

// record is the reflection-based counterpart of recordXDR.
type record struct {
	A int32
	B uint64
	C string
	D []byte
	E [3]byte
	F bool
	G []uint32
}

type recordXDR struct {
	A Int32
	B Uint64
	C StringM[Unbounded]
	D BytesM[Unbounded]
	E [3]byte
	F Bool
	G VecM[Uint32, Unbounded, *Uint32]
}

func (r recordXDR) EncodeXDR(e *Encoder) error {
	return e.Nest(func() error {
		for _, v := range []XdrEncoder{r.A, r.B, r.C, r.D} {
			if err := v.EncodeXDR(e); err != nil {
				return err
			}
		}
		if err := e.EncodeFixedOpaque(r.E[:]); err != nil {
			return err
		}
		if err := r.F.EncodeXDR(e); err != nil {
			return err
		}
		return r.G.EncodeXDR(e)
	})
}

func (r *recordXDR) DecodeXDR(d *Decoder) error {
	return d.Nest(func() error {
		for _, v := range []XdrDecoder{&r.A, &r.B, &r.C, &r.D} {
			if err := v.DecodeXDR(d); err != nil {
				return err
			}
		}
		if err := d.DecodeFixedOpaque(r.E[:]); err != nil {
			return err
		}
		if err := r.F.DecodeXDR(d); err != nil {
			return err
		}
		return r.G.DecodeXDR(d)
	})
}

func sampleRecord(t *testing.T) (record, recordXDR) {
	t.Helper()
	ref := record{
		A: -42,
		B: 1<<40 + 7,
		C: "hello",
		D: []byte{1, 2, 3, 4, 5, 6},
		E: [3]byte{9, 8, 7},
		F: true,
		G: []uint32{10, 20, 30},
	}

	c, err := NewStringM[Unbounded](ref.C)
	require.NoError(t, err)
	d, err := NewBytesM[Unbounded](ref.D)
	require.NoError(t, err)
	g, err := VecMOf[Uint32, Unbounded](10, 20, 30)
	require.NoError(t, err)

	return ref, recordXDR{A: -42, B: 1<<40 + 7, C: c, D: d, E: ref.E, F: true, G: g}
}

func TestInteropWithReflectionCodec(t *testing.T) {
	ref, ours := sampleRecord(t)

	t.Run("SameEncoding", func(t *testing.T) {
		var want bytes.Buffer
		_, err := goxdr.Marshal(&want, &ref)
		require.NoError(t, err)

		assert.Equal(t, want.Bytes(), mustMarshal(t, ours))
	})

	t.Run("DecodesReflectionOutput", func(t *testing.T) {
		var buf bytes.Buffer
		_, err := goxdr.Marshal(&buf, &ref)
		require.NoError(t, err)

		var got recordXDR
		require.NoError(t, Unmarshal(buf.Bytes(), &got, DefaultLimits()))
		assert.Equal(t, ours, got)
	})

	t.Run("ReflectionDecodesOurs", func(t *testing.T) {
		var got record
		_, err := goxdr.Unmarshal(bytes.NewReader(mustMarshal(t, ours)), &got)
		require.NoError(t, err)
		assert.Equal(t, ref, got)
	})
}
