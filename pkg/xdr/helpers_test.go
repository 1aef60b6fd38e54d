package xdr

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// ============================================================================
// Test Helper Types
// ============================================================================

type max2 struct{}

func (max2) Max() uint32 { return 2 }

type max8 struct{}

func (max8) Max() uint32 { return 8 }

// Bytes8 mirrors opaque<8>.
type Bytes8 = BytesM[max8]

// point is a two-field struct encoded the way schema structs are.
type point struct {
	X Int32
	Y Uint64
}

func (p point) EncodeXDR(e *Encoder) error {
	return e.Nest(func() error {
		if err := p.X.EncodeXDR(e); err != nil {
			return err
		}
		return p.Y.EncodeXDR(e)
	})
}

func (p *point) DecodeXDR(d *Decoder) error {
	return d.Nest(func() error {
		if err := p.X.DecodeXDR(d); err != nil {
			return err
		}
		return p.Y.DecodeXDR(d)
	})
}

// Element types of a VecM are checked when the vector type is instantiated.
var _ Codec = (*VecM[point, max2, *point])(nil)

func newDecoder(data []byte) *Decoder {
	return NewDecoder(bytes.NewReader(data), NoLimits())
}

func mustMarshal(t *testing.T, v XdrEncoder) []byte {
	t.Helper()
	data, err := Marshal(v, NoLimits())
	require.NoError(t, err)
	return data
}
