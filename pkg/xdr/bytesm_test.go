package xdr

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// BytesM Codec Tests
// ============================================================================

func TestBytesMDecode(t *testing.T) {
	t.Run("NoPaddingNeeded", func(t *testing.T) {
		var v Bytes8
		err := Read(newDecoder([]byte{0, 0, 0, 4, 2, 2, 2, 2}), &v)
		require.NoError(t, err)
		assert.Equal(t, []byte{2, 2, 2, 2}, v.Bytes())
	})

	t.Run("ThreePaddingBytes", func(t *testing.T) {
		var v Bytes8
		err := Read(newDecoder([]byte{0, 0, 0, 1, 2, 0, 0, 0}), &v)
		require.NoError(t, err)
		assert.Equal(t, []byte{2}, v.Bytes())
	})

	t.Run("NonZeroPadding", func(t *testing.T) {
		var v Bytes8
		err := Read(newDecoder([]byte{0, 0, 0, 1, 2, 3, 0, 0}), &v)
		assert.ErrorIs(t, err, ErrNonZeroPadding)
	})

	t.Run("OneByteShort", func(t *testing.T) {
		var v Bytes8
		err := Read(newDecoder([]byte{0, 0, 0, 1, 2, 0, 0}), &v)
		assert.ErrorIs(t, err, ErrIO)
	})

	t.Run("AboveBound", func(t *testing.T) {
		var v Bytes8
		err := Read(newDecoder([]byte{0, 0, 0, 9}), &v)
		assert.ErrorIs(t, err, ErrLengthExceedsMax)
	})

	t.Run("LargeUnboundedPayload", func(t *testing.T) {
		payload := bytes.Repeat([]byte{7}, 2996)
		data := append([]byte{0x00, 0x00, 0x0b, 0xb4}, payload...)

		var v BytesM[Unbounded]
		require.NoError(t, Unmarshal(data, &v, NoLimits()))
		assert.Equal(t, payload, v.Bytes())
	})

	t.Run("MaxLengthPrefixFails", func(t *testing.T) {
		var v BytesM[Unbounded]
		err := Unmarshal([]byte{0xff, 0xff, 0xff, 0xff}, &v, NoLimits())
		assert.Error(t, err)
	})
}

func TestBytesMEncode(t *testing.T) {
	t.Run("RoundTripEveryPadding", func(t *testing.T) {
		for n := 0; n <= 8; n++ {
			v, err := NewBytesM[max8](bytes.Repeat([]byte{0xab}, n))
			require.NoError(t, err)

			data := mustMarshal(t, v)
			assert.Len(t, data, 4+n+PadLen(n))

			var out Bytes8
			require.NoError(t, Unmarshal(data, &out, NoLimits()))
			assert.Equal(t, v, out)
		}
	})

	t.Run("ConstructorRejectsAboveBound", func(t *testing.T) {
		_, err := NewBytesM[max8](make([]byte, 9))
		assert.ErrorIs(t, err, ErrLengthExceedsMax)

		_, err = BytesMFromString[max8]("123456789")
		assert.ErrorIs(t, err, ErrLengthExceedsMax)
	})

	t.Run("CopiesInput", func(t *testing.T) {
		in := []byte{1, 2}
		v, err := NewBytesM[max8](in)
		require.NoError(t, err)
		in[0] = 9
		assert.Equal(t, []byte{1, 2}, v.Bytes())
	})
}

// ============================================================================
// Text Conversion Tests
// ============================================================================

func TestBytesMText(t *testing.T) {
	t.Run("ValidUTF8", func(t *testing.T) {
		v, err := BytesMFromString[max8]("héllo")
		require.NoError(t, err)
		s, err := v.Text()
		require.NoError(t, err)
		assert.Equal(t, "héllo", s)
	})

	t.Run("InvalidUTF8ReportsOffset", func(t *testing.T) {
		v, err := NewBytesM[max8]([]byte{'o', 'k', 0xff})
		require.NoError(t, err)
		_, err = v.Text()
		assert.ErrorIs(t, err, ErrUTF8)

		var ue *UTF8Error
		require.ErrorAs(t, err, &ue)
		assert.Equal(t, 2, ue.Offset)
	})

	t.Run("HexDisplay", func(t *testing.T) {
		v, err := NewBytesM[max8]([]byte{0xde, 0xad})
		require.NoError(t, err)
		assert.Equal(t, "dead", v.String())
	})
}

// ============================================================================
// JSON Tests
// ============================================================================

func TestBytesMJSON(t *testing.T) {
	t.Run("Hex", func(t *testing.T) {
		v, err := NewBytesM[max8]([]byte{0x01, 0xff})
		require.NoError(t, err)
		data, err := json.Marshal(v)
		require.NoError(t, err)
		assert.Equal(t, `"01ff"`, string(data))

		var out Bytes8
		require.NoError(t, json.Unmarshal(data, &out))
		assert.Equal(t, v, out)
	})

	t.Run("InvalidHex", func(t *testing.T) {
		var out Bytes8
		err := json.Unmarshal([]byte(`"zz"`), &out)
		assert.ErrorIs(t, err, ErrInvalidHex)
	})

	t.Run("BoundRechecked", func(t *testing.T) {
		var out Bytes8
		err := json.Unmarshal([]byte(`"000000000000000000"`), &out)
		assert.ErrorIs(t, err, ErrLengthExceedsMax)
	})
}

func TestStringM(t *testing.T) {
	t.Run("CodecMatchesOpaque", func(t *testing.T) {
		s, err := NewStringM[max8]("abc")
		require.NoError(t, err)
		assert.Equal(t, []byte{0, 0, 0, 3, 'a', 'b', 'c', 0}, mustMarshal(t, s))
	})

	t.Run("NonUTF8Allowed", func(t *testing.T) {
		var s StringM[max8]
		require.NoError(t, Unmarshal([]byte{0, 0, 0, 1, 0xff, 0, 0, 0}, &s, NoLimits()))
		assert.Equal(t, `\xff`, s.String())

		_, err := s.Text()
		assert.ErrorIs(t, err, ErrUTF8)
	})

	t.Run("JSONEscapes", func(t *testing.T) {
		s, err := StringMFromBytes[max8]([]byte("a\n\x01"))
		require.NoError(t, err)
		data, err := json.Marshal(s)
		require.NoError(t, err)
		assert.Equal(t, `"a\\n\\x01"`, string(data))

		var out StringM[max8]
		require.NoError(t, json.Unmarshal(data, &out))
		assert.Equal(t, s, out)
	})
}
