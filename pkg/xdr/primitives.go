package xdr

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ============================================================================
// Primitive Codec Types
// ============================================================================
//
// Named primitives implement XdrEncoder and XdrDecoder so they can be used as
// VecM elements, optional payloads and union arms. Schema typedefs such as
// "typedef uint64 TimePoint" are declared on top of them.

type (
	Int32   int32
	Uint32  uint32
	Int64   int64
	Uint64  uint64
	Bool    bool
	Float32 float32
	Float64 float64

	// Void is the empty XDR type. It encodes to zero bytes.
	Void struct{}
)

func (v Int32) EncodeXDR(e *Encoder) error { return e.EncodeInt32(int32(v)) }

func (v *Int32) DecodeXDR(d *Decoder) error {
	x, err := d.DecodeInt32()
	if err != nil {
		return err
	}
	*v = Int32(x)
	return nil
}

func (v Uint32) EncodeXDR(e *Encoder) error { return e.EncodeUint32(uint32(v)) }

func (v *Uint32) DecodeXDR(d *Decoder) error {
	x, err := d.DecodeUint32()
	if err != nil {
		return err
	}
	*v = Uint32(x)
	return nil
}

func (v Int64) EncodeXDR(e *Encoder) error { return e.EncodeInt64(int64(v)) }

func (v *Int64) DecodeXDR(d *Decoder) error {
	x, err := d.DecodeInt64()
	if err != nil {
		return err
	}
	*v = Int64(x)
	return nil
}

func (v Uint64) EncodeXDR(e *Encoder) error { return e.EncodeUint64(uint64(v)) }

func (v *Uint64) DecodeXDR(d *Decoder) error {
	x, err := d.DecodeUint64()
	if err != nil {
		return err
	}
	*v = Uint64(x)
	return nil
}

func (v Bool) EncodeXDR(e *Encoder) error { return e.EncodeBool(bool(v)) }

func (v *Bool) DecodeXDR(d *Decoder) error {
	x, err := d.DecodeBool()
	if err != nil {
		return err
	}
	*v = Bool(x)
	return nil
}

func (v Float32) EncodeXDR(e *Encoder) error { return e.EncodeFloat32(float32(v)) }

func (v *Float32) DecodeXDR(d *Decoder) error {
	x, err := d.DecodeFloat32()
	if err != nil {
		return err
	}
	*v = Float32(x)
	return nil
}

func (v Float64) EncodeXDR(e *Encoder) error { return e.EncodeFloat64(float64(v)) }

func (v *Float64) DecodeXDR(d *Decoder) error {
	x, err := d.DecodeFloat64()
	if err != nil {
		return err
	}
	*v = Float64(x)
	return nil
}

func (Void) EncodeXDR(*Encoder) error  { return nil }
func (*Void) DecodeXDR(*Decoder) error { return nil }

// ============================================================================
// JSON
// ============================================================================

// 64-bit integers are JSON strings so values above 2^53 survive parsers that
// read numbers as doubles. Both strings and bare numbers are accepted.

func (v Int64) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatInt(int64(v), 10))
}

func (v *Int64) UnmarshalJSON(data []byte) error {
	x, err := strconv.ParseInt(unquoteNumber(data), 10, 64)
	if err != nil {
		return err
	}
	*v = Int64(x)
	return nil
}

func (v Uint64) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatUint(uint64(v), 10))
}

func (v *Uint64) UnmarshalJSON(data []byte) error {
	x, err := strconv.ParseUint(unquoteNumber(data), 10, 64)
	if err != nil {
		return err
	}
	*v = Uint64(x)
	return nil
}

func (Void) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

func (*Void) UnmarshalJSON([]byte) error { return nil }

func unquoteNumber(data []byte) string {
	s := strings.TrimSpace(string(data))
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
