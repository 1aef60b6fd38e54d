package xdr

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"unicode/utf8"
)

// ============================================================================
// BytesM - Variable-Length Opaque Data
// ============================================================================

// BytesM is XDR variable-length opaque data of at most B.Max() bytes.
//
// Its JSON and text form is lowercase hex.
type BytesM[B Bound] struct {
	data []byte
}

// NewBytesM copies b into a BytesM. More than B.Max() bytes is
// ErrLengthExceedsMax.
func NewBytesM[B Bound](b []byte) (BytesM[B], error) {
	if err := checkLen(len(b), maxOf[B]()); err != nil {
		return BytesM[B]{}, err
	}
	if len(b) == 0 {
		return BytesM[B]{}, nil
	}
	return BytesM[B]{data: bytes.Clone(b)}, nil
}

// BytesMFromString builds a BytesM holding the bytes of s.
func BytesMFromString[B Bound](s string) (BytesM[B], error) {
	return NewBytesM[B]([]byte(s))
}

func (v BytesM[B]) MaxLen() uint32 { return maxOf[B]() }
func (v BytesM[B]) Len() int       { return len(v.data) }
func (v BytesM[B]) IsEmpty() bool  { return len(v.data) == 0 }

// Bytes returns the content without copying. The slice must not be modified.
func (v BytesM[B]) Bytes() []byte { return v.data }

// ToBytes returns a copy of the content.
func (v BytesM[B]) ToBytes() []byte { return bytes.Clone(v.data) }

// Text converts the content to a string, failing with *UTF8Error if it is not
// valid UTF-8.
func (v BytesM[B]) Text() (string, error) {
	return utf8Text(v.data)
}

// String returns the hex form.
func (v BytesM[B]) String() string {
	return hex.EncodeToString(v.data)
}

func (v BytesM[B]) EncodeXDR(e *Encoder) error {
	return e.EncodeOpaque(v.data, maxOf[B]())
}

func (v *BytesM[B]) DecodeXDR(d *Decoder) error {
	data, err := d.DecodeOpaque(maxOf[B]())
	if err != nil {
		return err
	}
	if len(data) == 0 {
		data = nil
	}
	v.data = data
	return nil
}

func (v BytesM[B]) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(v.data)), nil
}

func (v *BytesM[B]) UnmarshalText(text []byte) error {
	b, err := DecodeHex(string(text))
	if err != nil {
		return err
	}
	bm, err := NewBytesM[B](b)
	if err != nil {
		return err
	}
	*v = bm
	return nil
}

// ============================================================================
// StringM - XDR String
// ============================================================================

// StringM is an XDR string of at most B.Max() bytes.
//
// XDR strings are bytes and need not be UTF-8. The JSON and display form
// escapes non-printable bytes (see Escape).
type StringM[B Bound] struct {
	data []byte
}

// NewStringM builds a StringM holding the bytes of s.
func NewStringM[B Bound](s string) (StringM[B], error) {
	return StringMFromBytes[B]([]byte(s))
}

// StringMFromBytes copies b into a StringM.
func StringMFromBytes[B Bound](b []byte) (StringM[B], error) {
	if err := checkLen(len(b), maxOf[B]()); err != nil {
		return StringM[B]{}, err
	}
	if len(b) == 0 {
		return StringM[B]{}, nil
	}
	return StringM[B]{data: bytes.Clone(b)}, nil
}

func (v StringM[B]) MaxLen() uint32 { return maxOf[B]() }
func (v StringM[B]) Len() int       { return len(v.data) }
func (v StringM[B]) IsEmpty() bool  { return len(v.data) == 0 }

// Bytes returns the content without copying. The slice must not be modified.
func (v StringM[B]) Bytes() []byte { return v.data }

// ToBytes returns a copy of the content.
func (v StringM[B]) ToBytes() []byte { return bytes.Clone(v.data) }

// Text converts the content to a string, failing with *UTF8Error if it is not
// valid UTF-8.
func (v StringM[B]) Text() (string, error) {
	return utf8Text(v.data)
}

// String returns the escaped form.
func (v StringM[B]) String() string {
	return Escape(v.data)
}

func (v StringM[B]) EncodeXDR(e *Encoder) error {
	return e.EncodeOpaque(v.data, maxOf[B]())
}

func (v *StringM[B]) DecodeXDR(d *Decoder) error {
	data, err := d.DecodeOpaque(maxOf[B]())
	if err != nil {
		return err
	}
	if len(data) == 0 {
		data = nil
	}
	v.data = data
	return nil
}

func (v StringM[B]) MarshalJSON() ([]byte, error) {
	return json.Marshal(Escape(v.data))
}

func (v *StringM[B]) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	b, err := Unescape(s)
	if err != nil {
		return err
	}
	sm, err := StringMFromBytes[B](b)
	if err != nil {
		return err
	}
	*v = sm
	return nil
}

// ============================================================================
// Helpers
// ============================================================================

func utf8Text(b []byte) (string, error) {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return "", &UTF8Error{Offset: i}
		}
		i += size
	}
	return string(b), nil
}

// DecodeHex is hex.DecodeString with failures mapped to ErrInvalidHex.
func DecodeHex(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, ErrInvalidHex
	}
	return b, nil
}
