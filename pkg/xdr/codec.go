package xdr

import (
	"bytes"
	"encoding/base64"
	"io"
	"strings"
)

// ============================================================================
// Whole-Value Decoding
// ============================================================================

// Read decodes v from d, overwriting it. Bytes after the value are left in
// the source.
func Read(d *Decoder, v XdrDecoder) error {
	return v.DecodeXDR(d)
}

// ReadToEnd decodes v from d and requires the source to be exhausted
// afterwards. Residual bytes are ErrInvalid.
func ReadToEnd(d *Decoder, v XdrDecoder) error {
	if err := v.DecodeXDR(d); err != nil {
		return err
	}
	return d.atEOF()
}

// atEOF reports ErrInvalid if the source still has bytes.
func (d *Decoder) atEOF() error {
	var one [1]byte
	for {
		n, err := d.r.Read(one[:])
		if n > 0 {
			return ErrInvalid
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return ioErr(err)
		}
	}
}

// Unmarshal decodes data into v. The whole buffer must be consumed.
//
// Example:
//
//	var memo types.Memo
//	err := xdr.Unmarshal(data, &memo, xdr.DefaultLimits())
func Unmarshal(data []byte, v XdrDecoder, limits Limits) error {
	return ReadToEnd(NewDecoder(bytes.NewReader(data), limits), v)
}

// Decode is the value-returning form of Unmarshal.
func Decode[T any, PT interface {
	*T
	XdrDecoder
}](data []byte, limits Limits) (T, error) {
	var v T
	if err := Unmarshal(data, PT(&v), limits); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// ============================================================================
// Base64
// ============================================================================

// NewBase64Decoder returns a Decoder over standard base64 read from r. ASCII
// whitespace in r is ignored. Malformed base64 surfaces as an *IOError.
func NewBase64Decoder(r io.Reader, limits Limits) *Decoder {
	return NewDecoder(base64.NewDecoder(base64.StdEncoding, SkipWhitespace(r)), limits)
}

// ReadBase64ToEnd decodes a single base64 encoded value from r. The whole
// input must be consumed.
func ReadBase64ToEnd(r io.Reader, v XdrDecoder, limits Limits) error {
	return ReadToEnd(NewBase64Decoder(r, limits), v)
}

// UnmarshalBase64 decodes base64 text into v.
func UnmarshalBase64(text string, v XdrDecoder, limits Limits) error {
	return ReadBase64ToEnd(strings.NewReader(text), v, limits)
}

// ============================================================================
// Whole-Value Encoding
// ============================================================================

// Write encodes v to w.
func Write(w io.Writer, v XdrEncoder, limits Limits) error {
	return v.EncodeXDR(NewEncoder(w, limits))
}

// Marshal encodes v into a new byte slice.
func Marshal(v XdrEncoder, limits Limits) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, v, limits); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalBase64 encodes v as standard padded base64.
func MarshalBase64(v XdrEncoder, limits Limits) (string, error) {
	var sb strings.Builder
	enc := base64.NewEncoder(base64.StdEncoding, &sb)
	if err := Write(enc, v, limits); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", ioErr(err)
	}
	return sb.String(), nil
}
