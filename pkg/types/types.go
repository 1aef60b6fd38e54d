// Package types holds a sample of the Stellar schema types, written in the
// shape generated code takes on top of pkg/xdr.
//
// Every construct of the XDR language the runtime supports is represented:
// typedefs of primitives, fixed opaque arrays, bounded strings and opaque
// data, enums, structs, discriminated unions, optional fields and bounded
// arrays of structs.
//
// JSON conventions:
//   - struct fields are snake_case
//   - opaque data is lowercase hex, 64-bit integers are strings
//   - enums are their snake_case names
//   - unions are externally tagged: a bare string for void arms, otherwise a
//     single-key object naming the arm
//   - public keys are strkey strings (G..., T..., X...)
package types

import (
	"encoding/hex"

	"github.com/invopop/jsonschema"

	"github.com/marmos91/stellar-xdr/pkg/xdr"
)

// ============================================================================
// Bounds
// ============================================================================

type (
	Max2  struct{}
	Max20 struct{}
	Max28 struct{}
	Max32 struct{}
	Max64 struct{}
)

func (Max2) Max() uint32  { return 2 }
func (Max20) Max() uint32 { return 20 }
func (Max28) Max() uint32 { return 28 }
func (Max32) Max() uint32 { return 32 }
func (Max64) Max() uint32 { return 64 }

// ============================================================================
// Typedefs
// ============================================================================

type (
	Uint32 = xdr.Uint32
	Int32  = xdr.Int32
	Uint64 = xdr.Uint64
	Int64  = xdr.Int64

	// TimePoint is seconds since the Unix epoch.
	TimePoint = xdr.Uint64
	// Duration is a number of seconds.
	Duration       = xdr.Uint64
	SequenceNumber = xdr.Int64

	String32 = xdr.StringM[Max32]
	String64 = xdr.StringM[Max64]

	// Signature is opaque<64>.
	Signature = xdr.BytesM[Max64]
)

// ============================================================================
// Fixed Opaque
// ============================================================================

// Hash is opaque[32].
type Hash [32]byte

func (h Hash) EncodeXDR(e *xdr.Encoder) error {
	return e.Nest(func() error { return e.EncodeFixedOpaque(h[:]) })
}

// DecodeXDR leaves the receiver untouched when decoding fails.
func (h *Hash) DecodeXDR(d *xdr.Decoder) error {
	return d.Nest(func() error {
		var b Hash
		if err := d.DecodeFixedOpaque(b[:]); err != nil {
			return err
		}
		*h = b
		return nil
	})
}

func (h Hash) String() string               { return hex.EncodeToString(h[:]) }
func (h Hash) MarshalText() ([]byte, error) { return []byte(h.String()), nil }
func (h *Hash) UnmarshalText(text []byte) error {
	return unmarshalFixedHex(h[:], text)
}
func (Hash) JSONSchema() *jsonschema.Schema { return fixedHexSchema(32) }

// Uint256 is opaque[32].
type Uint256 [32]byte

func (u Uint256) EncodeXDR(e *xdr.Encoder) error {
	return e.Nest(func() error { return e.EncodeFixedOpaque(u[:]) })
}

// DecodeXDR leaves the receiver untouched when decoding fails.
func (u *Uint256) DecodeXDR(d *xdr.Decoder) error {
	return d.Nest(func() error {
		var b Uint256
		if err := d.DecodeFixedOpaque(b[:]); err != nil {
			return err
		}
		*u = b
		return nil
	})
}

func (u Uint256) String() string               { return hex.EncodeToString(u[:]) }
func (u Uint256) MarshalText() ([]byte, error) { return []byte(u.String()), nil }
func (u *Uint256) UnmarshalText(text []byte) error {
	return unmarshalFixedHex(u[:], text)
}
func (Uint256) JSONSchema() *jsonschema.Schema { return fixedHexSchema(32) }

// SignatureHint is opaque[4], the last four bytes of the signing public key.
type SignatureHint [4]byte

func (s SignatureHint) EncodeXDR(e *xdr.Encoder) error {
	return e.Nest(func() error { return e.EncodeFixedOpaque(s[:]) })
}

// DecodeXDR leaves the receiver untouched when decoding fails.
func (s *SignatureHint) DecodeXDR(d *xdr.Decoder) error {
	return d.Nest(func() error {
		var b SignatureHint
		if err := d.DecodeFixedOpaque(b[:]); err != nil {
			return err
		}
		*s = b
		return nil
	})
}

func (s SignatureHint) String() string               { return hex.EncodeToString(s[:]) }
func (s SignatureHint) MarshalText() ([]byte, error) { return []byte(s.String()), nil }
func (s *SignatureHint) UnmarshalText(text []byte) error {
	return unmarshalFixedHex(s[:], text)
}
func (SignatureHint) JSONSchema() *jsonschema.Schema { return fixedHexSchema(4) }

func unmarshalFixedHex(dst []byte, text []byte) error {
	b, err := xdr.DecodeHex(string(text))
	if err != nil {
		return err
	}
	if len(b) != len(dst) {
		return xdr.ErrLengthMismatch
	}
	copy(dst, b)
	return nil
}
