// Package xdr provides generic XDR (External Data Representation) encoding and
// decoding per RFC 4506, as used by the Stellar ledger, transaction, SCP and
// overlay wire formats.
//
// Key characteristics of XDR:
//   - Big-endian byte order for all multi-byte integers
//   - 4-byte alignment for all data types
//   - Variable-length data is preceded by a 4-byte length
//   - Strings and opaque data are padded with zero bytes to 4-byte boundaries
//
// Schema types compose the primitives in this package through the XdrEncoder
// and XdrDecoder interfaces. Encoding is done with an Encoder and decoding with
// a Decoder, both of which carry Limits that bound nesting depth and the
// number of bytes processed.
//
// This package contains only generic utilities with no dependencies on
// logging, configuration or any schema-specific package.
//
// Reference: RFC 4506 - XDR: External Data Representation Standard
// https://tools.ietf.org/html/rfc4506
package xdr

// ============================================================================
// XDR Codec Interfaces
// ============================================================================

// XdrEncoder is implemented by types that can encode themselves to XDR format.
//
// Schema types implement EncodeXDR on value receivers so that values can be
// stored directly in a VecM.
type XdrEncoder interface {
	EncodeXDR(e *Encoder) error
}

// XdrDecoder is implemented by types that can decode themselves from XDR format.
//
// Schema types implement DecodeXDR on pointer receivers. Decoding overwrites
// the receiver.
type XdrDecoder interface {
	DecodeXDR(d *Decoder) error
}

// Codec is implemented by pointers to schema types.
type Codec interface {
	XdrEncoder
	XdrDecoder
}
