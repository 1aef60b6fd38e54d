package xdr

// ============================================================================
// XDR Discriminated Union Helpers
// ============================================================================

// EncodeUnionDiscriminant writes the discriminant of an XDR union.
//
// Per RFC 4506 Section 4.15 (Discriminated Unions):
// The discriminant is encoded as a 4-byte integer before the arm data.
func EncodeUnionDiscriminant(e *Encoder, disc int32) error {
	return e.EncodeInt32(disc)
}

// DecodeUnionDiscriminant reads the discriminant of an XDR union.
// Callers reject discriminants without an arm with ErrInvalid.
func DecodeUnionDiscriminant(d *Decoder) (int32, error) {
	return d.DecodeInt32()
}
