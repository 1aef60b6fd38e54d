package xdr

// ============================================================================
// XDR Optional Data
// ============================================================================

// Per RFC 4506 Section 4.19 (Optional-Data):
// Format: [present:uint32 0|1][value if present]
//
// Optional values are Go pointers: nil is absent. The flag and the value are
// processed one depth level below the caller.

// EncodeOptional writes v as optional data. A nil v is encoded as the flag 0.
func EncodeOptional[T any, PT interface {
	*T
	XdrEncoder
}](e *Encoder, v PT) error {
	return e.Nest(func() error {
		if v == nil {
			return e.EncodeUint32(0)
		}
		if err := e.EncodeUint32(1); err != nil {
			return err
		}
		return v.EncodeXDR(e)
	})
}

// DecodeOptional reads optional data. The flag 0 yields nil, 1 yields a freshly
// decoded value and any other flag is ErrInvalid.
//
// Example:
//
//	tb, err := xdr.DecodeOptional[TimeBounds](d)
func DecodeOptional[T any, PT interface {
	*T
	XdrDecoder
}](d *Decoder) (PT, error) {
	var out PT
	err := d.Nest(func() error {
		flag, err := d.DecodeUint32()
		if err != nil {
			return err
		}
		switch flag {
		case 0:
			return nil
		case 1:
			v := PT(new(T))
			if err := v.DecodeXDR(d); err != nil {
				return err
			}
			out = v
			return nil
		default:
			return ErrInvalid
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
