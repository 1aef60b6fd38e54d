package types

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/marmos91/stellar-xdr/pkg/xdr"
)

// ============================================================================
// Bounds Structs
// ============================================================================

// TimeBounds restricts the close time of the ledger a transaction applies in.
type TimeBounds struct {
	MinTime TimePoint `json:"min_time"`
	// MaxTime 0 means no upper bound.
	MaxTime TimePoint `json:"max_time"`
}

func (b TimeBounds) EncodeXDR(e *xdr.Encoder) error {
	return e.Nest(func() error {
		if err := b.MinTime.EncodeXDR(e); err != nil {
			return err
		}
		return b.MaxTime.EncodeXDR(e)
	})
}

func (b *TimeBounds) DecodeXDR(d *xdr.Decoder) error {
	return d.Nest(func() error {
		if err := b.MinTime.DecodeXDR(d); err != nil {
			return err
		}
		return b.MaxTime.DecodeXDR(d)
	})
}

// LedgerBounds restricts the ledger sequence a transaction applies in.
type LedgerBounds struct {
	MinLedger Uint32 `json:"min_ledger"`
	// MaxLedger 0 means no upper bound.
	MaxLedger Uint32 `json:"max_ledger"`
}

func (b LedgerBounds) EncodeXDR(e *xdr.Encoder) error {
	return e.Nest(func() error {
		if err := b.MinLedger.EncodeXDR(e); err != nil {
			return err
		}
		return b.MaxLedger.EncodeXDR(e)
	})
}

func (b *LedgerBounds) DecodeXDR(d *xdr.Decoder) error {
	return d.Nest(func() error {
		if err := b.MinLedger.DecodeXDR(d); err != nil {
			return err
		}
		return b.MaxLedger.DecodeXDR(d)
	})
}

// ============================================================================
// Preconditions
// ============================================================================

// PreconditionsV2 is
//
//	struct PreconditionsV2
//	{
//	    TimeBounds* timeBounds;
//	    LedgerBounds* ledgerBounds;
//	    SequenceNumber* minSeqNum;
//	    Duration minSeqAge;
//	    uint32 minSeqLedgerGap;
//	    SignerKey extraSigners<2>;
//	};
type PreconditionsV2 struct {
	TimeBounds      *TimeBounds               `json:"time_bounds"`
	LedgerBounds    *LedgerBounds             `json:"ledger_bounds"`
	MinSeqNum       *SequenceNumber           `json:"min_seq_num"`
	MinSeqAge       Duration                  `json:"min_seq_age"`
	MinSeqLedgerGap Uint32                    `json:"min_seq_ledger_gap"`
	ExtraSigners    xdr.VecM[SignerKey, Max2, *SignerKey] `json:"extra_signers"`
}

func (p PreconditionsV2) EncodeXDR(e *xdr.Encoder) error {
	return e.Nest(func() error {
		if err := xdr.EncodeOptional(e, p.TimeBounds); err != nil {
			return err
		}
		if err := xdr.EncodeOptional(e, p.LedgerBounds); err != nil {
			return err
		}
		if err := xdr.EncodeOptional(e, p.MinSeqNum); err != nil {
			return err
		}
		if err := p.MinSeqAge.EncodeXDR(e); err != nil {
			return err
		}
		if err := p.MinSeqLedgerGap.EncodeXDR(e); err != nil {
			return err
		}
		return p.ExtraSigners.EncodeXDR(e)
	})
}

func (p *PreconditionsV2) DecodeXDR(d *xdr.Decoder) error {
	return d.Nest(func() error {
		var err error
		if p.TimeBounds, err = xdr.DecodeOptional[TimeBounds](d); err != nil {
			return err
		}
		if p.LedgerBounds, err = xdr.DecodeOptional[LedgerBounds](d); err != nil {
			return err
		}
		if p.MinSeqNum, err = xdr.DecodeOptional[SequenceNumber](d); err != nil {
			return err
		}
		if err := p.MinSeqAge.DecodeXDR(d); err != nil {
			return err
		}
		if err := p.MinSeqLedgerGap.DecodeXDR(d); err != nil {
			return err
		}
		return p.ExtraSigners.DecodeXDR(d)
	})
}

// PreconditionType selects the arm of Preconditions.
type PreconditionType int32

const (
	PreconditionTypeNone PreconditionType = 0
	PreconditionTypeTime PreconditionType = 1
	PreconditionTypeV2   PreconditionType = 2
)

var preconditionTypeNames = map[int32]string{
	0: "none",
	1: "time",
	2: "v2",
}

func (t PreconditionType) String() string { return enumName(preconditionTypeNames, int32(t)) }

func (t PreconditionType) EncodeXDR(e *xdr.Encoder) error {
	if _, ok := preconditionTypeNames[int32(t)]; !ok {
		return xdr.ErrInvalid
	}
	return e.EncodeEnum(int32(t))
}

func (t *PreconditionType) DecodeXDR(d *xdr.Decoder) error {
	v, err := d.DecodeEnum(preconditionTypeNames)
	if err != nil {
		return err
	}
	*t = PreconditionType(v)
	return nil
}

func (t PreconditionType) MarshalJSON() ([]byte, error) {
	return marshalEnum(preconditionTypeNames, int32(t))
}

func (t *PreconditionType) UnmarshalJSON(data []byte) error {
	v, err := unmarshalEnum(preconditionTypeNames, data)
	*t = PreconditionType(v)
	return err
}

func (PreconditionType) JSONSchema() *jsonschema.Schema { return enumSchema(preconditionTypeNames) }

// Preconditions is
//
//	union Preconditions switch (PreconditionType type)
//	{
//	case PRECOND_NONE:
//	    void;
//	case PRECOND_TIME:
//	    TimeBounds timeBounds;
//	case PRECOND_V2:
//	    PreconditionsV2 v2;
//	};
type Preconditions struct {
	Type       PreconditionType
	TimeBounds *TimeBounds
	V2         *PreconditionsV2
}

func (p Preconditions) arm() (xdr.XdrEncoder, error) {
	switch p.Type {
	case PreconditionTypeNone:
		return xdr.Void{}, nil
	case PreconditionTypeTime:
		if p.TimeBounds != nil {
			return p.TimeBounds, nil
		}
	case PreconditionTypeV2:
		if p.V2 != nil {
			return p.V2, nil
		}
	}
	return nil, xdr.ErrInvalid
}

func (p Preconditions) EncodeXDR(e *xdr.Encoder) error {
	return e.Nest(func() error {
		arm, err := p.arm()
		if err != nil {
			return err
		}
		if err := p.Type.EncodeXDR(e); err != nil {
			return err
		}
		return arm.EncodeXDR(e)
	})
}

func (p *Preconditions) DecodeXDR(d *xdr.Decoder) error {
	return d.Nest(func() error {
		var t PreconditionType
		if err := t.DecodeXDR(d); err != nil {
			return err
		}
		out := Preconditions{Type: t}
		switch t {
		case PreconditionTypeNone:
		case PreconditionTypeTime:
			out.TimeBounds = new(TimeBounds)
			if err := out.TimeBounds.DecodeXDR(d); err != nil {
				return err
			}
		case PreconditionTypeV2:
			out.V2 = new(PreconditionsV2)
			if err := out.V2.DecodeXDR(d); err != nil {
				return err
			}
		default:
			return xdr.ErrInvalid
		}
		*p = out
		return nil
	})
}

func (p Preconditions) MarshalJSON() ([]byte, error) {
	arm, err := p.arm()
	if err != nil {
		return nil, err
	}
	if p.Type == PreconditionTypeNone {
		return json.Marshal(p.Type.String())
	}
	return marshalArm(p.Type.String(), arm)
}

func (p *Preconditions) UnmarshalJSON(data []byte) error {
	name, raw, err := unmarshalArm(data)
	if err != nil {
		return err
	}
	var out Preconditions
	var payload any
	switch name {
	case "none":
		out.Type = PreconditionTypeNone
	case "time":
		out.Type, out.TimeBounds = PreconditionTypeTime, new(TimeBounds)
		payload = out.TimeBounds
	case "v2":
		out.Type, out.V2 = PreconditionTypeV2, new(PreconditionsV2)
		payload = out.V2
	default:
		return fmt.Errorf("%w: unknown preconditions arm %q", xdr.ErrInvalid, name)
	}
	if err := armPayload(name, raw, payload); err != nil {
		return err
	}
	*p = out
	return nil
}

func (Preconditions) JSONSchema() *jsonschema.Schema {
	return unionSchema(map[string]*jsonschema.Schema{
		"none": nil,
		"time": reflectSchema(TimeBounds{}),
		"v2":   reflectSchema(PreconditionsV2{}),
	}, []string{"none", "time", "v2"})
}

// ============================================================================
// Signatures
// ============================================================================

// DecoratedSignature pairs a signature with the hint of the signing key.
type DecoratedSignature struct {
	Hint      SignatureHint `json:"hint"`
	Signature Signature     `json:"signature"`
}

func (s DecoratedSignature) EncodeXDR(e *xdr.Encoder) error {
	return e.Nest(func() error {
		if err := s.Hint.EncodeXDR(e); err != nil {
			return err
		}
		return s.Signature.EncodeXDR(e)
	})
}

func (s *DecoratedSignature) DecodeXDR(d *xdr.Decoder) error {
	return d.Nest(func() error {
		if err := s.Hint.DecodeXDR(d); err != nil {
			return err
		}
		return s.Signature.DecodeXDR(d)
	})
}

// Signatures is DecoratedSignature signatures<20>, as carried by envelopes.
type Signatures = xdr.VecM[DecoratedSignature, Max20, *DecoratedSignature]

// ============================================================================
// EnvelopeType
// ============================================================================

// EnvelopeType tags the payloads that are hashed and signed.
type EnvelopeType int32

const (
	EnvelopeTypeTxV0                 EnvelopeType = 0
	EnvelopeTypeScp                  EnvelopeType = 1
	EnvelopeTypeTx                   EnvelopeType = 2
	EnvelopeTypeAuth                 EnvelopeType = 3
	EnvelopeTypeScpvalue             EnvelopeType = 4
	EnvelopeTypeTxFeeBump            EnvelopeType = 5
	EnvelopeTypeOpID                 EnvelopeType = 6
	EnvelopeTypePoolRevokeOpID       EnvelopeType = 7
	EnvelopeTypeContractID           EnvelopeType = 8
	EnvelopeTypeSorobanAuthorization EnvelopeType = 9
)

var envelopeTypeNames = map[int32]string{
	0: "tx_v0",
	1: "scp",
	2: "tx",
	3: "auth",
	4: "scpvalue",
	5: "tx_fee_bump",
	6: "op_id",
	7: "pool_revoke_op_id",
	8: "contract_id",
	9: "soroban_authorization",
}

func (t EnvelopeType) String() string { return enumName(envelopeTypeNames, int32(t)) }

func (t EnvelopeType) EncodeXDR(e *xdr.Encoder) error {
	if _, ok := envelopeTypeNames[int32(t)]; !ok {
		return xdr.ErrInvalid
	}
	return e.EncodeEnum(int32(t))
}

func (t *EnvelopeType) DecodeXDR(d *xdr.Decoder) error {
	v, err := d.DecodeEnum(envelopeTypeNames)
	if err != nil {
		return err
	}
	*t = EnvelopeType(v)
	return nil
}

func (t EnvelopeType) MarshalJSON() ([]byte, error) { return marshalEnum(envelopeTypeNames, int32(t)) }

func (t *EnvelopeType) UnmarshalJSON(data []byte) error {
	v, err := unmarshalEnum(envelopeTypeNames, data)
	*t = EnvelopeType(v)
	return err
}

func (EnvelopeType) JSONSchema() *jsonschema.Schema { return enumSchema(envelopeTypeNames) }

// ============================================================================
// ExtensionPoint
// ============================================================================

// ExtensionPoint is the reserved extension union
//
//	union ExtensionPoint switch (int v)
//	{
//	case 0:
//	    void;
//	};
type ExtensionPoint struct {
	V int32
}

func (x ExtensionPoint) EncodeXDR(e *xdr.Encoder) error {
	if x.V != 0 {
		return xdr.ErrInvalid
	}
	return e.Nest(func() error {
		return xdr.EncodeUnionDiscriminant(e, x.V)
	})
}

func (x *ExtensionPoint) DecodeXDR(d *xdr.Decoder) error {
	return d.Nest(func() error {
		v, err := xdr.DecodeUnionDiscriminant(d)
		if err != nil {
			return err
		}
		if v != 0 {
			return xdr.ErrInvalid
		}
		x.V = v
		return nil
	})
}

func (x ExtensionPoint) MarshalJSON() ([]byte, error) {
	if x.V != 0 {
		return nil, xdr.ErrInvalid
	}
	return json.Marshal("v0")
}

func (x *ExtensionPoint) UnmarshalJSON(data []byte) error {
	name, raw, err := unmarshalArm(data)
	if err != nil {
		return err
	}
	if name != "v0" {
		return fmt.Errorf("%w: unknown extension arm %q", xdr.ErrInvalid, name)
	}
	if err := armPayload(name, raw, nil); err != nil {
		return err
	}
	x.V = 0
	return nil
}

func (ExtensionPoint) JSONSchema() *jsonschema.Schema {
	return unionSchema(map[string]*jsonschema.Schema{"v0": nil}, []string{"v0"})
}
