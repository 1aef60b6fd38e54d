package types

import (
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/stellar/go/strkey"

	"github.com/marmos91/stellar-xdr/pkg/xdr"
)

// ============================================================================
// CryptoKeyType
// ============================================================================

// CryptoKeyType enumerates the key material kinds known to the network.
type CryptoKeyType int32

const (
	CryptoKeyTypeEd25519              CryptoKeyType = 0
	CryptoKeyTypePreAuthTx            CryptoKeyType = 1
	CryptoKeyTypeHashX                CryptoKeyType = 2
	CryptoKeyTypeEd25519SignedPayload CryptoKeyType = 3
	CryptoKeyTypeMuxedEd25519         CryptoKeyType = 0x100
)

var cryptoKeyTypeNames = map[int32]string{
	0:     "ed25519",
	1:     "pre_auth_tx",
	2:     "hash_x",
	3:     "ed25519_signed_payload",
	0x100: "muxed_ed25519",
}

func (t CryptoKeyType) String() string { return enumName(cryptoKeyTypeNames, int32(t)) }

func (t CryptoKeyType) EncodeXDR(e *xdr.Encoder) error {
	if _, ok := cryptoKeyTypeNames[int32(t)]; !ok {
		return xdr.ErrInvalid
	}
	return e.EncodeEnum(int32(t))
}

func (t *CryptoKeyType) DecodeXDR(d *xdr.Decoder) error {
	v, err := d.DecodeEnum(cryptoKeyTypeNames)
	if err != nil {
		return err
	}
	*t = CryptoKeyType(v)
	return nil
}

func (t CryptoKeyType) MarshalJSON() ([]byte, error) { return marshalEnum(cryptoKeyTypeNames, int32(t)) }

func (t *CryptoKeyType) UnmarshalJSON(data []byte) error {
	v, err := unmarshalEnum(cryptoKeyTypeNames, data)
	*t = CryptoKeyType(v)
	return err
}

func (CryptoKeyType) JSONSchema() *jsonschema.Schema { return enumSchema(cryptoKeyTypeNames) }

// ============================================================================
// PublicKey
// ============================================================================

// PublicKeyType selects the arm of PublicKey.
type PublicKeyType int32

const PublicKeyTypeEd25519 PublicKeyType = 0

var publicKeyTypeNames = map[int32]string{
	0: "public_key_type_ed25519",
}

func (t PublicKeyType) String() string { return enumName(publicKeyTypeNames, int32(t)) }

func (t PublicKeyType) EncodeXDR(e *xdr.Encoder) error {
	if _, ok := publicKeyTypeNames[int32(t)]; !ok {
		return xdr.ErrInvalid
	}
	return e.EncodeEnum(int32(t))
}

func (t *PublicKeyType) DecodeXDR(d *xdr.Decoder) error {
	v, err := d.DecodeEnum(publicKeyTypeNames)
	if err != nil {
		return err
	}
	*t = PublicKeyType(v)
	return nil
}

func (t PublicKeyType) MarshalJSON() ([]byte, error) { return marshalEnum(publicKeyTypeNames, int32(t)) }

func (t *PublicKeyType) UnmarshalJSON(data []byte) error {
	v, err := unmarshalEnum(publicKeyTypeNames, data)
	*t = PublicKeyType(v)
	return err
}

func (PublicKeyType) JSONSchema() *jsonschema.Schema { return enumSchema(publicKeyTypeNames) }

// PublicKey is
//
//	union PublicKey switch (PublicKeyType type)
//	{
//	case PUBLIC_KEY_TYPE_ED25519:
//	    uint256 ed25519;
//	};
//
// Its JSON and text form is a strkey account address (G...).
type PublicKey struct {
	Type    PublicKeyType
	Ed25519 *Uint256
}

// AccountID and NodeID are typedefs of PublicKey.
type (
	AccountID = PublicKey
	NodeID    = PublicKey
)

// NewPublicKeyEd25519 returns the ed25519 arm of PublicKey.
func NewPublicKeyEd25519(key Uint256) PublicKey {
	return PublicKey{Type: PublicKeyTypeEd25519, Ed25519: &key}
}

// PublicKeyFromAddress parses a strkey account address.
func PublicKeyFromAddress(address string) (PublicKey, error) {
	raw, err := strkey.Decode(strkey.VersionByteAccountID, address)
	if err != nil {
		return PublicKey{}, fmt.Errorf("%w: %v", xdr.ErrInvalid, err)
	}
	var key Uint256
	if len(raw) != len(key) {
		return PublicKey{}, xdr.ErrLengthMismatch
	}
	copy(key[:], raw)
	return NewPublicKeyEd25519(key), nil
}

func (k PublicKey) EncodeXDR(e *xdr.Encoder) error {
	return e.Nest(func() error {
		if err := k.Type.EncodeXDR(e); err != nil {
			return err
		}
		switch k.Type {
		case PublicKeyTypeEd25519:
			if k.Ed25519 == nil {
				return xdr.ErrInvalid
			}
			return k.Ed25519.EncodeXDR(e)
		default:
			return xdr.ErrInvalid
		}
	})
}

func (k *PublicKey) DecodeXDR(d *xdr.Decoder) error {
	return d.Nest(func() error {
		var t PublicKeyType
		if err := t.DecodeXDR(d); err != nil {
			return err
		}
		switch t {
		case PublicKeyTypeEd25519:
			var key Uint256
			if err := key.DecodeXDR(d); err != nil {
				return err
			}
			*k = PublicKey{Type: t, Ed25519: &key}
			return nil
		default:
			return xdr.ErrInvalid
		}
	})
}

// Address returns the strkey account address.
func (k PublicKey) Address() (string, error) {
	if k.Type != PublicKeyTypeEd25519 || k.Ed25519 == nil {
		return "", xdr.ErrInvalid
	}
	return strkey.Encode(strkey.VersionByteAccountID, k.Ed25519[:])
}

func (k PublicKey) String() string {
	addr, err := k.Address()
	if err != nil {
		return fmt.Sprintf("PublicKey(%s)", k.Type)
	}
	return addr
}

func (k PublicKey) MarshalText() ([]byte, error) {
	addr, err := k.Address()
	if err != nil {
		return nil, err
	}
	return []byte(addr), nil
}

func (k *PublicKey) UnmarshalText(text []byte) error {
	pk, err := PublicKeyFromAddress(string(text))
	if err != nil {
		return err
	}
	*k = pk
	return nil
}

func (PublicKey) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", Pattern: "^G[A-Z2-7]{55}$"}
}

// ============================================================================
// SignerKey
// ============================================================================

// SignerKeyType selects the arm of SignerKey.
type SignerKeyType int32

const (
	SignerKeyTypeEd25519              SignerKeyType = 0
	SignerKeyTypePreAuthTx            SignerKeyType = 1
	SignerKeyTypeHashX                SignerKeyType = 2
	SignerKeyTypeEd25519SignedPayload SignerKeyType = 3
)

var signerKeyTypeNames = map[int32]string{
	0: "ed25519",
	1: "pre_auth_tx",
	2: "hash_x",
	3: "ed25519_signed_payload",
}

func (t SignerKeyType) String() string { return enumName(signerKeyTypeNames, int32(t)) }

func (t SignerKeyType) EncodeXDR(e *xdr.Encoder) error {
	if _, ok := signerKeyTypeNames[int32(t)]; !ok {
		return xdr.ErrInvalid
	}
	return e.EncodeEnum(int32(t))
}

func (t *SignerKeyType) DecodeXDR(d *xdr.Decoder) error {
	v, err := d.DecodeEnum(signerKeyTypeNames)
	if err != nil {
		return err
	}
	*t = SignerKeyType(v)
	return nil
}

func (t SignerKeyType) MarshalJSON() ([]byte, error) { return marshalEnum(signerKeyTypeNames, int32(t)) }

func (t *SignerKeyType) UnmarshalJSON(data []byte) error {
	v, err := unmarshalEnum(signerKeyTypeNames, data)
	*t = SignerKeyType(v)
	return err
}

func (SignerKeyType) JSONSchema() *jsonschema.Schema { return enumSchema(signerKeyTypeNames) }

// SignerKeyEd25519SignedPayload is the payload arm of SignerKey.
type SignerKeyEd25519SignedPayload struct {
	Ed25519 Uint256           `json:"ed25519"`
	Payload xdr.BytesM[Max64] `json:"payload"`
}

func (p SignerKeyEd25519SignedPayload) EncodeXDR(e *xdr.Encoder) error {
	return e.Nest(func() error {
		if err := p.Ed25519.EncodeXDR(e); err != nil {
			return err
		}
		return p.Payload.EncodeXDR(e)
	})
}

func (p *SignerKeyEd25519SignedPayload) DecodeXDR(d *xdr.Decoder) error {
	return d.Nest(func() error {
		if err := p.Ed25519.DecodeXDR(d); err != nil {
			return err
		}
		return p.Payload.DecodeXDR(d)
	})
}

// SignerKey is
//
//	union SignerKey switch (SignerKeyType type)
//	{
//	case SIGNER_KEY_TYPE_ED25519:
//	    uint256 ed25519;
//	case SIGNER_KEY_TYPE_PRE_AUTH_TX:
//	    uint256 preAuthTx;
//	case SIGNER_KEY_TYPE_HASH_X:
//	    uint256 hashX;
//	case SIGNER_KEY_TYPE_ED25519_SIGNED_PAYLOAD:
//	    struct { uint256 ed25519; opaque payload<64>; } ed25519SignedPayload;
//	};
//
// Its JSON and text form is a strkey (G..., T..., X... or P...).
type SignerKey struct {
	Type                 SignerKeyType
	Ed25519              *Uint256
	PreAuthTx            *Uint256
	HashX                *Uint256
	Ed25519SignedPayload *SignerKeyEd25519SignedPayload
}

func (k SignerKey) EncodeXDR(e *xdr.Encoder) error {
	return e.Nest(func() error {
		if err := k.Type.EncodeXDR(e); err != nil {
			return err
		}
		arm, err := k.arm()
		if err != nil {
			return err
		}
		return arm.EncodeXDR(e)
	})
}

// arm returns the payload selected by Type, or ErrInvalid if it is unset.
func (k SignerKey) arm() (xdr.XdrEncoder, error) {
	var arm xdr.XdrEncoder
	switch k.Type {
	case SignerKeyTypeEd25519:
		if k.Ed25519 != nil {
			arm = k.Ed25519
		}
	case SignerKeyTypePreAuthTx:
		if k.PreAuthTx != nil {
			arm = k.PreAuthTx
		}
	case SignerKeyTypeHashX:
		if k.HashX != nil {
			arm = k.HashX
		}
	case SignerKeyTypeEd25519SignedPayload:
		if k.Ed25519SignedPayload != nil {
			arm = k.Ed25519SignedPayload
		}
	}
	if arm == nil {
		return nil, xdr.ErrInvalid
	}
	return arm, nil
}

func (k *SignerKey) DecodeXDR(d *xdr.Decoder) error {
	return d.Nest(func() error {
		var t SignerKeyType
		if err := t.DecodeXDR(d); err != nil {
			return err
		}
		out := SignerKey{Type: t}
		switch t {
		case SignerKeyTypeEd25519:
			out.Ed25519 = new(Uint256)
			if err := out.Ed25519.DecodeXDR(d); err != nil {
				return err
			}
		case SignerKeyTypePreAuthTx:
			out.PreAuthTx = new(Uint256)
			if err := out.PreAuthTx.DecodeXDR(d); err != nil {
				return err
			}
		case SignerKeyTypeHashX:
			out.HashX = new(Uint256)
			if err := out.HashX.DecodeXDR(d); err != nil {
				return err
			}
		case SignerKeyTypeEd25519SignedPayload:
			out.Ed25519SignedPayload = new(SignerKeyEd25519SignedPayload)
			if err := out.Ed25519SignedPayload.DecodeXDR(d); err != nil {
				return err
			}
		default:
			return xdr.ErrInvalid
		}
		*k = out
		return nil
	})
}

var signerKeyVersions = map[SignerKeyType]strkey.VersionByte{
	SignerKeyTypeEd25519:              strkey.VersionByteAccountID,
	SignerKeyTypePreAuthTx:            strkey.VersionByteHashTx,
	SignerKeyTypeHashX:                strkey.VersionByteHashX,
	SignerKeyTypeEd25519SignedPayload: strkey.VersionByteSignedPayload,
}

// Address returns the strkey form. The signed payload strkey carries the XDR
// encoding of the payload arm.
func (k SignerKey) Address() (string, error) {
	arm, err := k.arm()
	if err != nil {
		return "", err
	}
	raw, err := xdr.Marshal(arm, xdr.DefaultLimits())
	if err != nil {
		return "", err
	}
	return strkey.Encode(signerKeyVersions[k.Type], raw)
}

func (k SignerKey) MarshalText() ([]byte, error) {
	addr, err := k.Address()
	if err != nil {
		return nil, err
	}
	return []byte(addr), nil
}

func (k *SignerKey) UnmarshalText(text []byte) error {
	version, raw, err := strkey.DecodeAny(string(text))
	if err != nil {
		return fmt.Errorf("%w: %v", xdr.ErrInvalid, err)
	}
	for t, v := range signerKeyVersions {
		if v != version {
			continue
		}
		// The XDR of the arm follows the discriminant on the wire.
		wire := append([]byte{0, 0, 0, byte(t)}, raw...)
		return xdr.Unmarshal(wire, k, xdr.DefaultLimits())
	}
	return fmt.Errorf("%w: unexpected strkey version %d", xdr.ErrInvalid, version)
}

func (SignerKey) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", Pattern: "^[GTXP][A-Z2-7]+$"}
}
