package types

import (
	"errors"
	"fmt"
	"slices"

	"github.com/marmos91/stellar-xdr/pkg/xdr"
)

// ErrUnknownType is returned by New for a name not in the registry.
var ErrUnknownType = errors.New("unknown type")

// registry maps type names, as written in the schema, to constructors.
var registry = map[string]func() xdr.Codec{
	"AccountId":                     func() xdr.Codec { return new(AccountID) },
	"CryptoKeyType":                 func() xdr.Codec { return new(CryptoKeyType) },
	"DecoratedSignature":            func() xdr.Codec { return new(DecoratedSignature) },
	"Duration":                      func() xdr.Codec { return new(Duration) },
	"EnvelopeType":                  func() xdr.Codec { return new(EnvelopeType) },
	"ExtensionPoint":                func() xdr.Codec { return new(ExtensionPoint) },
	"Hash":                          func() xdr.Codec { return new(Hash) },
	"Int32":                         func() xdr.Codec { return new(Int32) },
	"Int64":                         func() xdr.Codec { return new(Int64) },
	"LedgerBounds":                  func() xdr.Codec { return new(LedgerBounds) },
	"Memo":                          func() xdr.Codec { return new(Memo) },
	"MemoType":                      func() xdr.Codec { return new(MemoType) },
	"NodeId":                        func() xdr.Codec { return new(NodeID) },
	"PreconditionType":              func() xdr.Codec { return new(PreconditionType) },
	"Preconditions":                 func() xdr.Codec { return new(Preconditions) },
	"PreconditionsV2":               func() xdr.Codec { return new(PreconditionsV2) },
	"PublicKey":                     func() xdr.Codec { return new(PublicKey) },
	"PublicKeyType":                 func() xdr.Codec { return new(PublicKeyType) },
	"SequenceNumber":                func() xdr.Codec { return new(SequenceNumber) },
	"Signature":                     func() xdr.Codec { return new(Signature) },
	"SignatureHint":                 func() xdr.Codec { return new(SignatureHint) },
	"Signatures":                    func() xdr.Codec { return new(Signatures) },
	"SignerKey":                     func() xdr.Codec { return new(SignerKey) },
	"SignerKeyEd25519SignedPayload": func() xdr.Codec { return new(SignerKeyEd25519SignedPayload) },
	"SignerKeyType":                 func() xdr.Codec { return new(SignerKeyType) },
	"String32":                      func() xdr.Codec { return new(String32) },
	"String64":                      func() xdr.Codec { return new(String64) },
	"TimeBounds":                    func() xdr.Codec { return new(TimeBounds) },
	"TimePoint":                     func() xdr.Codec { return new(TimePoint) },
	"Uint256":                       func() xdr.Codec { return new(Uint256) },
	"Uint32":                        func() xdr.Codec { return new(Uint32) },
	"Uint64":                        func() xdr.Codec { return new(Uint64) },
}

// Variants returns the registered type names in sorted order.
func Variants() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// New returns a pointer to a zero value of the named type.
func New(name string) (xdr.Codec, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, name)
	}
	return ctor(), nil
}
