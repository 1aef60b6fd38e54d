package types

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/marmos91/stellar-xdr/pkg/xdr"
)

// MemoType selects the arm of Memo.
type MemoType int32

const (
	MemoTypeNone   MemoType = 0
	MemoTypeText   MemoType = 1
	MemoTypeID     MemoType = 2
	MemoTypeHash   MemoType = 3
	MemoTypeReturn MemoType = 4
)

var memoTypeNames = map[int32]string{
	0: "none",
	1: "text",
	2: "id",
	3: "hash",
	4: "return",
}

func (t MemoType) String() string { return enumName(memoTypeNames, int32(t)) }

func (t MemoType) EncodeXDR(e *xdr.Encoder) error {
	if _, ok := memoTypeNames[int32(t)]; !ok {
		return xdr.ErrInvalid
	}
	return e.EncodeEnum(int32(t))
}

func (t *MemoType) DecodeXDR(d *xdr.Decoder) error {
	v, err := d.DecodeEnum(memoTypeNames)
	if err != nil {
		return err
	}
	*t = MemoType(v)
	return nil
}

func (t MemoType) MarshalJSON() ([]byte, error) { return marshalEnum(memoTypeNames, int32(t)) }

func (t *MemoType) UnmarshalJSON(data []byte) error {
	v, err := unmarshalEnum(memoTypeNames, data)
	*t = MemoType(v)
	return err
}

func (MemoType) JSONSchema() *jsonschema.Schema { return enumSchema(memoTypeNames) }

// Memo is
//
//	union Memo switch (MemoType type)
//	{
//	case MEMO_NONE:
//	    void;
//	case MEMO_TEXT:
//	    string text<28>;
//	case MEMO_ID:
//	    uint64 id;
//	case MEMO_HASH:
//	    Hash hash;
//	case MEMO_RETURN:
//	    Hash retHash;
//	};
type Memo struct {
	Type    MemoType
	Text    *xdr.StringM[Max28]
	ID      *Uint64
	Hash    *Hash
	RetHash *Hash
}

// NewMemoText returns a text memo. Text longer than 28 bytes is
// ErrLengthExceedsMax.
func NewMemoText(text string) (Memo, error) {
	s, err := xdr.NewStringM[Max28](text)
	if err != nil {
		return Memo{}, err
	}
	return Memo{Type: MemoTypeText, Text: &s}, nil
}

// NewMemoID returns an id memo.
func NewMemoID(id uint64) Memo {
	v := Uint64(id)
	return Memo{Type: MemoTypeID, ID: &v}
}

// NewMemoHash returns a hash memo.
func NewMemoHash(h Hash) Memo {
	return Memo{Type: MemoTypeHash, Hash: &h}
}

// NewMemoReturn returns a return-hash memo.
func NewMemoReturn(h Hash) Memo {
	return Memo{Type: MemoTypeReturn, RetHash: &h}
}

// arm returns the payload selected by Type. MEMO_NONE has none.
func (m Memo) arm() (xdr.XdrEncoder, error) {
	switch m.Type {
	case MemoTypeNone:
		return xdr.Void{}, nil
	case MemoTypeText:
		if m.Text != nil {
			return m.Text, nil
		}
	case MemoTypeID:
		if m.ID != nil {
			return m.ID, nil
		}
	case MemoTypeHash:
		if m.Hash != nil {
			return m.Hash, nil
		}
	case MemoTypeReturn:
		if m.RetHash != nil {
			return m.RetHash, nil
		}
	}
	return nil, xdr.ErrInvalid
}

func (m Memo) EncodeXDR(e *xdr.Encoder) error {
	return e.Nest(func() error {
		arm, err := m.arm()
		if err != nil {
			return err
		}
		if err := m.Type.EncodeXDR(e); err != nil {
			return err
		}
		return arm.EncodeXDR(e)
	})
}

func (m *Memo) DecodeXDR(d *xdr.Decoder) error {
	return d.Nest(func() error {
		var t MemoType
		if err := t.DecodeXDR(d); err != nil {
			return err
		}
		out := Memo{Type: t}
		var arm xdr.XdrDecoder
		switch t {
		case MemoTypeNone:
		case MemoTypeText:
			out.Text = new(xdr.StringM[Max28])
			arm = out.Text
		case MemoTypeID:
			out.ID = new(Uint64)
			arm = out.ID
		case MemoTypeHash:
			out.Hash = new(Hash)
			arm = out.Hash
		case MemoTypeReturn:
			out.RetHash = new(Hash)
			arm = out.RetHash
		default:
			return xdr.ErrInvalid
		}
		if arm != nil {
			if err := arm.DecodeXDR(d); err != nil {
				return err
			}
		}
		*m = out
		return nil
	})
}

func (m Memo) MarshalJSON() ([]byte, error) {
	arm, err := m.arm()
	if err != nil {
		return nil, err
	}
	if m.Type == MemoTypeNone {
		return json.Marshal(m.Type.String())
	}
	return marshalArm(m.Type.String(), arm)
}

func (m *Memo) UnmarshalJSON(data []byte) error {
	name, raw, err := unmarshalArm(data)
	if err != nil {
		return err
	}
	var out Memo
	var payload any
	switch name {
	case "none":
		out.Type = MemoTypeNone
	case "text":
		out.Type, out.Text = MemoTypeText, new(xdr.StringM[Max28])
		payload = out.Text
	case "id":
		out.Type, out.ID = MemoTypeID, new(Uint64)
		payload = out.ID
	case "hash":
		out.Type, out.Hash = MemoTypeHash, new(Hash)
		payload = out.Hash
	case "return":
		out.Type, out.RetHash = MemoTypeReturn, new(Hash)
		payload = out.RetHash
	default:
		return fmt.Errorf("%w: unknown memo arm %q", xdr.ErrInvalid, name)
	}
	if err := armPayload(name, raw, payload); err != nil {
		return err
	}
	*m = out
	return nil
}

func (Memo) JSONSchema() *jsonschema.Schema {
	return unionSchema(map[string]*jsonschema.Schema{
		"none":   nil,
		"text":   xdr.StringM[Max28]{}.JSONSchema(),
		"id":     Uint64(0).JSONSchema(),
		"hash":   Hash{}.JSONSchema(),
		"return": Hash{}.JSONSchema(),
	}, []string{"none", "text", "id", "hash", "return"})
}
