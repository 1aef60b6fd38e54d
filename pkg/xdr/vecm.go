package xdr

import (
	"encoding/json"
	"iter"
	"math"
	"slices"
)

// ============================================================================
// Bounds
// ============================================================================

// Bound carries the maximum length of a bounded vector at the type level.
// Implementations are empty structs:
//
//	type Max20 struct{}
//
//	func (Max20) Max() uint32 { return 20 }
type Bound interface {
	Max() uint32
}

// Unbounded is the bound of vectors declared without a maximum (e.g. opaque<>).
type Unbounded struct{}

func (Unbounded) Max() uint32 { return math.MaxUint32 }

func maxOf[B Bound]() uint32 {
	var b B
	return b.Max()
}

// checkLen fails with ErrLengthExceedsMax when n exceeds max or the u32 range.
func checkLen(n int, max uint32) error {
	if uint64(n) > math.MaxUint32 || uint64(n) > uint64(max) {
		return ErrLengthExceedsMax
	}
	return nil
}

// ============================================================================
// VecM - Variable-Length Array
// ============================================================================

// VecM is an XDR variable-length array of T holding at most B.Max() elements.
//
// Per RFC 4506 Section 4.13 (Variable-Length Array):
// Format: [count:uint32][element 0]...[element count-1]
//
// The bound holds on every construction path. The zero value is an empty
// vector. PT is always *T; it names the element codec so that only element
// types that decode can be used:
//
//	type Signatures = xdr.VecM[DecoratedSignature, Max20, *DecoratedSignature]
type VecM[T any, B Bound, PT interface {
	*T
	Codec
}] struct {
	items []T
}

// NewVecM copies items into a VecM. More than B.Max() items is
// ErrLengthExceedsMax.
func NewVecM[T any, B Bound, PT interface {
	*T
	Codec
}](items []T) (VecM[T, B, PT], error) {
	if err := checkLen(len(items), maxOf[B]()); err != nil {
		return VecM[T, B, PT]{}, err
	}
	if len(items) == 0 {
		return VecM[T, B, PT]{}, nil
	}
	return VecM[T, B, PT]{items: slices.Clone(items)}, nil
}

// VecMOf builds a VecM from its arguments.
//
// Example:
//
//	sigs, err := xdr.VecMOf[DecoratedSignature, Max20](a, b)
func VecMOf[T any, B Bound, PT interface {
	*T
	Codec
}](items ...T) (VecM[T, B, PT], error) {
	return NewVecM[T, B, PT](items)
}

// MaxLen returns the bound of the vector type.
func (v VecM[T, B, PT]) MaxLen() uint32 { return maxOf[B]() }

// Len returns the number of elements.
func (v VecM[T, B, PT]) Len() int { return len(v.items) }

// IsEmpty reports whether the vector has no elements.
func (v VecM[T, B, PT]) IsEmpty() bool { return len(v.items) == 0 }

// Items returns the elements without copying. The slice must not be modified.
func (v VecM[T, B, PT]) Items() []T { return v.items }

// ToSlice returns a copy of the elements.
func (v VecM[T, B, PT]) ToSlice() []T { return slices.Clone(v.items) }

// All iterates over index and element pairs.
func (v VecM[T, B, PT]) All() iter.Seq2[int, T] {
	return slices.All(v.items)
}

// EncodeXDR writes the element count followed by each element.
func (v VecM[T, B, PT]) EncodeXDR(e *Encoder) error {
	return e.Nest(func() error {
		if err := checkLen(len(v.items), maxOf[B]()); err != nil {
			return err
		}
		if err := e.EncodeUint32(uint32(len(v.items))); err != nil {
			return err
		}
		for i := range v.items {
			if err := PT(&v.items[i]).EncodeXDR(e); err != nil {
				return err
			}
		}
		return nil
	})
}

// DecodeXDR reads the element count, rejects counts above the bound before
// reading any element, then decodes the elements in order.
func (v *VecM[T, B, PT]) DecodeXDR(d *Decoder) error {
	return d.Nest(func() error {
		n, err := d.DecodeUint32()
		if err != nil {
			return err
		}
		if n > maxOf[B]() {
			return ErrLengthExceedsMax
		}

		// Capacity follows what actually decodes, not the declared count.
		items := make([]T, 0, min(n, 64))
		for range n {
			var item T
			if err := PT(&item).DecodeXDR(d); err != nil {
				return err
			}
			items = append(items, item)
		}
		if len(items) == 0 {
			items = nil
		}
		v.items = items
		return nil
	})
}

func (v VecM[T, B, PT]) MarshalJSON() ([]byte, error) {
	if v.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(v.items)
}

func (v *VecM[T, B, PT]) UnmarshalJSON(data []byte) error {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	vec, err := NewVecM[T, B, PT](items)
	if err != nil {
		return err
	}
	*v = vec
	return nil
}
