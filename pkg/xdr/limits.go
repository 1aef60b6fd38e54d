package xdr

import "math"

// Default limits used by DefaultLimits.
const (
	// DefaultDepthLimit bounds the nesting of values.
	DefaultDepthLimit = 500

	// DefaultLenLimit bounds the bytes processed by one Decoder or Encoder (64 MiB).
	DefaultLenLimit = 64 << 20
)

// Limits bounds the work an Encoder or Decoder will do.
//
// Depth is the remaining nesting budget: every value consumes one level while
// it is processed, primitives included. A value that reads a length or flag
// before its payload (bool, enum, optional, opaque, string) holds its level
// while that inner u32 takes another, so a bare u32 needs Depth 1 and an
// optional u32 needs Depth 2. Len is the remaining byte budget:
// every byte read or written consumes one unit. Both protect against hostile
// input that would otherwise exhaust the stack or memory.
type Limits struct {
	Depth uint32
	Len   int
}

// NoLimits returns limits that never trigger.
func NoLimits() Limits {
	return Limits{Depth: math.MaxUint32, Len: math.MaxInt}
}

// DefaultLimits returns the limits used when a caller has no better value.
func DefaultLimits() Limits {
	return Limits{Depth: DefaultDepthLimit, Len: DefaultLenLimit}
}

// consumeLen takes n bytes from the length budget.
func (l *Limits) consumeLen(n int) error {
	if n < 0 || n > l.Len {
		return ErrLengthLimitExceeded
	}
	l.Len -= n
	return nil
}

// enter takes one level from the depth budget. Every enter that succeeds is
// paired with a leave.
func (l *Limits) enter() error {
	if l.Depth == 0 {
		return ErrDepthLimitExceeded
	}
	l.Depth--
	return nil
}

func (l *Limits) leave() {
	if l.Depth < math.MaxUint32 {
		l.Depth++
	}
}

// nest runs fn with one level taken from the depth budget.
func (l *Limits) nest(fn func() error) error {
	if err := l.enter(); err != nil {
		return err
	}
	defer l.leave()
	return fn()
}
