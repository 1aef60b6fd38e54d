package xdr

import (
	"bufio"
	"io"
	"iter"
)

// ============================================================================
// Stream Iteration
// ============================================================================

// ReadIter decodes a sequence of values concatenated in one source.
//
// Each call to Next peeks one byte first. An empty source at a value boundary
// is the clean end of the sequence and is reported as io.EOF. A failure never
// ends the sequence by itself: the caller decides whether to call Next again.
type ReadIter struct {
	d  *Decoder
	br *bufio.Reader
}

// NewReadIter wraps the source of d in a *bufio.Reader, reusing it if it
// already is one. The decoder keeps reading through the buffered reader.
func NewReadIter(d *Decoder) *ReadIter {
	br, ok := d.r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(d.r)
		d.r = br
	}
	return &ReadIter{d: d, br: br}
}

// Next decodes the next value into v one depth level below the decoder. It
// returns io.EOF when the source is exhausted, an *IOError when the source
// fails before a value starts, and otherwise the error of decoding v.
func (it *ReadIter) Next(v XdrDecoder) error {
	if err := it.peek(); err != nil {
		return err
	}
	return it.d.Nest(func() error {
		return v.DecodeXDR(it.d)
	})
}

// NextFramed is Next for record-marked sources (see DecodeFramed).
func (it *ReadIter) NextFramed(v XdrDecoder) error {
	if err := it.peek(); err != nil {
		return err
	}
	return it.d.Nest(func() error {
		return DecodeFramed(it.d, v)
	})
}

func (it *ReadIter) peek() error {
	if _, err := it.br.Peek(1); err != nil {
		if err == io.EOF {
			return io.EOF
		}
		return ioErr(err)
	}
	return nil
}

// ReadAll returns the values of d as a sequence for range-over-func. The
// sequence ends at the clean end of the source or when the loop stops.
//
// Example:
//
//	for memo, err := range xdr.ReadAll[types.Memo](d) {
//		if err != nil {
//			// handle and keep going, or break
//		}
//	}
func ReadAll[T any, PT interface {
	*T
	XdrDecoder
}](d *Decoder) iter.Seq2[T, error] {
	it := NewReadIter(d)
	return seq[T, PT](it.Next)
}

// ReadFramedAll is ReadAll for record-marked sources.
func ReadFramedAll[T any, PT interface {
	*T
	XdrDecoder
}](d *Decoder) iter.Seq2[T, error] {
	it := NewReadIter(d)
	return seq[T, PT](it.NextFramed)
}

func seq[T any, PT interface {
	*T
	XdrDecoder
}](next func(XdrDecoder) error) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			var v T
			err := next(PT(&v))
			if err == io.EOF {
				return
			}
			if !yield(v, err) {
				return
			}
		}
	}
}
