package xdr

import (
	"bytes"
	"encoding/binary"
	"io"
)

// ============================================================================
// Record Marking (RFC 5531 Section 11)
// ============================================================================

// Per RFC 5531 Section 11 (Record Marking Standard):
// A record is one or more fragments. Each fragment starts with a 4-byte
// header: bit 31 marks the last fragment of the record, bits 0-30 hold the
// fragment length. History archive files store XDR values this way.

const (
	lastFragmentBit = 0x80000000
	fragmentLenMask = 0x7fffffff
)

// EncodeFramed writes v as a single-fragment record.
func EncodeFramed(e *Encoder, v XdrEncoder) error {
	var buf bytes.Buffer
	sub := &Encoder{w: &buf, limits: e.limits}
	if err := v.EncodeXDR(sub); err != nil {
		return err
	}
	if buf.Len() > fragmentLenMask {
		return ErrLengthExceedsMax
	}

	// The payload was charged to the budget by sub; only charge the header here.
	e.limits.Len = sub.limits.Len
	if err := e.EncodeUint32(lastFragmentBit | uint32(buf.Len())); err != nil {
		return err
	}
	n, err := e.w.Write(buf.Bytes())
	if err != nil {
		return ioErr(err)
	}
	if n != buf.Len() {
		return ioErr(io.ErrShortWrite)
	}
	return nil
}

// DecodeFramed reads one record and decodes v from it. Fragments are
// reassembled. If v does not consume exactly the bytes of the record the
// result is ErrLengthMismatch and the remainder of the record is skipped.
func DecodeFramed(d *Decoder, v XdrDecoder) error {
	// The header is read lazily but costs a level like the one EncodeFramed writes.
	if err := d.limits.enter(); err != nil {
		return err
	}
	d.limits.leave()

	fr := &frameReader{d: d, r: d.r}
	d.r = fr
	err := v.DecodeXDR(d)
	d.r = fr.r
	if err != nil {
		return err
	}

	var one [1]byte
	n, err := fr.Read(one[:])
	if n > 0 {
		if _, err := io.Copy(io.Discard, fr); err != nil {
			return ioErr(err)
		}
		return ErrLengthMismatch
	}
	if err != nil && err != io.EOF {
		return ioErr(err)
	}
	return nil
}

// frameReader presents the fragments of one record as a contiguous stream and
// returns io.EOF at the end of the last fragment.
type frameReader struct {
	d         *Decoder
	r         io.Reader
	remaining uint32
	last      bool
	started   bool
}

func (f *frameReader) Read(p []byte) (int, error) {
	for f.remaining == 0 {
		if f.started && f.last {
			return 0, io.EOF
		}
		if err := f.nextHeader(); err != nil {
			return 0, err
		}
	}
	if uint32(len(p)) > f.remaining {
		p = p[:f.remaining]
	}
	n, err := f.r.Read(p)
	f.remaining -= uint32(n)
	if err == io.EOF && f.remaining > 0 {
		err = io.ErrUnexpectedEOF
	}
	if err == io.EOF {
		err = nil
	}
	return n, err
}

func (f *frameReader) nextHeader() error {
	if err := f.d.limits.consumeLen(4); err != nil {
		return err
	}
	var hdr [4]byte
	if _, err := io.ReadFull(f.r, hdr[:]); err != nil {
		if err == io.EOF {
			return io.ErrUnexpectedEOF
		}
		return err
	}
	h := binary.BigEndian.Uint32(hdr[:])
	f.last = h&lastFragmentBit != 0
	f.remaining = h & fragmentLenMask
	f.started = true
	return nil
}
