// Package compression recognizes and undoes the compression wrapped around
// XDR inputs, such as the gzip of history archive files, and applies it to
// encoded output.
package compression

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	xerial "github.com/eapache/go-xerial-snappy"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec names a compression format.
type Codec string

const (
	Auto   Codec = "auto"
	None   Codec = "none"
	Gzip   Codec = "gzip"
	Zstd   Codec = "zstd"
	LZ4    Codec = "lz4"
	Brotli Codec = "brotli"
	Snappy Codec = "snappy"
)

// Codecs lists every accepted name, Auto first.
var Codecs = []Codec{Auto, None, Gzip, Zstd, LZ4, Brotli, Snappy}

// ErrUnknownCodec is returned by Parse for an unrecognized name.
var ErrUnknownCodec = errors.New("unknown compression")

// Parse converts a case-insensitive name into a Codec. An empty name is Auto.
func Parse(s string) (Codec, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Auto, nil
	}
	for _, c := range Codecs {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCodec, s)
}

func (c Codec) String() string { return string(c) }

// ============================================================================
// Detection
// ============================================================================

var (
	gzipMagic         = []byte{0x1f, 0x8b}
	zstdMagic         = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic          = []byte{0x04, 0x22, 0x4d, 0x18}
	snappyFramedMagic = []byte{0xff, 0x06, 0x00, 0x00, 's', 'N', 'a', 'P', 'p', 'Y'}
	snappyXerialMagic = []byte{0x82, 'S', 'N', 'A', 'P', 'P', 'Y', 0x00}
)

// maxMagic is the longest prefix Detect needs.
const maxMagic = 10

// Detect identifies the compression of the stream in br by its leading magic
// bytes without consuming them. Brotli has no magic number and is never
// detected. Input shorter than a magic number is None.
func Detect(br *bufio.Reader) (Codec, error) {
	head, err := br.Peek(maxMagic)
	if err != nil && !errors.Is(err, io.EOF) {
		return None, err
	}
	switch {
	case bytes.HasPrefix(head, gzipMagic):
		return Gzip, nil
	case bytes.HasPrefix(head, zstdMagic):
		return Zstd, nil
	case bytes.HasPrefix(head, lz4Magic):
		return LZ4, nil
	case bytes.HasPrefix(head, snappyFramedMagic), bytes.HasPrefix(head, snappyXerialMagic):
		return Snappy, nil
	}
	return None, nil
}

// ============================================================================
// Readers
// ============================================================================

// NewReader returns a reader that decompresses r according to c. Auto detects
// the codec first. The returned codec is the one applied. Closing the
// ReadCloser releases decoder resources but does not close r.
func NewReader(r io.Reader, c Codec) (io.ReadCloser, Codec, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}

	if c == Auto {
		var err error
		if c, err = Detect(br); err != nil {
			return nil, None, err
		}
	}

	switch c {
	case None:
		return io.NopCloser(br), None, nil
	case Gzip:
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, c, fmt.Errorf("gzip: %w", err)
		}
		return zr, c, nil
	case Zstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, c, fmt.Errorf("zstd: %w", err)
		}
		return zr.IOReadCloser(), c, nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(br)), c, nil
	case Brotli:
		return io.NopCloser(brotli.NewReader(br)), c, nil
	case Snappy:
		rc, err := newSnappyReader(br)
		return rc, c, err
	default:
		return nil, c, fmt.Errorf("%w: %q", ErrUnknownCodec, string(c))
	}
}

// newSnappyReader handles both the framing format and the xerial block
// format. Xerial streams are not incremental and are decoded in full.
func newSnappyReader(br *bufio.Reader) (io.ReadCloser, error) {
	head, err := br.Peek(len(snappyXerialMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if !bytes.Equal(head, snappyXerialMagic) {
		return io.NopCloser(snappy.NewReader(br)), nil
	}
	src, err := io.ReadAll(br)
	if err != nil {
		return nil, err
	}
	data, err := xerial.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("snappy: %w", err)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// ============================================================================
// Writers
// ============================================================================

// NewWriter returns a writer compressing into w with c. Close flushes the
// compressed stream but does not close w. Auto and None write through.
// Snappy writes the framing format.
func NewWriter(w io.Writer, c Codec) (io.WriteCloser, error) {
	switch c {
	case Auto, None:
		return nopWriteCloser{w}, nil
	case Gzip:
		return gzip.NewWriter(w), nil
	case Zstd:
		return zstd.NewWriter(w)
	case LZ4:
		return lz4.NewWriter(w), nil
	case Brotli:
		return brotli.NewWriter(w), nil
	case Snappy:
		return snappy.NewBufferedWriter(w), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, string(c))
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
