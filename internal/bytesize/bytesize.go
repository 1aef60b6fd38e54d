// Package bytesize parses and prints human-readable byte sizes such as the
// "64Mi" default of limits.len. Parsing is delegated to go-humanize.
package bytesize

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// ByteSize is a size in bytes that unmarshals from strings like "64Mi",
// "100MB" or plain numbers.
//
// Supported formats:
//   - Plain numbers: 1024, 67108864
//   - Binary units (×1024): Ki/KiB, Mi/MiB, Gi/GiB, Ti/TiB
//   - Decimal units (×1000): K/KB, M/MB, G/GB, T/TB
type ByteSize uint64

// Common byte size constants
const (
	B  ByteSize = 1
	KB ByteSize = humanize.KByte
	MB ByteSize = humanize.MByte
	GB ByteSize = humanize.GByte
	TB ByteSize = humanize.TByte

	KiB ByteSize = humanize.KiByte
	MiB ByteSize = humanize.MiByte
	GiB ByteSize = humanize.GiByte
	TiB ByteSize = humanize.TiByte
)

// ErrEmpty is returned when parsing a blank string.
var ErrEmpty = errors.New("empty byte size string")

// ParseByteSize parses a human-readable byte size.
func ParseByteSize(s string) (ByteSize, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrEmpty
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid byte size %q: %w", s, err)
	}
	return ByteSize(n), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so ByteSize can be decoded
// by mapstructure and yaml.
func (b *ByteSize) UnmarshalText(text []byte) error {
	size, err := ParseByteSize(string(text))
	if err != nil {
		return err
	}
	*b = size
	return nil
}

// MarshalText renders the size exactly: the largest binary unit that divides
// it, or a plain number.
func (b ByteSize) MarshalText() ([]byte, error) {
	for _, u := range []struct {
		size   ByteSize
		suffix string
	}{{TiB, "Ti"}, {GiB, "Gi"}, {MiB, "Mi"}, {KiB, "Ki"}} {
		if b != 0 && b%u.size == 0 {
			return []byte(strconv.FormatUint(uint64(b/u.size), 10) + u.suffix), nil
		}
	}
	return []byte(strconv.FormatUint(uint64(b), 10)), nil
}

// String returns a rounded human-readable form, e.g. "64 MiB".
func (b ByteSize) String() string {
	return humanize.IBytes(uint64(b))
}

// Uint64 returns the ByteSize as a uint64.
func (b ByteSize) Uint64() uint64 {
	return uint64(b)
}

// Int returns the ByteSize as an int, saturating at math.MaxInt.
func (b ByteSize) Int() int {
	if uint64(b) > math.MaxInt {
		return math.MaxInt
	}
	return int(b)
}
