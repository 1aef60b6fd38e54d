package commands

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/marmos91/stellar-xdr/pkg/xdr"
)

// XDRFormat names how XDR values are laid out in an input or output.
type XDRFormat string

const (
	FormatSingle       XDRFormat = "single"
	FormatSingleBase64 XDRFormat = "single-base64"
	FormatStream       XDRFormat = "stream"
	FormatStreamBase64 XDRFormat = "stream-base64"
	FormatStreamFramed XDRFormat = "stream-framed"
)

var (
	decodeFormats  = []XDRFormat{FormatSingle, FormatSingleBase64, FormatStream, FormatStreamBase64, FormatStreamFramed}
	encodeFormats  = []XDRFormat{FormatSingle, FormatSingleBase64, FormatStream, FormatStreamFramed}
	compareFormats = []XDRFormat{FormatSingle, FormatSingleBase64}
)

func parseXDRFormat(s string, allowed []XDRFormat) (XDRFormat, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, f := range allowed {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid XDR format: %q (valid: %s)", s, joinFormats(allowed))
}

func joinFormats(formats []XDRFormat) string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return strings.Join(names, "|")
}

// IsStream reports whether the format holds any number of values.
func (f XDRFormat) IsStream() bool {
	return f == FormatStream || f == FormatStreamBase64 || f == FormatStreamFramed
}

// IsBase64 reports whether the format is base64 text.
func (f XDRFormat) IsBase64() bool {
	return f == FormatSingleBase64 || f == FormatStreamBase64
}

// newDecoder returns a decoder reading the values of format from r.
func newDecoder(r io.Reader, format XDRFormat, limits xdr.Limits) *xdr.Decoder {
	if format.IsBase64() {
		return xdr.NewBase64Decoder(r, limits)
	}
	return xdr.NewDecoder(r, limits)
}

// nextFunc returns the iterator step matching format.
func nextFunc(it *xdr.ReadIter, format XDRFormat) func(xdr.XdrDecoder) error {
	if format == FormatStreamFramed {
		return it.NextFramed
	}
	return it.Next
}

// orDefault returns flag unless it is empty.
func orDefault(flag, def string) string {
	if flag != "" {
		return flag
	}
	return def
}

// deref returns the value v points to, so printers show the value itself.
func deref(v any) any {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() {
		return rv.Elem().Interface()
	}
	return v
}
