package xdr

import (
	"strings"
)

const hexDigits = "0123456789abcdef"

// Escape renders arbitrary bytes as printable ASCII. Printable characters are
// kept, backslash and the common control characters use their short escape
// and every other byte becomes \xNN.
//
// Example:
//
//	[]byte("a\x00\xff\\") → `a\0\xff\\`
func Escape(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		switch {
		case c == '\\':
			sb.WriteString(`\\`)
		case c == '\n':
			sb.WriteString(`\n`)
		case c == '\r':
			sb.WriteString(`\r`)
		case c == '\t':
			sb.WriteString(`\t`)
		case c == 0:
			sb.WriteString(`\0`)
		case c >= 0x20 && c <= 0x7e:
			sb.WriteByte(c)
		default:
			sb.WriteString(`\x`)
			sb.WriteByte(hexDigits[c>>4])
			sb.WriteByte(hexDigits[c&0x0f])
		}
	}
	return sb.String()
}

// Unescape reverses Escape. A malformed escape sequence is ErrInvalid.
func Unescape(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			out = append(out, c)
			continue
		}
		i++
		if i >= len(s) {
			return nil, ErrInvalid
		}
		switch s[i] {
		case '\\':
			out = append(out, '\\')
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case '0':
			out = append(out, 0)
		case 'x':
			if i+2 >= len(s) {
				return nil, ErrInvalid
			}
			hi, ok1 := fromHexDigit(s[i+1])
			lo, ok2 := fromHexDigit(s[i+2])
			if !ok1 || !ok2 {
				return nil, ErrInvalid
			}
			out = append(out, hi<<4|lo)
			i += 2
		default:
			return nil, ErrInvalid
		}
	}
	return out, nil
}

func fromHexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
