package xdr

import "io"

// skipWhitespace drops ASCII whitespace from the wrapped reader.
type skipWhitespace struct {
	r io.Reader
}

// SkipWhitespace returns a reader yielding the bytes of r with ASCII
// whitespace removed, so base64 wrapped across lines or indented decodes.
func SkipWhitespace(r io.Reader) io.Reader {
	return &skipWhitespace{r: r}
}

func (s *skipWhitespace) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for {
		n, err := s.r.Read(p)
		kept := 0
		for _, c := range p[:n] {
			switch c {
			case ' ', '\t', '\n', '\r', '\f':
				continue
			}
			p[kept] = c
			kept++
		}
		if kept > 0 || err != nil {
			return kept, err
		}
	}
}
