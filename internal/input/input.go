// Package input resolves CLI arguments into XDR input sources. An argument
// naming an existing file is read from disk; any other argument is taken as
// the literal input text. No arguments means stdin.
package input

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/marmos91/stellar-xdr/internal/compression"
	"github.com/marmos91/stellar-xdr/internal/logger"
)

// Kind tells where an Input comes from.
type Kind int

const (
	KindStdin Kind = iota
	KindFile
	KindLiteral
)

// Input is an unopened source.
type Input struct {
	Label string
	Kind  Kind

	path    string
	literal []byte
	stdin   io.Reader
}

// Resolve maps args to inputs. An argument is a file when os.Stat succeeds
// on it and it is not a directory.
func Resolve(args []string, stdin io.Reader) []Input {
	if len(args) == 0 {
		return []Input{{Label: "stdin", Kind: KindStdin, stdin: stdin}}
	}
	inputs := make([]Input, 0, len(args))
	for i, arg := range args {
		if fi, err := os.Stat(arg); err == nil && !fi.IsDir() {
			inputs = append(inputs, Input{Label: arg, Kind: KindFile, path: arg})
			continue
		}
		inputs = append(inputs, Input{
			Label:   "arg[" + strconv.Itoa(i) + "]",
			Kind:    KindLiteral,
			literal: []byte(arg),
		})
	}
	return inputs
}

// Literal returns an Input over data, for tests and in-process callers.
func Literal(label string, data []byte) Input {
	return Input{Label: label, Kind: KindLiteral, literal: data}
}

// Source is an opened Input.
type Source struct {
	io.Reader
	Label       string
	Compression compression.Codec

	closers []io.Closer
}

// Close releases the decompressor and the file, in that order.
func (s *Source) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i].Close())
	}
	return errors.Join(errs...)
}

// Open opens the input and applies c. Literal arguments are text and are
// only decompressed when c names a codec explicitly.
func (in Input) Open(c compression.Codec) (*Source, error) {
	src := &Source{Label: in.Label}

	var raw io.Reader
	switch in.Kind {
	case KindFile:
		f, err := os.Open(in.path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", in.path, err)
		}
		src.closers = append(src.closers, f)
		raw = f
	case KindStdin:
		raw = in.stdin
	default:
		raw = bytes.NewReader(in.literal)
		if c == compression.Auto {
			c = compression.None
		}
	}

	rc, applied, err := compression.NewReader(bufio.NewReader(raw), c)
	if err != nil {
		_ = src.Close()
		return nil, fmt.Errorf("%s: %w", in.Label, err)
	}
	src.Reader = rc
	src.Compression = applied
	src.closers = append(src.closers, rc)

	logger.Debug("input opened",
		logger.Input(in.Label),
		logger.Compression(applied.String()))
	return src, nil
}

// ReadAll opens the input and returns its decompressed contents.
func (in Input) ReadAll(c compression.Codec) ([]byte, error) {
	src, err := in.Open(c)
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", in.Label, err)
	}
	return data, nil
}
