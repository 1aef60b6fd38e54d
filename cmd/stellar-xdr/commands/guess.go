package commands

import (
	"bytes"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/marmos91/stellar-xdr/cmd/stellar-xdr/cmdutil"
	"github.com/marmos91/stellar-xdr/internal/compression"
	"github.com/marmos91/stellar-xdr/internal/input"
	"github.com/marmos91/stellar-xdr/internal/logger"
	"github.com/marmos91/stellar-xdr/pkg/types"
	"github.com/marmos91/stellar-xdr/pkg/xdr"
)

var guessOpts struct {
	Input       string
	Certainty   int
	Compression string
}

var guessCmd = &cobra.Command{
	Use:   "guess [INPUT]",
	Short: "Guess the XDR type of an input",
	Long: `Print every type the input decodes as.

A single value matches when the whole input decodes. A stream matches when
its first --certainty values decode; a stream holding fewer values matches
when all of them decode and there is at least one. The command fails when no
type matches.

Examples:
  stellar-xdr guess AAAAAQAAAAVoZWxsbwAAAA==
  stellar-xdr guess --input stream --certainty 5 entries.xdr`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGuess,
}

func init() {
	f := guessCmd.Flags()
	f.StringVar(&guessOpts.Input, "input", string(FormatSingleBase64), "Input format ("+joinFormats(decodeFormats)+")")
	f.IntVar(&guessOpts.Certainty, "certainty", 2, "Number of stream values that must decode")
	f.StringVar(&guessOpts.Compression, "compression", "", "Input compression (auto|none|gzip|zstd|lz4|brotli|snappy)")
}

func runGuess(cmd *cobra.Command, args []string) error {
	format, err := parseXDRFormat(guessOpts.Input, decodeFormats)
	if err != nil {
		return err
	}
	if guessOpts.Certainty < 1 {
		return fmt.Errorf("--certainty must be at least 1, got %d", guessOpts.Certainty)
	}
	codec, err := compression.Parse(orDefault(guessOpts.Compression, cmdutil.Config().Decode.Compression))
	if err != nil {
		return err
	}

	in := input.Resolve(args, cmd.InOrStdin())[0]
	data, err := in.ReadAll(codec)
	if err != nil {
		return err
	}

	limits := cmdutil.Limits()
	matches := 0
	for _, name := range types.Variants() {
		if !guessType(name, data, format, guessOpts.Certainty, limits) {
			continue
		}
		matches++
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
	}

	logger.Info("guess complete",
		logger.Input(in.Label),
		logger.Format(string(format)),
		logger.Bytes(int64(len(data))),
		logger.Matches(matches))
	if m := cmdutil.Metrics(); m != nil {
		m.RecordGuess(matches)
	}

	if matches == 0 {
		cmdutil.RecordError("guess", "", in.Label, cmdutil.ErrNoMatch)
		return cmdutil.ErrNoMatch
	}
	return nil
}

// guessType reports whether data decodes as the named type in format.
func guessType(name string, data []byte, format XDRFormat, certainty int, limits xdr.Limits) bool {
	d := newDecoder(bytes.NewReader(data), format, limits)

	if !format.IsStream() {
		v, err := types.New(name)
		if err != nil {
			return false
		}
		return xdr.ReadToEnd(d, v) == nil
	}

	next := nextFunc(xdr.NewReadIter(d), format)
	count := 0
	for count < certainty {
		v, err := types.New(name)
		if err != nil {
			return false
		}
		err = next(v)
		if err == io.EOF {
			break
		}
		if err != nil {
			return false
		}
		count++
	}
	return count > 0
}
