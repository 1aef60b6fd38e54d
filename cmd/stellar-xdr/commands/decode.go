package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/marmos91/stellar-xdr/cmd/stellar-xdr/cmdutil"
	"github.com/marmos91/stellar-xdr/internal/cli/output"
	"github.com/marmos91/stellar-xdr/internal/compression"
	"github.com/marmos91/stellar-xdr/internal/input"
	"github.com/marmos91/stellar-xdr/internal/logger"
	"github.com/marmos91/stellar-xdr/pkg/xdr"
)

var decodeOpts struct {
	Type        string
	Input       string
	Output      string
	Compression string
	KeepGoing   bool
}

var decodeCmd = &cobra.Command{
	Use:   "decode [INPUT...]",
	Short: "Decode XDR to JSON",
	Long: `Decode XDR values of one type and print them.

Each INPUT is a file if a file with that name exists, and otherwise the XDR
itself. Stdin is read when no INPUT is given. Files and stdin may be
compressed; the codec is detected from the leading bytes unless
--compression names one.

Examples:
  # Decode a base64 memo
  stellar-xdr decode --type Memo --input single-base64 AAAAAQAAAAVoZWxsbwAAAA==

  # Decode a gzipped history archive file
  stellar-xdr decode --type Memo --input stream-framed memos.xdr.gz

  # Keep going past broken files and print YAML
  stellar-xdr decode --type Memo --keep-going -o yaml a.b64 b.b64`,
	RunE: runDecode,
}

func init() {
	f := decodeCmd.Flags()
	f.StringVar(&decodeOpts.Type, "type", "", "XDR type to decode")
	f.StringVar(&decodeOpts.Input, "input", "", "Input format ("+joinFormats(decodeFormats)+")")
	f.StringVarP(&decodeOpts.Output, "output", "o", "", "Output format (json|json-formatted|yaml|debug|debug-formatted)")
	f.StringVar(&decodeOpts.Compression, "compression", "", "Input compression (auto|none|gzip|zstd|lz4|brotli|snappy)")
	f.BoolVar(&decodeOpts.KeepGoing, "keep-going", false, "Continue with the next input after a failure")
	_ = decodeCmd.MarkFlagRequired("type")
}

func runDecode(cmd *cobra.Command, args []string) error {
	conf := cmdutil.Config().Decode

	if _, err := cmdutil.NewValue(decodeOpts.Type); err != nil {
		return err
	}
	format, err := parseXDRFormat(orDefault(decodeOpts.Input, conf.InputFormat), decodeFormats)
	if err != nil {
		return err
	}
	outFormat, err := output.ParseFormat(orDefault(decodeOpts.Output, conf.OutputFormat), output.ValueFormats...)
	if err != nil {
		return err
	}
	codec, err := compression.Parse(orDefault(decodeOpts.Compression, conf.Compression))
	if err != nil {
		return err
	}

	w := &valueWriter{
		printer: output.NewValuePrinter(cmd.OutOrStdout(), outFormat),
		typ:     decodeOpts.Type,
		format:  format,
	}
	failures := &cmdutil.Failures{KeepGoing: decodeOpts.KeepGoing}
	lc := logger.NewLogContext("decode").WithType(decodeOpts.Type)

	for _, in := range input.Resolve(args, cmd.InOrStdin()) {
		ctx := logger.WithContext(cmd.Context(), lc.WithInput(in.Label, string(format)))
		n, err := decodeInput(ctx, in, codec, w)
		if err != nil {
			cmdutil.RecordError("decode", decodeOpts.Type, in.Label, err)
			if err := failures.Add(in.Label, err); err != nil {
				return err
			}
			continue
		}
		logger.InfoCtx(ctx, "input decoded", logger.Records(n))
	}
	return failures.Err()
}

// decodeInput decodes every value of in and returns how many were printed.
func decodeInput(ctx context.Context, in input.Input, codec compression.Codec, w *valueWriter) (int, error) {
	src, err := in.Open(codec)
	if err != nil {
		return 0, err
	}
	defer func() { _ = src.Close() }()

	d := newDecoder(src, w.format, cmdutil.Limits())

	if !w.format.IsStream() {
		start, budget := time.Now(), d.Limits().Len
		v, err := cmdutil.NewValue(w.typ)
		if err != nil {
			return 0, err
		}
		if err := xdr.ReadToEnd(d, v); err != nil {
			return 0, fmt.Errorf("error decoding XDR: %w", err)
		}
		return 1, w.write(v, start, budget-d.Limits().Len)
	}

	it := xdr.NewReadIter(d)
	next := nextFunc(it, w.format)
	for n := 0; ; n++ {
		start, budget := time.Now(), d.Limits().Len
		v, err := cmdutil.NewValue(w.typ)
		if err != nil {
			return n, err
		}
		err = next(v)
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, fmt.Errorf("error decoding XDR record %d: %w", n, err)
		}
		if err := w.write(v, start, budget-d.Limits().Len); err != nil {
			return n, err
		}
		logger.DebugCtx(ctx, "record decoded", logger.Record(n))
	}
}

// valueWriter prints decoded values and records them.
type valueWriter struct {
	printer *output.Printer
	typ     string
	format  XDRFormat
	written int
}

// write prints v. size is the number of XDR bytes v was decoded from,
// framing included.
func (w *valueWriter) write(v xdr.Codec, start time.Time, size int) error {
	if w.printer.Format() == output.FormatYAML && w.written > 0 {
		_, _ = fmt.Fprintln(w.printer.Writer(), "---")
	}
	if err := w.printer.Print(deref(v)); err != nil {
		return fmt.Errorf("error printing value: %w", err)
	}
	w.written++

	if m := cmdutil.Metrics(); m != nil {
		m.RecordDecoded(w.typ, string(w.format), int64(size), time.Since(start))
	}
	return nil
}
