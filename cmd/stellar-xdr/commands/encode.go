package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/marmos91/stellar-xdr/cmd/stellar-xdr/cmdutil"
	"github.com/marmos91/stellar-xdr/internal/compression"
	"github.com/marmos91/stellar-xdr/internal/input"
	"github.com/marmos91/stellar-xdr/internal/logger"
	"github.com/marmos91/stellar-xdr/pkg/xdr"
)

var encodeOpts struct {
	Type        string
	Input       string
	Output      string
	Compression string
	KeepGoing   bool
}

var encodeCmd = &cobra.Command{
	Use:   "encode [INPUT...]",
	Short: "Encode JSON to XDR",
	Long: `Encode JSON values of one type to XDR.

Each INPUT is a file if a file with that name exists, and otherwise the JSON
itself. Stdin is read when no INPUT is given. With a single output format
every INPUT holds exactly one value; with a stream format an INPUT may hold
any number of JSON values, written one after another.

Examples:
  # Encode a memo to base64
  stellar-xdr encode --type Memo '{"text":"hello"}'

  # Encode a file of memos to a zstd compressed record-marked stream
  stellar-xdr encode --type Memo --output stream-framed --compression zstd memos.json > memos.xdr.zst`,
	RunE: runEncode,
}

func init() {
	f := encodeCmd.Flags()
	f.StringVar(&encodeOpts.Type, "type", "", "XDR type to encode")
	f.StringVar(&encodeOpts.Input, "input", "json", "Input format (json)")
	f.StringVarP(&encodeOpts.Output, "output", "o", "", "Output format ("+joinFormats(encodeFormats)+")")
	f.StringVar(&encodeOpts.Compression, "compression", "", "Output compression for binary formats (none|gzip|zstd|lz4|brotli|snappy)")
	f.BoolVar(&encodeOpts.KeepGoing, "keep-going", false, "Continue with the next input after a failure")
	_ = encodeCmd.MarkFlagRequired("type")
}

func runEncode(cmd *cobra.Command, args []string) (err error) {
	conf := cmdutil.Config().Encode

	if _, err := cmdutil.NewValue(encodeOpts.Type); err != nil {
		return err
	}
	if encodeOpts.Input != "json" {
		return fmt.Errorf("invalid input format: %q (valid: json)", encodeOpts.Input)
	}
	format, err := parseXDRFormat(orDefault(encodeOpts.Output, conf.OutputFormat), encodeFormats)
	if err != nil {
		return err
	}
	codec, err := compression.Parse(orDefault(encodeOpts.Compression, conf.Compression))
	if err != nil {
		return err
	}
	if codec == compression.Auto {
		return errors.New("output compression must be named explicitly")
	}
	if codec != compression.None && format.IsBase64() {
		return fmt.Errorf("compression %s requires a binary output format", codec)
	}

	out, err := compression.NewWriter(cmd.OutOrStdout(), codec)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to flush output: %w", cerr)
		}
	}()

	failures := &cmdutil.Failures{KeepGoing: encodeOpts.KeepGoing}
	lc := logger.NewLogContext("encode").WithType(encodeOpts.Type)

	for _, in := range input.Resolve(args, cmd.InOrStdin()) {
		ctx := logger.WithContext(cmd.Context(), lc.WithInput(in.Label, string(format)))
		n, err := encodeInput(ctx, in, format, out)
		if err != nil {
			cmdutil.RecordError("encode", encodeOpts.Type, in.Label, err)
			if err := failures.Add(in.Label, err); err != nil {
				return err
			}
			continue
		}
		logger.InfoCtx(ctx, "input encoded", logger.Records(n))
	}
	return failures.Err()
}

// encodeInput encodes the JSON values of in to out and returns their count.
func encodeInput(ctx context.Context, in input.Input, format XDRFormat, out io.Writer) (int, error) {
	src, err := in.Open(compression.Auto)
	if err != nil {
		return 0, err
	}
	defer func() { _ = src.Close() }()

	dec := json.NewDecoder(src)
	limits := cmdutil.Limits()

	if !format.IsStream() {
		start := time.Now()
		v, err := readJSON(dec)
		if err != nil {
			return 0, err
		}
		if dec.More() {
			return 0, errors.New("error decoding JSON: unexpected data after the value")
		}
		if err := writeValue(xdr.NewEncoder(out, limits), out, format, v); err != nil {
			return 0, err
		}
		recordEncoded(format, v, start)
		return 1, nil
	}

	// One encoder for the whole stream so the limits span every value.
	enc := xdr.NewEncoder(out, limits)
	for n := 0; ; n++ {
		start := time.Now()
		v, err := readJSON(dec)
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, fmt.Errorf("value %d: %w", n, err)
		}
		if err := writeValue(enc, out, format, v); err != nil {
			return n, fmt.Errorf("value %d: %w", n, err)
		}
		recordEncoded(format, v, start)
		logger.DebugCtx(ctx, "record encoded", logger.Record(n))
	}
}

// readJSON decodes the next JSON value into a fresh value of the type.
// io.EOF is returned bare at the end of the input.
func readJSON(dec *json.Decoder) (xdr.Codec, error) {
	v, err := cmdutil.NewValue(encodeOpts.Type)
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(v); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("error decoding JSON: %w", err)
	}
	return v, nil
}

func writeValue(enc *xdr.Encoder, out io.Writer, format XDRFormat, v xdr.Codec) error {
	var err error
	switch format {
	case FormatSingleBase64:
		var text string
		text, err = xdr.MarshalBase64(v, enc.Limits())
		if err == nil {
			_, err = fmt.Fprintln(out, text)
		}
	case FormatStreamFramed:
		err = xdr.EncodeFramed(enc, v)
	default:
		err = v.EncodeXDR(enc)
	}
	if err != nil {
		return fmt.Errorf("error generating XDR: %w", err)
	}
	return nil
}

func recordEncoded(format XDRFormat, v xdr.Codec, start time.Time) {
	m := cmdutil.Metrics()
	if m == nil {
		return
	}
	data, err := xdr.Marshal(v, xdr.NoLimits())
	if err == nil {
		m.RecordEncoded(encodeOpts.Type, string(format), int64(len(data)), time.Since(start))
	}
}
