package commands

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/stellar-xdr/cmd/stellar-xdr/cmdutil"
	"github.com/marmos91/stellar-xdr/internal/compression"
	"github.com/marmos91/stellar-xdr/internal/input"
	"github.com/marmos91/stellar-xdr/pkg/xdr"
)

var compareOpts struct {
	Type  string
	Input string
}

var compareCmd = &cobra.Command{
	Use:   "compare INPUT1 INPUT2",
	Short: "Compare two XDR values",
	Long: `Decode two values of one type and print -1, 0 or 1 as the first is less
than, equal to, or greater than the second.

Values are ordered by their canonical XDR encoding, byte by byte.

Examples:
  stellar-xdr compare --type Memo a.b64 b.b64`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	f := compareCmd.Flags()
	f.StringVar(&compareOpts.Type, "type", "", "XDR type of both inputs")
	f.StringVar(&compareOpts.Input, "input", string(FormatSingleBase64), "Input format ("+joinFormats(compareFormats)+")")
	_ = compareCmd.MarkFlagRequired("type")
}

func runCompare(cmd *cobra.Command, args []string) error {
	format, err := parseXDRFormat(compareOpts.Input, compareFormats)
	if err != nil {
		return err
	}

	var encoded [2][]byte
	for i, in := range input.Resolve(args, cmd.InOrStdin()) {
		data, err := canonical(in, format)
		if err != nil {
			cmdutil.RecordError("compare", compareOpts.Type, in.Label, err)
			return fmt.Errorf("%s: %w", in.Label, err)
		}
		encoded[i] = data
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), bytes.Compare(encoded[0], encoded[1]))
	return nil
}

// canonical decodes in and returns the re-encoding of the value.
func canonical(in input.Input, format XDRFormat) ([]byte, error) {
	v, err := cmdutil.NewValue(compareOpts.Type)
	if err != nil {
		return nil, err
	}

	src, err := in.Open(compression.Auto)
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()

	if err := xdr.ReadToEnd(newDecoder(src, format, cmdutil.Limits()), v); err != nil {
		return nil, fmt.Errorf("error decoding XDR: %w", err)
	}
	return xdr.Marshal(v, xdr.NoLimits())
}
