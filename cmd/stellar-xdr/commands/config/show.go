package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/stellar-xdr/cmd/stellar-xdr/cmdutil"
	"github.com/marmos91/stellar-xdr/internal/cli/output"
	"github.com/marmos91/stellar-xdr/pkg/config"
)

var showOutput string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Print the configuration after defaults, environment variables and flags
have been applied.`,
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVarP(&showOutput, "output", "o", "yaml", "Output format (yaml|table)")
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg := cmdutil.Config()

	format, err := output.ParseFormat(showOutput, output.FormatYAML, output.FormatTable)
	if err != nil {
		return err
	}

	if format == output.FormatYAML {
		data, err := config.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	return output.SimpleTable(cmd.OutOrStdout(), [][2]string{
		{"logging.level", cfg.Logging.Level},
		{"logging.format", cfg.Logging.Format},
		{"logging.output", cfg.Logging.Output},
		{"limits.depth", fmt.Sprint(cfg.Limits.Depth)},
		{"limits.len", cfg.Limits.Len.String()},
		{"decode.input_format", cfg.Decode.InputFormat},
		{"decode.output_format", cfg.Decode.OutputFormat},
		{"decode.compression", cfg.Decode.Compression},
		{"encode.output_format", cfg.Encode.OutputFormat},
		{"encode.compression", cfg.Encode.Compression},
		{"metrics.enabled", fmt.Sprint(cfg.Metrics.Enabled)},
		{"metrics.textfile", cfg.Metrics.Textfile},
	})
}
