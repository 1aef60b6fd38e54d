package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/stellar-xdr/cmd/stellar-xdr/cmdutil"
	"github.com/marmos91/stellar-xdr/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long: `Validate the stellar-xdr configuration file.

Checks for syntax errors and invalid values.

Examples:
  # Validate default config
  stellar-xdr config validate

  # Validate specific config file
  stellar-xdr config validate --config ./stellar-xdr.yaml`,
	Annotations: map[string]string{cmdutil.AnnotationNoSetup: "true"},
	RunE:        runConfigValidate,
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	configPath := cmdutil.Flags.ConfigPath

	cfg, err := config.MustLoad(configPath)
	if err != nil {
		return err
	}

	displayPath := configPath
	if displayPath == "" {
		displayPath = config.GetDefaultConfigPath()
	}

	var warnings []string
	if cfg.Limits.Len.Uint64() > 1<<30 {
		warnings = append(warnings, fmt.Sprintf("limits.len is %s; hostile inputs may allocate that much", cfg.Limits.Len))
	}
	if cfg.Logging.Output == "stdout" {
		warnings = append(warnings, "logging to stdout mixes log lines into decoded output")
	}

	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "Configuration file: %s\n", displayPath)
	_, _ = fmt.Fprintln(w, "Validation: OK")

	if len(warnings) > 0 {
		_, _ = fmt.Fprintln(w, "\nWarnings:")
		for _, warning := range warnings {
			_, _ = fmt.Fprintf(w, "  - %s\n", warning)
		}
	}

	_, _ = fmt.Fprintf(w, "\nConfiguration summary:\n")
	_, _ = fmt.Fprintf(w, "  Depth limit:     %d\n", cfg.Limits.Depth)
	_, _ = fmt.Fprintf(w, "  Length limit:    %s\n", cfg.Limits.Len)
	_, _ = fmt.Fprintf(w, "  Log level:       %s\n", cfg.Logging.Level)

	return nil
}
