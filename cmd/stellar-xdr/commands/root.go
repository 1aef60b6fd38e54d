// Package commands implements the CLI commands of stellar-xdr.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/marmos91/stellar-xdr/cmd/stellar-xdr/cmdutil"
	configcmd "github.com/marmos91/stellar-xdr/cmd/stellar-xdr/commands/config"
	typescmd "github.com/marmos91/stellar-xdr/cmd/stellar-xdr/commands/types"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "stellar-xdr",
	Short: "Decode, encode and inspect Stellar XDR",
	Long: `stellar-xdr converts Stellar XDR values between their binary, base64 and
JSON forms, and identifies the type of unknown XDR.

Configuration is read from $XDG_CONFIG_HOME/stellar-xdr/config.yaml (or
--config), STELLAR_XDR_* environment variables and the flags below.

Use "stellar-xdr [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Annotations[cmdutil.AnnotationNoSetup] == "true" {
			return nil
		}
		return cmdutil.Setup(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// The metrics textfile is written even when the command fails.
func Execute() error {
	err := rootCmd.Execute()
	if ferr := cmdutil.Finish(); ferr != nil && err == nil {
		err = ferr
	}
	return err
}

// GetRootCmd returns the root command for testing purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cmdutil.Flags.ConfigPath, "config", "", "Config file (default $XDG_CONFIG_HOME/stellar-xdr/config.yaml)")
	pf.StringVar(&cmdutil.Flags.LogLevel, "log-level", "", "Log level (DEBUG|INFO|WARN|ERROR)")
	pf.StringVar(&cmdutil.Flags.LogFormat, "log-format", "", "Log format (text|json)")
	pf.Uint32Var(&cmdutil.Flags.DepthLimit, "depth-limit", 0, "Maximum nesting depth of decoded and encoded values")
	pf.StringVar(&cmdutil.Flags.LenLimit, "len-limit", "", "Maximum bytes processed per input, e.g. 64Mi")
	pf.StringVar(&cmdutil.Flags.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile on exit")

	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(guessCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(typescmd.Cmd)
	rootCmd.AddCommand(configcmd.Cmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)

	// Hide the default completion command (we provide our own)
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
