package config

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/stellar-xdr/cmd/stellar-xdr/cmdutil"
	"github.com/marmos91/stellar-xdr/internal/cli/prompt"
	"github.com/marmos91/stellar-xdr/pkg/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Long: `Write a configuration file holding every default value.

The file is written to --config, or to the default location. An existing
file is replaced after confirmation, or without asking with --force.`,
	Annotations: map[string]string{cmdutil.AnnotationNoSetup: "true"},
	RunE:        runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing configuration file")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := cmdutil.Flags.ConfigPath
	if path == "" {
		path = config.GetDefaultConfigPath()
	}

	force := initForce
	if _, err := os.Stat(path); err == nil && !force {
		confirmed, err := prompt.ConfirmWithForce(fmt.Sprintf("Overwrite %s?", path), false)
		if err != nil && err != prompt.ErrNotInteractive {
			return err
		}
		if err == nil && !confirmed {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
		force = confirmed
	}

	if err := config.InitConfigToPath(path, force); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", path)
	return nil
}
