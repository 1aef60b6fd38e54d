// Package config implements the configuration commands of stellar-xdr.
package config

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for configuration management.
var Cmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
	Long: `Create, inspect and validate the stellar-xdr configuration file.

Examples:
  # Write the default configuration
  stellar-xdr config init

  # Show the effective configuration
  stellar-xdr config show

  # Validate a configuration file
  stellar-xdr config validate --config ./stellar-xdr.yaml`,
}

func init() {
	Cmd.AddCommand(initCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(validateCmd)
	Cmd.AddCommand(schemaCmd)
}
