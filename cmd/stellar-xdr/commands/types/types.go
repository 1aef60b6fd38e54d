// Package types implements the type inspection commands of stellar-xdr.
package types

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for type inspection.
var Cmd = &cobra.Command{
	Use:   "types",
	Short: "Inspect the supported XDR types",
	Long: `List the XDR types stellar-xdr can decode and encode, and print the
JSON Schema of their JSON form.

Examples:
  # List type names
  stellar-xdr types list

  # Print the JSON Schema of a memo
  stellar-xdr types schema --type Memo`,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(schemaCmd)
}
