package types

import (
	"reflect"

	"github.com/spf13/cobra"

	"github.com/marmos91/stellar-xdr/cmd/stellar-xdr/cmdutil"
	xdrtypes "github.com/marmos91/stellar-xdr/pkg/types"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List supported types",
	Long: `List every type name accepted by --type.

Examples:
  # List as table
  stellar-xdr types list

  # List as JSON
  stellar-xdr types list -o json`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringP("output", "o", "table", "Output format (table|json|yaml)")
}

// TypeInfo describes one registered type.
type TypeInfo struct {
	Name   string `json:"name" yaml:"name"`
	GoType string `json:"go_type" yaml:"go_type"`
}

// TypeList is a list of types for table rendering.
type TypeList []TypeInfo

// Headers implements TableRenderer.
func (tl TypeList) Headers() []string {
	return []string{"NAME", "GO TYPE"}
}

// Rows implements TableRenderer.
func (tl TypeList) Rows() [][]string {
	rows := make([][]string, 0, len(tl))
	for _, t := range tl {
		rows = append(rows, []string{t.Name, t.GoType})
	}
	return rows
}

func runList(cmd *cobra.Command, args []string) error {
	names := xdrtypes.Variants()
	list := make(TypeList, 0, len(names))
	for _, name := range names {
		v, err := xdrtypes.New(name)
		if err != nil {
			return err
		}
		list = append(list, TypeInfo{Name: name, GoType: reflect.TypeOf(v).Elem().String()})
	}

	return cmdutil.PrintOutput(cmd, cmd.OutOrStdout(), list, len(list) == 0, "No types registered.", list)
}
