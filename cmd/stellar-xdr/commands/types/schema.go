package types

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"github.com/marmos91/stellar-xdr/cmd/stellar-xdr/cmdutil"
)

var (
	schemaType   string
	schemaOutput string
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate JSON schema for a type",
	Long: `Generate the JSON Schema of the JSON form of a type, as printed by decode
and accepted by encode.

Examples:
  # Print schema to stdout
  stellar-xdr types schema --type Preconditions

  # Save schema to file
  stellar-xdr types schema --type Memo --file memo.schema.json`,
	RunE: runSchema,
}

func init() {
	schemaCmd.Flags().StringVar(&schemaType, "type", "", "XDR type")
	schemaCmd.Flags().StringVarP(&schemaOutput, "file", "f", "", "Output file (default: stdout)")
	_ = schemaCmd.MarkFlagRequired("type")
}

func runSchema(cmd *cobra.Command, args []string) error {
	v, err := cmdutil.NewValue(schemaType)
	if err != nil {
		return err
	}

	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	schema := reflector.Reflect(v)
	schema.Version = "https://json-schema.org/draft/2020-12/schema"
	schema.Title = schemaType

	schemaJSON, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	if schemaOutput != "" {
		if err := os.WriteFile(schemaOutput, schemaJSON, 0644); err != nil {
			return fmt.Errorf("failed to write schema file: %w", err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "JSON schema written to %s\n", schemaOutput)
		return nil
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(schemaJSON))
	return nil
}
