package xdr

import (
	"fmt"

	"github.com/invopop/jsonschema"
)

// ============================================================================
// JSON Schema Hooks
// ============================================================================

// Bounded containers describe their JSON form to invopop/jsonschema so
// `types schema` output matches MarshalJSON.

func (VecM[T, B, PT]) JSONSchema() *jsonschema.Schema {
	var item T
	r := &jsonschema.Reflector{DoNotReference: true, AllowAdditionalProperties: false}
	items := r.Reflect(item)
	items.Version = ""
	return &jsonschema.Schema{
		Type:        "array",
		Items:       items,
		Description: boundDescription("items", maxOf[B]()),
	}
}

func (BytesM[B]) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Pattern:     "^([0-9a-fA-F]{2})*$",
		Description: boundDescription("hex encoded bytes", maxOf[B]()),
	}
}

func (StringM[B]) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Description: boundDescription("escaped bytes", maxOf[B]()),
	}
}

func (Int64) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", Pattern: "^-?[0-9]+$"}
}

func (Uint64) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", Pattern: "^[0-9]+$"}
}

func (Void) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "null"}
}

func boundDescription(what string, max uint32) string {
	if max == (Unbounded{}).Max() {
		return what
	}
	return fmt.Sprintf("%s, at most %d", what, max)
}
