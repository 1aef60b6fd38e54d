package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/invopop/jsonschema"

	"github.com/marmos91/stellar-xdr/pkg/xdr"
)

// ============================================================================
// Enum Helpers
// ============================================================================

func enumName(names map[int32]string, v int32) string {
	if name, ok := names[v]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", v)
}

func marshalEnum(names map[int32]string, v int32) ([]byte, error) {
	name, ok := names[v]
	if !ok {
		return nil, xdr.ErrInvalid
	}
	return json.Marshal(name)
}

func unmarshalEnum(names map[int32]string, data []byte) (int32, error) {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return 0, err
	}
	for v, n := range names {
		if n == name {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown name %q", xdr.ErrInvalid, name)
}

func enumSchema(names map[int32]string) *jsonschema.Schema {
	values := make([]int32, 0, len(names))
	for v := range names {
		values = append(values, v)
	}
	slices.Sort(values)

	enum := make([]any, 0, len(values))
	for _, v := range values {
		enum = append(enum, names[v])
	}
	return &jsonschema.Schema{Type: "string", Enum: enum}
}

// ============================================================================
// Union Helpers
// ============================================================================

// marshalArm renders a non-void union arm as {"name": value}.
func marshalArm(name string, v any) ([]byte, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	key, err := json.Marshal(name)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	buf.Write(key)
	buf.WriteByte(':')
	buf.Write(payload)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// unmarshalArm splits an externally tagged union into its arm name and
// payload. Void arms are bare strings and have a nil payload.
func unmarshalArm(data []byte) (string, json.RawMessage, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return "", nil, err
		}
		return name, nil, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return "", nil, err
	}
	if len(obj) != 1 {
		return "", nil, fmt.Errorf("%w: union object must have exactly one key, got %d", xdr.ErrInvalid, len(obj))
	}
	var name string
	var raw json.RawMessage
	for k, v := range obj {
		name, raw = k, v
	}
	return name, raw, nil
}

// armPayload decodes the payload of arm name into v. Void arms must not carry
// a payload and non-void arms must.
func armPayload(name string, raw json.RawMessage, v any) error {
	if v == nil {
		if raw != nil {
			return fmt.Errorf("%w: arm %q takes no value", xdr.ErrInvalid, name)
		}
		return nil
	}
	if raw == nil {
		return fmt.Errorf("%w: arm %q requires a value", xdr.ErrInvalid, name)
	}
	return json.Unmarshal(raw, v)
}

// ============================================================================
// Schema Helpers
// ============================================================================

func fixedHexSchema(n int) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:    "string",
		Pattern: fmt.Sprintf("^[0-9a-fA-F]{%d}$", n*2),
	}
}

// unionSchema describes an externally tagged union. Void arms map to nil.
func unionSchema(arms map[string]*jsonschema.Schema, order []string) *jsonschema.Schema {
	var voids []any
	var oneOf []*jsonschema.Schema
	for _, name := range order {
		arm := arms[name]
		if arm == nil {
			voids = append(voids, name)
			continue
		}
		props := jsonschema.NewProperties()
		props.Set(name, arm)
		oneOf = append(oneOf, &jsonschema.Schema{
			Type:                 "object",
			Properties:           props,
			Required:             []string{name},
			AdditionalProperties: jsonschema.FalseSchema,
		})
	}
	if len(voids) > 0 {
		oneOf = append([]*jsonschema.Schema{{Type: "string", Enum: voids}}, oneOf...)
	}
	return &jsonschema.Schema{OneOf: oneOf}
}

// reflectSchema returns the inline schema of v, for use inside unions.
func reflectSchema(v any) *jsonschema.Schema {
	r := &jsonschema.Reflector{DoNotReference: true}
	s := r.Reflect(v)
	s.Version = ""
	return s
}
