package output

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// PrintYAML writes data as a YAML document. Values implementing
// json.Marshaler keep their JSON shape: data is rendered to JSON first and
// re-read as a YAML node, which preserves key order.
func PrintYAML(w io.Writer, data any) error {
	if _, ok := data.(json.Marshaler); !ok {
		return encodeYAML(w, data)
	}
	return PrintJSONAsYAML(w, data)
}

// PrintJSONAsYAML writes the JSON form of data as a YAML document, whatever
// the type of data. Decoded values use it so YAML keys match their JSON keys.
func PrintJSONAsYAML(w io.Writer, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return err
	}
	clearStyle(&node)
	return encodeYAML(w, &node)
}

func encodeYAML(w io.Writer, data any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		_ = encoder.Close()
		return err
	}
	return encoder.Close()
}

// clearStyle drops the flow style and quoting parsed from JSON so the
// document prints in block style. The encoder re-quotes strings that would
// otherwise read back as numbers or booleans.
func clearStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		clearStyle(c)
	}
}
