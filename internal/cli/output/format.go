// Package output renders decoded XDR values and command results for the CLI.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Format represents the output format type.
type Format string

const (
	// FormatTable outputs listings in a formatted table.
	FormatTable Format = "table"
	// FormatJSON outputs one compact JSON document per line.
	FormatJSON Format = "json"
	// FormatJSONFormatted outputs indented JSON.
	FormatJSONFormatted Format = "json-formatted"
	// FormatYAML outputs YAML documents.
	FormatYAML Format = "yaml"
	// FormatDebug outputs the Go value on one line.
	FormatDebug Format = "debug"
	// FormatDebugFormatted outputs a multi-line dump of the Go value.
	FormatDebugFormatted Format = "debug-formatted"
)

// ValueFormats are the formats accepted for decoded values.
var ValueFormats = []Format{FormatJSON, FormatJSONFormatted, FormatYAML, FormatDebug, FormatDebugFormatted}

// ListFormats are the formats accepted for listings.
var ListFormats = []Format{FormatTable, FormatJSON, FormatYAML}

// ParseFormat parses s and checks it against allowed. An empty s selects
// allowed[0].
func ParseFormat(s string, allowed ...Format) (Format, error) {
	if len(allowed) == 0 {
		allowed = ListFormats
	}
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return allowed[0], nil
	case "yml":
		s = string(FormatYAML)
	}
	for _, f := range allowed {
		if string(f) == s {
			return f, nil
		}
	}
	names := make([]string, len(allowed))
	for i, f := range allowed {
		names[i] = string(f)
	}
	return "", fmt.Errorf("invalid output format: %q (valid: %s)", s, strings.Join(names, ", "))
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// Printer writes values to out in a fixed format.
type Printer struct {
	out    io.Writer
	format Format
	color  bool
	values bool // YAML follows the JSON shape
}

// NewPrinter creates a new Printer with the given options.
func NewPrinter(out io.Writer, format Format, color bool) *Printer {
	return &Printer{
		out:    out,
		format: format,
		color:  color,
	}
}

// NewValuePrinter creates a Printer for decoded XDR values. Their YAML output
// follows their JSON form.
func NewValuePrinter(out io.Writer, format Format) *Printer {
	return &Printer{out: out, format: format, values: true}
}

// DefaultPrinter creates a Printer that writes compact JSON to stdout.
func DefaultPrinter() *Printer {
	return NewPrinter(os.Stdout, FormatJSON, false)
}

// Format returns the printer's output format.
func (p *Printer) Format() Format {
	return p.format
}

// Writer returns the printer's output writer.
func (p *Printer) Writer() io.Writer {
	return p.out
}

// Print outputs data in the configured format. For table format data should
// implement TableRenderer; anything else falls back to indented JSON.
func (p *Printer) Print(data any) error {
	switch p.format {
	case FormatTable:
		if renderer, ok := data.(TableRenderer); ok {
			return PrintTable(p.out, renderer)
		}
		return PrintJSON(p.out, data)
	case FormatJSON:
		return PrintJSONCompact(p.out, data)
	case FormatJSONFormatted:
		return PrintJSON(p.out, data)
	case FormatYAML:
		if p.values {
			return PrintJSONAsYAML(p.out, data)
		}
		return PrintYAML(p.out, data)
	case FormatDebug:
		return PrintDebug(p.out, data)
	case FormatDebugFormatted:
		return PrintDebugFormatted(p.out, data)
	default:
		return fmt.Errorf("unknown format: %s", p.format)
	}
}

// Println prints a message followed by a newline.
func (p *Printer) Println(args ...any) {
	_, _ = fmt.Fprintln(p.out, args...)
}

// Warning prints a warning message, yellow when color is enabled.
func (p *Printer) Warning(msg string) {
	if p.color {
		_, _ = fmt.Fprintf(p.out, "\033[33m%s\033[0m\n", msg)
	} else {
		_, _ = fmt.Fprintln(p.out, msg)
	}
}
