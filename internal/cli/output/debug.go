package output

import (
	"io"

	"github.com/davecgh/go-spew/spew"
)

var debugConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// PrintDebug writes the Go representation of data on a single line,
// following pointers.
func PrintDebug(w io.Writer, data any) error {
	_, err := debugConfig.Fprintf(w, "%+v\n", data)
	return err
}

// PrintDebugFormatted writes a multi-line dump of data with types.
func PrintDebugFormatted(w io.Writer, data any) error {
	debugConfig.Fdump(w, data)
	return nil
}
