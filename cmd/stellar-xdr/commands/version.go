package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/marmos91/stellar-xdr/cmd/stellar-xdr/cmdutil"
	"github.com/marmos91/stellar-xdr/pkg/xdr"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Show version information",
	Long:        `Display the stellar-xdr version, build information and the XDR schema files the types were built from.`,
	Annotations: map[string]string{cmdutil.AnnotationNoSetup: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		if versionShort {
			_, _ = fmt.Fprintln(w, Version)
			return
		}

		_, _ = fmt.Fprintf(w, "stellar-xdr %s\n", Version)
		_, _ = fmt.Fprintf(w, "  Commit:     %s\n", Commit)
		_, _ = fmt.Fprintf(w, "  Built:      %s\n", Date)
		_, _ = fmt.Fprintf(w, "  Go version: %s\n", runtime.Version())
		_, _ = fmt.Fprintf(w, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
		_, _ = fmt.Fprintln(w, "XDR files:")
		for _, f := range xdr.XDRFilesSHA256 {
			_, _ = fmt.Fprintf(w, "  %s %s\n", f.SHA256, f.Path)
		}
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Show only version number")
}
