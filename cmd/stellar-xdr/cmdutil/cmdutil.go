// Package cmdutil holds the state shared by the stellar-xdr commands: the
// global flags, the loaded configuration, the codec limits and metrics.
package cmdutil

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/marmos91/stellar-xdr/internal/bytesize"
	"github.com/marmos91/stellar-xdr/internal/cli/output"
	"github.com/marmos91/stellar-xdr/internal/logger"
	"github.com/marmos91/stellar-xdr/pkg/config"
	"github.com/marmos91/stellar-xdr/pkg/metrics"
	_ "github.com/marmos91/stellar-xdr/pkg/metrics/prometheus"
	"github.com/marmos91/stellar-xdr/pkg/types"
	"github.com/marmos91/stellar-xdr/pkg/xdr"
)

// GlobalFlags holds the persistent flags of the root command.
type GlobalFlags struct {
	ConfigPath  string
	LogLevel    string
	LogFormat   string
	DepthLimit  uint32
	LenLimit    string
	MetricsFile string
}

// Flags is synced from the root command before any subcommand runs.
var Flags GlobalFlags

var (
	cfg          *config.Config
	codecMetrics metrics.CodecMetrics
)

// Setup loads the configuration, applies the global flags on top of it and
// initializes logging and metrics. Flags only override values that were set
// explicitly on the command line.
func Setup(cmd *cobra.Command) error {
	loaded, err := config.Load(Flags.ConfigPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		loaded.Logging.Level = strings.ToUpper(Flags.LogLevel)
	}
	if flags.Changed("log-format") {
		loaded.Logging.Format = strings.ToLower(Flags.LogFormat)
	}
	if flags.Changed("depth-limit") {
		loaded.Limits.Depth = Flags.DepthLimit
	}
	if flags.Changed("len-limit") {
		size, err := bytesize.ParseByteSize(Flags.LenLimit)
		if err != nil {
			return fmt.Errorf("--len-limit: %w", err)
		}
		loaded.Limits.Len = size
	}
	if flags.Changed("metrics-file") {
		loaded.Metrics.Textfile = Flags.MetricsFile
		loaded.Metrics.Enabled = Flags.MetricsFile != ""
	}

	if err := config.Validate(loaded); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := logger.Init(logger.Config{
		Level:  loaded.Logging.Level,
		Format: loaded.Logging.Format,
		Output: loaded.Logging.Output,
	}); err != nil {
		return err
	}

	codecMetrics = nil
	metrics.Disable()
	if loaded.Metrics.Enabled {
		metrics.InitRegistry()
		codecMetrics = metrics.NewCodecMetrics()
	}

	cfg = loaded
	logger.Debug("configuration loaded",
		logger.Command(cmd.Name()),
		logger.Limits(Limits()))
	return nil
}

// Finish writes the metrics textfile, if one is configured, and clears the
// state left by Setup.
func Finish() error {
	current := cfg
	cfg, codecMetrics = nil, nil
	if current == nil || !current.Metrics.Enabled {
		return nil
	}
	defer metrics.Disable()

	if err := metrics.WriteTextfile(current.Metrics.Textfile); err != nil {
		return err
	}
	logger.Debug("metrics written", logger.Path(current.Metrics.Textfile))
	return nil
}

// Config returns the active configuration, or the defaults before Setup.
func Config() *config.Config {
	if cfg == nil {
		return config.GetDefaultConfig()
	}
	return cfg
}

// Limits returns the codec limits of the active configuration.
func Limits() xdr.Limits {
	return Config().Limits.ToLimits()
}

// Metrics returns the codec metrics, nil when disabled.
func Metrics() metrics.CodecMetrics {
	return codecMetrics
}

// NewValue returns a fresh value of the named type.
func NewValue(name string) (xdr.Codec, error) {
	v, err := types.New(name)
	if err != nil {
		return nil, fmt.Errorf("%w, choose one of: %s", err, strings.Join(types.Variants(), ", "))
	}
	return v, nil
}

// RecordError logs err and counts it against operation and typ. The error
// itself is reported by main, so it is only logged at debug level here.
func RecordError(operation, typ, label string, err error) {
	logger.Debug(operation+" failed",
		logger.Type(typ),
		logger.Input(label),
		logger.ErrKind(err),
		logger.Err(err))
	if m := Metrics(); m != nil {
		m.RecordError(operation, typ, string(xdr.KindOf(err)))
	}
}

// Failures collects per-input errors for --keep-going.
type Failures struct {
	KeepGoing bool
	errs      *multierror.Error
}

// Add records err for the input label. Without KeepGoing the error is
// returned, wrapped, to stop the command.
func (f *Failures) Add(label string, err error) error {
	wrapped := fmt.Errorf("%s: %w", label, err)
	if !f.KeepGoing {
		return wrapped
	}
	f.errs = multierror.Append(f.errs, wrapped)
	return nil
}

// Err returns the aggregated failures, or nil.
func (f *Failures) Err() error {
	if f.errs == nil {
		return nil
	}
	logger.Warn("inputs failed", logger.Failed(f.Len()))
	return f.errs.ErrorOrNil()
}

// Len returns the number of failures recorded.
func (f *Failures) Len() int {
	if f.errs == nil {
		return 0
	}
	return len(f.errs.Errors)
}

// ErrNoMatch is returned by guess when no type decodes the input.
var ErrNoMatch = errors.New("no type matched the input")

// PrintOutput prints data in the format of the --output flag of cmd, or
// emptyMsg when there is nothing to list in table format.
func PrintOutput(cmd *cobra.Command, w io.Writer, data any, empty bool, emptyMsg string, table output.TableRenderer) error {
	name, _ := cmd.Flags().GetString("output")
	format, err := output.ParseFormat(name, output.ListFormats...)
	if err != nil {
		return err
	}

	if format == output.FormatTable {
		if empty {
			_, _ = fmt.Fprintln(w, emptyMsg)
			return nil
		}
		return output.PrintTable(w, table)
	}
	return output.NewPrinter(w, format, false).Print(data)
}

// AnnotationNoSetup marks commands that run without loading configuration.
const AnnotationNoSetup = "stellar-xdr/no-setup"
