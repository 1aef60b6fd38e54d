package config

import (
	"strings"

	"github.com/marmos91/stellar-xdr/internal/bytesize"
	"github.com/marmos91/stellar-xdr/pkg/xdr"
)

// ApplyDefaults sets default values for any unspecified configuration fields.
//
// This function is called after loading configuration from file and environment
// variables to fill in any missing values with sensible defaults.
//
// Default Strategy:
//   - Zero values (0, "", false, nil) are replaced with defaults
//   - Explicit values are preserved
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyLimitsDefaults(&cfg.Limits)
	applyDecodeDefaults(&cfg.Decode)
	applyEncodeDefaults(&cfg.Encode)
	applyMetricsDefaults(&cfg.Metrics)
}

// applyLoggingDefaults sets logging defaults and normalizes values.
// Logs go to stderr so decoded values on stdout stay machine-readable.
func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "WARN"
	}
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Output == "" {
		cfg.Output = "stderr"
	}
}

// applyLimitsDefaults sets the codec limits to xdr.DefaultLimits.
func applyLimitsDefaults(cfg *LimitsConfig) {
	if cfg.Depth == 0 {
		cfg.Depth = xdr.DefaultDepthLimit
	}
	if cfg.Len == 0 {
		cfg.Len = bytesize.ByteSize(xdr.DefaultLenLimit)
	}
}

// applyDecodeDefaults sets decode defaults.
func applyDecodeDefaults(cfg *DecodeConfig) {
	if cfg.InputFormat == "" {
		cfg.InputFormat = "stream-base64"
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = "json"
	}
	if cfg.Compression == "" {
		cfg.Compression = "auto"
	}
	cfg.Compression = strings.ToLower(cfg.Compression)
}

// applyEncodeDefaults sets encode defaults.
func applyEncodeDefaults(cfg *EncodeConfig) {
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = "single-base64"
	}
	if cfg.Compression == "" {
		cfg.Compression = "none"
	}
	cfg.Compression = strings.ToLower(cfg.Compression)
}

// applyMetricsDefaults sets metrics defaults.
func applyMetricsDefaults(cfg *MetricsConfig) {
	// Enabled defaults to false (opt-in for metrics).
	// Setting a textfile implies collection.
	if cfg.Textfile != "" {
		cfg.Enabled = true
	}
}

// GetDefaultConfig returns a Config struct with all default values applied.
//
// This is useful for:
//   - Generating sample configuration files
//   - Testing
//   - Documentation
func GetDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
