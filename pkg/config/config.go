package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/marmos91/stellar-xdr/internal/bytesize"
	"github.com/marmos91/stellar-xdr/pkg/xdr"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Config represents the stellar-xdr CLI configuration.
//
// Configuration sources (in order of precedence):
//  1. CLI flags (highest priority)
//  2. Environment variables (STELLAR_XDR_*)
//  3. Configuration file (YAML)
//  4. Default values (lowest priority)
type Config struct {
	// Logging controls log output behavior
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Limits bounds the work of every decoder and encoder
	Limits LimitsConfig `mapstructure:"limits" yaml:"limits"`

	// Decode holds the defaults of the decode and guess commands
	Decode DecodeConfig `mapstructure:"decode" yaml:"decode"`

	// Encode holds the defaults of the encode command
	Encode EncodeConfig `mapstructure:"encode" yaml:"encode"`

	// Metrics configures codec metrics export
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level to output
	// Valid values: DEBUG, INFO, WARN, ERROR (case-insensitive, normalized to uppercase)
	Level string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error" yaml:"level"`

	// Format specifies the log output format
	// Valid values: text, json
	Format string `mapstructure:"format" validate:"required,oneof=text json" yaml:"format"`

	// Output specifies where logs are written
	// Valid values: stdout, stderr, or a file path
	Output string `mapstructure:"output" validate:"required" yaml:"output"`
}

// LimitsConfig bounds nesting depth and processed bytes.
type LimitsConfig struct {
	// Depth is the maximum nesting of composite values
	// Default: 500
	Depth uint32 `mapstructure:"depth" validate:"gt=0" yaml:"depth"`

	// Len is the maximum number of bytes read or written per value stream
	// Supports human-readable formats: "64Mi", "10MB"
	// Default: 64Mi
	Len bytesize.ByteSize `mapstructure:"len" validate:"gt=0" yaml:"len"`
}

// DecodeConfig holds decode defaults.
type DecodeConfig struct {
	// InputFormat is how inputs are framed
	// Valid values: single, single-base64, stream, stream-base64, stream-framed
	InputFormat string `mapstructure:"input_format" validate:"required,oneof=single single-base64 stream stream-base64 stream-framed" yaml:"input_format"`

	// OutputFormat is how decoded values are printed
	// Valid values: json, json-formatted, yaml, debug, debug-formatted
	OutputFormat string `mapstructure:"output_format" validate:"required,oneof=json json-formatted yaml debug debug-formatted" yaml:"output_format"`

	// Compression is the codec wrapped around file and stdin inputs
	// Valid values: auto, none, gzip, zstd, lz4, brotli, snappy
	Compression string `mapstructure:"compression" validate:"required,oneof=auto none gzip zstd lz4 brotli snappy" yaml:"compression"`
}

// EncodeConfig holds encode defaults.
type EncodeConfig struct {
	// OutputFormat is how encoded values are written
	// Valid values: single, single-base64, stream
	OutputFormat string `mapstructure:"output_format" validate:"required,oneof=single single-base64 stream" yaml:"output_format"`

	// Compression is applied to binary output
	// Valid values: none, gzip, zstd, lz4, brotli, snappy
	Compression string `mapstructure:"compression" validate:"required,oneof=none gzip zstd lz4 brotli snappy" yaml:"compression"`
}

// MetricsConfig configures Prometheus codec metrics.
// When Enabled is false, no metrics are collected (zero overhead).
type MetricsConfig struct {
	// Enabled controls whether metrics are collected
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Textfile is the node-exporter textfile the registry is written to on exit
	Textfile string `mapstructure:"textfile" validate:"required_if=Enabled true" yaml:"textfile,omitempty"`
}

// ToLimits converts the limits section into codec limits.
func (c LimitsConfig) ToLimits() xdr.Limits {
	return xdr.Limits{Depth: c.Depth, Len: c.Len.Int()}
}

// Load loads configuration from file, environment, and defaults.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (STELLAR_XDR_*)
//  2. Configuration file
//  3. Default values
//
// A missing configuration file is not an error: the defaults are used, still
// overlaid with environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setupViper(v, configPath)

	if _, err := readConfigFile(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(configDecodeHooks())); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// MustLoad is Load for an explicitly requested file: it fails with
// instructions when the file does not exist.
func MustLoad(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = GetDefaultConfigPath()
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s\n\n"+
			"Please create the configuration file:\n"+
			"  stellar-xdr config init --config %s",
			configPath, configPath)
	}

	cfg, err := Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to the specified file path in YAML.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// setupViper configures viper with environment variables and config file settings.
func setupViper(v *viper.Viper, configPath string) {
	// Environment variables use the STELLAR_XDR_ prefix and underscores
	// Example: STELLAR_XDR_LIMITS_DEPTH=100
	v.SetEnvPrefix("STELLAR_XDR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only applies to keys viper already knows about.
	bindKeys(v, reflect.TypeOf(Config{}), "")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default location: $XDG_CONFIG_HOME/stellar-xdr/config.yaml
		v.AddConfigPath(getConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
}

// bindKeys registers every mapstructure key of t with viper so environment
// variables are honored even when the config file omits the key.
func bindKeys(v *viper.Viper, t reflect.Type, prefix string) {
	for i := range t.NumField() {
		f := t.Field(i)
		key := f.Tag.Get("mapstructure")
		if key == "" {
			continue
		}
		if prefix != "" {
			key = prefix + "." + key
		}
		if f.Type.Kind() == reflect.Struct {
			bindKeys(v, f.Type, key)
			continue
		}
		_ = v.BindEnv(key)
	}
}

// readConfigFile reads the configuration file if it exists.
// Returns (fileFound, error) where fileFound indicates if a config file was found.
func readConfigFile(v *viper.Viper) (bool, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return false, nil
		}
		// Explicit config file that doesn't exist
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read config file: %w", err)
	}

	return true, nil
}

// configDecodeHooks returns a combined decode hook for all custom types.
func configDecodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		byteSizeDecodeHook(),
		mapstructure.TextUnmarshallerHookFunc(),
	)
}

// byteSizeDecodeHook returns a mapstructure decode hook that converts strings
// and integers to bytesize.ByteSize. This enables config files to use human-readable
// sizes like "64Mi", "10MB", or plain numbers.
func byteSizeDecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(bytesize.ByteSize(0)) {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			return bytesize.ParseByteSize(v)
		case int:
			return bytesize.ByteSize(v), nil
		case int64:
			return bytesize.ByteSize(v), nil
		case uint64:
			return bytesize.ByteSize(v), nil
		case float64:
			// YAML often deserializes numbers as float64
			return bytesize.ByteSize(v), nil
		default:
			return data, nil
		}
	}
}

// getConfigDir returns the configuration directory path.
//
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config, or falls back to current
// directory (.) if home directory cannot be determined.
func getConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "stellar-xdr")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(home, ".config", "stellar-xdr")
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}

// DefaultConfigExists checks if a config file exists at the default location.
func DefaultConfigExists() bool {
	_, err := os.Stat(GetDefaultConfigPath())
	return err == nil
}

// GetConfigDir returns the configuration directory path (exposed for the config command).
func GetConfigDir() string {
	return getConfigDir()
}
