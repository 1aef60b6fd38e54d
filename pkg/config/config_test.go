package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/marmos91/stellar-xdr/internal/bytesize"
	"github.com/marmos91/stellar-xdr/pkg/xdr"
)

// yamlSafePath converts a filesystem path to a YAML-safe representation.
// On Windows, backslashes in double-quoted YAML strings are interpreted as
// escape sequences (e.g. \U -> Unicode escape), causing parse errors.
func yamlSafePath(p string) string {
	return filepath.ToSlash(p)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoad_DefaultConfig(t *testing.T) {
	configPath := writeConfig(t, `
logging:
  level: "info"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Logging.Level != "INFO" {
		t.Errorf("Expected level normalized to 'INFO', got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Expected default format 'text', got %q", cfg.Logging.Format)
	}
	if cfg.Logging.Output != "stderr" {
		t.Errorf("Expected default output 'stderr', got %q", cfg.Logging.Output)
	}
	if cfg.Limits.Depth != xdr.DefaultDepthLimit {
		t.Errorf("Expected default depth %d, got %d", xdr.DefaultDepthLimit, cfg.Limits.Depth)
	}
	if cfg.Decode.InputFormat != "stream-base64" {
		t.Errorf("Expected default decode input 'stream-base64', got %q", cfg.Decode.InputFormat)
	}
}

func TestLoad_AllSections(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "xdr.log")
	configPath := writeConfig(t, `
logging:
  level: DEBUG
  format: json
  output: "`+yamlSafePath(logPath)+`"
limits:
  depth: 32
  len: 1Mi
decode:
  input_format: single
  output_format: yaml
  compression: gzip
encode:
  output_format: stream
  compression: zstd
metrics:
  textfile: /tmp/stellar-xdr.prom
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Logging.Output != yamlSafePath(logPath) {
		t.Errorf("Expected output %q, got %q", logPath, cfg.Logging.Output)
	}
	if cfg.Limits.Depth != 32 {
		t.Errorf("Expected depth 32, got %d", cfg.Limits.Depth)
	}
	if cfg.Limits.Len != bytesize.MiB {
		t.Errorf("Expected len 1Mi, got %v", cfg.Limits.Len)
	}
	if cfg.Decode.OutputFormat != "yaml" || cfg.Decode.Compression != "gzip" {
		t.Errorf("Unexpected decode section: %+v", cfg.Decode)
	}
	if cfg.Encode.OutputFormat != "stream" || cfg.Encode.Compression != "zstd" {
		t.Errorf("Unexpected encode section: %+v", cfg.Encode)
	}
	if !cfg.Metrics.Enabled {
		t.Error("Expected metrics enabled by textfile")
	}
}

func TestLoad_NumericLen(t *testing.T) {
	configPath := writeConfig(t, `
limits:
  len: 4096
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Limits.Len != 4096 {
		t.Errorf("Expected len 4096, got %d", cfg.Limits.Len)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	configPath := writeConfig(t, `
limits:
  depth: 32
`)
	t.Setenv("STELLAR_XDR_LIMITS_DEPTH", "7")
	t.Setenv("STELLAR_XDR_LIMITS_LEN", "2Ki")
	t.Setenv("STELLAR_XDR_DECODE_OUTPUT_FORMAT", "json-formatted")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Limits.Depth != 7 {
		t.Errorf("Expected env depth 7, got %d", cfg.Limits.Depth)
	}
	if cfg.Limits.Len != 2*bytesize.KiB {
		t.Errorf("Expected env len 2Ki, got %v", cfg.Limits.Len)
	}
	if cfg.Decode.OutputFormat != "json-formatted" {
		t.Errorf("Expected env output format, got %q", cfg.Decode.OutputFormat)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load without a config file failed: %v", err)
	}
	if cfg.Logging.Level != "WARN" {
		t.Errorf("Expected default level 'WARN', got %q", cfg.Logging.Level)
	}

	cfg, err = Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load with a missing explicit file failed: %v", err)
	}
	if cfg.Encode.OutputFormat != "single-base64" {
		t.Errorf("Expected default encode output, got %q", cfg.Encode.OutputFormat)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"LogLevel", "logging:\n  level: LOUD\n"},
		{"InputFormat", "decode:\n  input_format: hex\n"},
		{"Compression", "encode:\n  compression: auto\n"},
		{"Len", "limits:\n  len: lots\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Fatal("Expected error for invalid configuration")
			}
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "logging: [unterminated\n")); err == nil {
		t.Fatal("Expected error for malformed YAML")
	}
}

func TestMustLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := MustLoad(path); err == nil {
		t.Fatal("Expected error for missing config file")
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := GetDefaultConfig()
	cfg.Limits.Len = 8 * bytesize.MiB
	cfg.Decode.InputFormat = "stream-framed"
	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load saved config: %v", err)
	}
	if loaded.Limits.Len != 8*bytesize.MiB {
		t.Errorf("Expected len 8Mi after round trip, got %v", loaded.Limits.Len)
	}
	if loaded.Decode.InputFormat != "stream-framed" {
		t.Errorf("Expected input format after round trip, got %q", loaded.Decode.InputFormat)
	}
}

func TestToLimits(t *testing.T) {
	l := LimitsConfig{Depth: 3, Len: 2 * bytesize.KiB}.ToLimits()
	if l.Depth != 3 || l.Len != 2048 {
		t.Errorf("Unexpected limits: %+v", l)
	}

	if got := GetDefaultConfig().Limits.ToLimits(); got != xdr.DefaultLimits() {
		t.Errorf("Expected default config limits to equal xdr.DefaultLimits, got %+v", got)
	}
}

func TestGetDefaultConfigPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	want := filepath.Join(dir, "stellar-xdr", "config.yaml")
	if got := GetDefaultConfigPath(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if DefaultConfigExists() {
		t.Error("Expected no default config in a fresh directory")
	}
}
