// Package config provides configuration types and defaults for rollcall.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/rollcall/internal/log"
)

// Output formats accepted by OutputConfig.Format.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatNames = "names"
)

// Config holds all configuration options for rollcall.
type Config struct {
	SeedFile string          `mapstructure:"seed_file"`
	Output   OutputConfig    `mapstructure:"output"`
	Log      LogConfig       `mapstructure:"log"`
	Tracing  TracingConfig   `mapstructure:"tracing"`
	Watch    WatchConfig     `mapstructure:"watch"`
	Import   ImportConfig    `mapstructure:"import"`
	Flags    map[string]bool `mapstructure:"flags"`
}

// OutputConfig controls how registries are printed.
type OutputConfig struct {
	Format string `mapstructure:"format"` // "table" (default), "json" or "names"
	Color  bool   `mapstructure:"color"`  // Style table headers; ignored when NO_COLOR is set
}

// LogConfig holds debug log settings.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"` // "debug", "info", "warn" or "error"
}

// TracingConfig holds tracing configuration.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/rollcall/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// WatchConfig holds the file watcher settings.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// ImportConfig holds import file caching settings.
type ImportConfig struct {
	// CacheTTL is how long a read import file is reused. Zero disables the cache.
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// DefaultTracesFilePath returns ~/.config/rollcall/traces/traces.jsonl,
// or an empty string if the home directory is unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "rollcall", "traces", "traces.jsonl")
}

// DefaultLogFilePath returns the debug log location used when log.file is unset.
func DefaultLogFilePath() string {
	return filepath.Join(".rollcall", "debug.log")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Output: OutputConfig{
			Format: FormatTable,
			Color:  true,
		},
		Log: LogConfig{
			File:  DefaultLogFilePath(),
			Level: "debug",
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from home dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
		Import: ImportConfig{
			CacheTTL: 10 * time.Minute,
		},
		Flags: map[string]bool{},
	}
}

// Validate checks the whole configuration.
func Validate(c Config) error {
	if err := ValidateOutput(c.Output); err != nil {
		return err
	}
	if err := ValidateLog(c.Log); err != nil {
		return err
	}
	if err := ValidateTracing(c.Tracing); err != nil {
		return err
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %v", c.Watch.Debounce)
	}
	if c.Import.CacheTTL < 0 {
		return fmt.Errorf("import.cache_ttl must not be negative, got %v", c.Import.CacheTTL)
	}
	return nil
}

// ValidateOutput checks output configuration for errors.
// An empty format uses the default.
func ValidateOutput(out OutputConfig) error {
	switch out.Format {
	case "", FormatTable, FormatJSON, FormatNames:
		return nil
	default:
		return fmt.Errorf("output.format must be %q, %q, or %q, got %q", FormatTable, FormatJSON, FormatNames, out.Format)
	}
}

// ValidateLog checks log configuration for errors.
func ValidateLog(l LogConfig) error {
	if _, err := log.ParseLevel(l.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
			// Valid
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Path requirements only matter when tracing is on
	if tracing.Enabled && tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}

	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# rollcall configuration

# YAML file of people and songs loaded before every command
# seed_file: .rollcall/seed.yaml

output:
  format: table   # "table", "json" or "names"
  color: true     # Style table headers (NO_COLOR always wins)

log:
  # Written only with --debug or ROLLCALL_DEBUG=1
  file: .rollcall/debug.log
  level: debug

tracing:
  enabled: false
  exporter: file          # "none", "file", "stdout" or "otlp"
  # file_path: ~/.config/rollcall/traces/traces.jsonl
  otlp_endpoint: localhost:4317
  sample_rate: 1.0

watch:
  debounce: 500ms         # Wait this long after the last write before re-importing

import:
  cache_ttl: 10m          # Reuse a read import file for this long (0 disables)

flags:
  normalize-on-import: false
`
}

// WriteDefaultConfig creates a config file with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
