package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestDefaults_AreValid(t *testing.T) {
	require.NoError(t, Validate(Defaults()))
}

func TestDefaults_Values(t *testing.T) {
	cfg := Defaults()

	require.Equal(t, FormatTable, cfg.Output.Format)
	require.True(t, cfg.Output.Color)
	require.Equal(t, 500*time.Millisecond, cfg.Watch.Debounce)
	require.Equal(t, 10*time.Minute, cfg.Import.CacheTTL)
	require.False(t, cfg.Tracing.Enabled)
	require.NotNil(t, cfg.Flags)
}

func TestValidateOutput(t *testing.T) {
	for _, format := range []string{"", FormatTable, FormatJSON, FormatNames} {
		require.NoError(t, ValidateOutput(OutputConfig{Format: format}), format)
	}

	err := ValidateOutput(OutputConfig{Format: "xml"})
	require.Error(t, err)
	require.Contains(t, err.Error(), `got "xml"`)
}

func TestValidateLog(t *testing.T) {
	require.NoError(t, ValidateLog(LogConfig{Level: "warn"}))

	err := ValidateLog(LogConfig{Level: "chatty"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "log.level")
}

func TestValidateTracing(t *testing.T) {
	tests := []struct {
		name    string
		cfg     TracingConfig
		wantErr string
	}{
		{"defaults", Defaults().Tracing, ""},
		{"sample rate too high", TracingConfig{SampleRate: 1.5}, "sample_rate"},
		{"sample rate negative", TracingConfig{SampleRate: -0.1}, "sample_rate"},
		{"bad exporter", TracingConfig{Exporter: "jaeger"}, "tracing.exporter"},
		{"otlp without endpoint", TracingConfig{Enabled: true, Exporter: "otlp"}, "otlp_endpoint"},
		{"otlp without endpoint but disabled", TracingConfig{Exporter: "otlp"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTracing(tt.cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_NegativeDurations(t *testing.T) {
	cfg := Defaults()
	cfg.Watch.Debounce = -time.Second
	require.ErrorContains(t, Validate(cfg), "watch.debounce")

	cfg = Defaults()
	cfg.Import.CacheTTL = -time.Second
	require.ErrorContains(t, Validate(cfg), "import.cache_ttl")
}

func TestDefaultConfigTemplate_UnmarshalsLikeDefaults(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(DefaultConfigTemplate())))

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))

	defaults := Defaults()
	require.Equal(t, defaults.Output, cfg.Output)
	require.Equal(t, defaults.Log, cfg.Log)
	require.Equal(t, defaults.Watch, cfg.Watch)
	require.Equal(t, defaults.Import, cfg.Import)
	require.Equal(t, defaults.Tracing.Exporter, cfg.Tracing.Exporter)
	require.Equal(t, defaults.Tracing.SampleRate, cfg.Tracing.SampleRate)
	require.Equal(t, map[string]bool{"normalize-on-import": false}, cfg.Flags)
	require.NoError(t, Validate(cfg))
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(data))
}

func TestDefaultTracesFilePath(t *testing.T) {
	path := DefaultTracesFilePath()
	if path == "" {
		t.Skip("no home directory")
	}
	require.True(t, strings.HasSuffix(path, filepath.Join("rollcall", "traces", "traces.jsonl")))
}
