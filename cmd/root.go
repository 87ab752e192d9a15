package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/rollcall/internal/application/roster"
	"github.com/zjrosen/rollcall/internal/config"
	"github.com/zjrosen/rollcall/internal/flags"
	"github.com/zjrosen/rollcall/internal/log"
	"github.com/zjrosen/rollcall/internal/presentation"
	"github.com/zjrosen/rollcall/internal/tracing"
)

var version = "dev"

// localConfigPath is checked before the user config directory.
const localConfigPath = ".rollcall/config.yaml"

// app carries the state shared by every command for one invocation.
type app struct {
	v        *viper.Viper
	cfgFile  string
	seedFile string
	logFile  string
	debug    bool

	cfg      config.Config
	svc      *roster.Service
	tracing  *tracing.Provider
	span     trace.Span
	closeLog func()
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{v: viper.New(), tracing: tracing.Noop()}

	root := &cobra.Command{
		Use:   "rollcall",
		Short: "Keep and query in-memory rosters of people and songs",
		Long: `rollcall keeps ordered in-memory registries of people and songs.

People are imported from "name, age, company" CSV files and songs from
"<artist> - <title>.mp3" filenames. Registries live for one command; use
--seed to preload them from a YAML file.`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "",
		"config file (default: .rollcall/config.yaml, then ~/.config/rollcall/config.yaml)")
	pf.StringVar(&a.seedFile, "seed", "", "YAML file of people and songs to load first")
	pf.StringVar(&a.logFile, "log-file", "", "debug log path (default: log.file from config)")
	pf.BoolVarP(&a.debug, "debug", "d", false, "write a debug log (also ROLLCALL_DEBUG=1)")

	root.AddCommand(
		newPeopleListCmd(a),
		newPeopleFindCmd(a),
		newPeopleNormalizeCmd(a),
		newPeopleWatchCmd(a),
		newSongsListCmd(a),
		newSongsFindCmd(a),
		newDemoCmd(a),
		newConfigInitCmd(a),
		newConfigSetCmd(a),
	)
	return root, a
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := a.loadConfig(); err != nil {
		return err
	}
	if err := a.initLogging(); err != nil {
		return err
	}

	provider, err := tracing.NewProvider(tracing.Config{
		Enabled:      a.cfg.Tracing.Enabled,
		Exporter:     a.cfg.Tracing.Exporter,
		FilePath:     firstNonEmpty(a.cfg.Tracing.FilePath, config.DefaultTracesFilePath()),
		OTLPEndpoint: a.cfg.Tracing.OTLPEndpoint,
		SampleRate:   a.cfg.Tracing.SampleRate,
	})
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	a.tracing = provider

	ctx, span := provider.Tracer().Start(cmd.Context(), tracing.SpanCommand+cmd.Name())
	a.span = span
	cmd.SetContext(ctx)

	a.svc = a.newService()
	log.Debug(log.CatCLI, "command started", "command", cmd.Name(), "config", a.v.ConfigFileUsed())

	if seed := firstNonEmpty(a.seedFile, a.cfg.SeedFile); seed != "" {
		if err := a.svc.LoadSeed(ctx, os.DirFS(filepath.Dir(seed)), filepath.Base(seed)); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) newService() *roster.Service {
	return roster.New(
		roster.WithFlags(flags.New(a.cfg.Flags)),
		roster.WithTracer(a.tracing.Tracer()),
		roster.WithCacheTTL(a.cfg.Import.CacheTTL),
	)
}

func (a *app) loadConfig() error {
	defaults := config.Defaults()
	a.v.SetDefault("seed_file", defaults.SeedFile)
	a.v.SetDefault("output.format", defaults.Output.Format)
	a.v.SetDefault("output.color", defaults.Output.Color)
	a.v.SetDefault("log.file", defaults.Log.File)
	a.v.SetDefault("log.level", defaults.Log.Level)
	a.v.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	a.v.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	a.v.SetDefault("tracing.file_path", defaults.Tracing.FilePath)
	a.v.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	a.v.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	a.v.SetDefault("watch.debounce", defaults.Watch.Debounce)
	a.v.SetDefault("import.cache_ttl", defaults.Import.CacheTTL)
	a.v.SetDefault("flags", defaults.Flags)

	a.v.SetEnvPrefix("ROLLCALL")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		// Config lookup order:
		// 1. .rollcall/config.yaml (current directory)
		// 2. ~/.config/rollcall/config.yaml (user config)
		if _, err := os.Stat(localConfigPath); err == nil {
			a.v.SetConfigFile(localConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			a.v.AddConfigPath(filepath.Join(home, ".config", "rollcall"))
			a.v.SetConfigName("config")
			a.v.SetConfigType("yaml")
		}
	}

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	if err := a.v.Unmarshal(&a.cfg); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	if err := config.Validate(a.cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func (a *app) initLogging() error {
	if !a.debug && os.Getenv("ROLLCALL_DEBUG") == "" {
		return nil
	}

	path := firstNonEmpty(a.logFile, a.cfg.Log.File, config.DefaultLogFilePath())
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	closeLog, err := log.Init(path)
	if err != nil {
		return err
	}
	a.closeLog = closeLog

	level, err := log.ParseLevel(a.cfg.Log.Level)
	if err != nil {
		return err
	}
	log.SetMinLevel(level)
	return nil
}

// formatter returns an output formatter, with format overriding the
// configured one when set.
func (a *app) formatter(cmd *cobra.Command, format string) (*presentation.Formatter, error) {
	out := a.cfg.Output
	if format != "" {
		out.Format = format
	}
	if err := config.ValidateOutput(out); err != nil {
		return nil, err
	}
	return presentation.NewFormatter(cmd.OutOrStdout(), out), nil
}

// close ends the command span, flushes traces and closes the log.
func (a *app) close() {
	if a.span != nil {
		a.span.End()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.tracing.Shutdown(ctx); err != nil {
		log.ErrorErr(log.CatTrace, "shutting down tracing", err)
	}
	if a.closeLog != nil {
		a.closeLog()
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Execute runs the root command
func Execute() error {
	root, a := newRootCmd()
	defer a.close()
	return root.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
}
