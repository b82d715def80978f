package main

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"pycst/internal/driver"
	"pycst/internal/metrics"
	"pycst/internal/observ"
	"pycst/internal/project"
	"pycst/internal/trace"
)

// envPrefix: PYCST_MAX_DIAGNOSTICS=20 и т.п.
const envPrefix = "PYCST"

// runState - всё, что PersistentPreRunE готовит для команды.
type runState struct {
	cfg     project.Config
	log     zerolog.Logger
	session string
	color   bool
	quiet   bool
	timer   *observ.Timer
	metrics *metrics.Metrics

	traceCleanup func()
}

var state = &runState{log: zerolog.Nop()}

func bindFlags(flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		// ошибка возможна только при nil-флаге
		_ = viper.BindPFlag(f.Name, f)
	})
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func setupRun(cmd *cobra.Command, args []string) error {
	state.session = trace.NewSession()
	state.log = newLogger(os.Stderr, viper.GetInt("verbose"), state.session)

	cfg, err := loadConfig(viper.GetString("config"))
	if err != nil {
		return err
	}
	applyOverrides(&cfg)
	state.cfg = cfg
	state.log.Debug().Str("config", valueOr(cfg.Path, "<defaults>")).
		Str("root", valueOr(cfg.Root, "<none>")).
		Int("max_depth", cfg.Parse.MaxDepth).
		Uint32("tab_size", cfg.Parse.TabSize).
		Int("max_diagnostics", cfg.Diagnostics.Max).
		Msg("configuration loaded")

	state.color = useColor(cfg.Diagnostics.Color, os.Stderr)
	state.quiet = viper.GetBool("quiet")
	if viper.GetBool("timings") {
		state.timer = observ.NewTimer()
	}
	if viper.GetBool("metrics") {
		state.metrics = metrics.New()
	}

	state.traceCleanup, err = setupTracing(cmd)
	return err
}

func finishRun(cmd *cobra.Command) {
	if state.traceCleanup != nil {
		state.traceCleanup()
		state.traceCleanup = nil
	}
	out := cmd.ErrOrStderr()
	if state.timer != nil {
		if err := state.timer.WriteTable(out); err != nil {
			state.log.Error().Err(err).Msg("write timings")
		}
	}
	if state.metrics != nil {
		if err := state.metrics.WriteText(out); err != nil {
			state.log.Error().Err(err).Msg("write metrics")
		}
	}
}

// newLogger пишет в консольном виде на терминал и JSON-строками иначе.
func newLogger(w *os.File, verbosity int, session string) zerolog.Logger {
	var out io.Writer = w
	if isTerminal(w) {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).
		Level(logLevel(verbosity)).
		With().
		Timestamp().
		Str("session", session).
		Logger()
}

func logLevel(verbosity int) zerolog.Level {
	switch {
	case verbosity >= 3:
		return zerolog.TraceLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	default:
		return zerolog.WarnLevel
	}
}

// loadConfig читает явно заданный файл или ищет pycst.toml вверх от рабочего каталога.
func loadConfig(path string) (project.Config, error) {
	if path != "" {
		cfg, err := project.Load(path)
		return cfg, errors.Wrap(err, "config")
	}
	wd, err := os.Getwd()
	if err != nil {
		return project.Config{}, errors.Wrap(err, "config")
	}
	cfg, err := project.Discover(wd)
	return cfg, errors.Wrap(err, "config")
}

// applyOverrides кладёт флаги и PYCST_* поверх значений из файла.
// viper.IsSet истинен только для изменённых флагов и заданных переменных окружения.
func applyOverrides(cfg *project.Config) {
	if viper.IsSet("max-diagnostics") {
		cfg.Diagnostics.Max = viper.GetInt("max-diagnostics")
	}
	if viper.IsSet("color") {
		cfg.Diagnostics.Color = viper.GetString("color")
	}
	if viper.IsSet("max-depth") && viper.GetInt("max-depth") > 0 {
		cfg.Parse.MaxDepth = viper.GetInt("max-depth")
	}
	if viper.IsSet("tab-size") && viper.GetUint32("tab-size") > 0 {
		cfg.Parse.TabSize = viper.GetUint32("tab-size")
	}
	if viper.IsSet("jobs") {
		cfg.Check.Jobs = viper.GetInt("jobs")
	}
}

// driverOptions собирает driver.Options для текущего запуска.
func driverOptions() driver.Options {
	opts := driver.OptionsFrom(state.cfg)
	opts.Metrics = state.metrics
	opts.Timer = state.timer
	return opts
}

func valueOr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
