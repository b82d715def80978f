package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"pycst/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "pycst",
	Short: "Lossless tokenizer and concrete syntax tree parser for Python-like sources",
	Long: `pycst tokenizes and parses Python-like source files into a lossless concrete
syntax tree: every byte of the input, comments and whitespace included, is kept
and the tree prints back to the exact original text.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupRun,
}

// main executes the root command with a context cancelled on interrupt.
// If command execution returns an error, the process exits with status code 1.
func main() {
	// ctrl+c отменяет контекст; ParseFiles останавливается между файлами
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	// PersistentPostRun не вызывается после ошибки RunE
	finishRun(rootCmd)
	if err != nil {
		// check уже вывел диагностики, здесь только код выхода
		if _, ok := err.(exitError); !ok {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	// Добавляем команды
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	flags := rootCmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	flags.Int("max-depth", 0, "maximum nesting depth (0 = from pycst.toml or 200)")
	flags.Uint32("tab-size", 0, "tab stop used for indentation (0 = from pycst.toml or 8)")
	flags.String("trace", "", "write trace events to file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.String("trace-format", "auto", "trace output format (auto|text|ndjson)")
	flags.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	flags.Duration("trace-heartbeat", 0, "emit heartbeat trace events at this interval (0 = off)")
	flags.CountP("verbose", "v", "-v for info logs, -vv for debug, -vvv for trace")
	flags.StringP("config", "c", "", "path to pycst.toml (default: search upwards from the working directory)")
	flags.Bool("metrics", false, "print parse metrics in Prometheus text format after the run")

	bindFlags(flags)
}

// exitError сигнализирует о неуспехе без повторного вывода сообщения.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor: значение уже проверено project.Load, неизвестное трактуется как auto.
func useColor(mode string, f *os.File) bool {
	m, _ := parseSwitch("color", mode)
	return m.resolve(f)
}
