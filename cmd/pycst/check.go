package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pycst/internal/diag"
	"pycst/internal/diagfmt"
	"pycst/internal/driver"
	"pycst/internal/source"
	"pycst/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <path>...",
	Short: "Parse files and directories and report diagnostics",
	Long: `Check parses every given file and every *.py file under the given directories
(see [check] include/exclude in pycst.toml) in parallel and reports lexical and
syntax errors. The exit status is 1 if any file fails.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	checkCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	checkCmd.Flags().Bool("cache", false, "reuse results of unchanged files from the on-disk parse cache")
	checkCmd.Flags().String("cache-dir", "", "parse cache directory (default $XDG_CACHE_HOME/pycst)")
	checkCmd.Flags().Bool("clear-cache", false, "drop the parse cache before checking")
	checkCmd.Flags().String("format", "pretty", "diagnostics format (pretty|short|json|sarif)")
	checkCmd.Flags().String("min-severity", "info", "hide diagnostics below this severity (info|warning|error)")

	for _, name := range []string{"jobs", "ui", "cache", "cache-dir"} {
		_ = viper.BindPFlag(name, checkCmd.Flags().Lookup(name))
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	formatName, err := cmd.Flags().GetString("format")
	if err != nil {
		return errors.Wrap(err, "failed to get format flag")
	}
	switch formatName {
	case "pretty", "short", "json", "sarif":
	default:
		return errors.Errorf("unknown format: %s", formatName)
	}
	minSevName, err := cmd.Flags().GetString("min-severity")
	if err != nil {
		return errors.Wrap(err, "failed to get min-severity flag")
	}
	minSev, err := diag.ParseSeverity(minSevName)
	if err != nil {
		return err
	}
	mode, err := parseSwitch("--ui", viper.GetString("ui"))
	if err != nil {
		return err
	}
	clearCache, err := cmd.Flags().GetBool("clear-cache")
	if err != nil {
		return errors.Wrap(err, "failed to get clear-cache flag")
	}

	opts := driverOptions()
	if viper.GetBool("cache") || clearCache {
		opts.Cache, err = openCache(viper.GetString("cache-dir"), clearCache)
		if err != nil {
			return err
		}
	}

	idx := state.timer.Begin("discover")
	files, err := driver.ListFiles(args, opts.Check)
	state.timer.End(idx, fmt.Sprintf("%d files", len(files)))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		state.log.Warn().Strs("paths", args).Msg("no files to check")
		return nil
	}
	baseDir, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, "check")
	}
	state.log.Info().Int("files", len(files)).Int("jobs", opts.Jobs).Bool("cache", opts.Cache != nil).Msg("checking")

	start := time.Now()
	idx = state.timer.Begin("check")
	var (
		fs      *source.FileSet
		results []driver.FileResult
	)
	if formatName == "pretty" && !state.quiet && mode.resolve(os.Stderr) {
		fs, results, err = runCheckWithUI(cmd.Context(), "checking", files, baseDir, opts)
	} else {
		fs, results, err = driver.ParseFiles(cmd.Context(), files, baseDir, opts)
	}
	state.timer.End(idx, "")
	if err != nil {
		return errors.Wrap(err, "check")
	}
	summary := summarize(fs, results, time.Since(start))

	all := diag.NewBag(opts.MaxDiagnostics)
	for i := range results {
		all.Merge(results[i].Bag)
	}
	all.Sort()
	all = all.Filter(minSev)

	out := cmd.OutOrStdout()
	switch formatName {
	case "json":
		err = diagfmt.JSON(out, all, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeRelative,
			Max:              opts.MaxDiagnostics,
			IncludeNotes:     true,
		})
	case "short":
		err = diagfmt.Short(out, all, fs, diagfmt.ShortOpts{
			PathMode:     diagfmt.PathModeRelative,
			IncludeNotes: true,
		})
	case "sarif":
		err = diagfmt.Sarif(out, all, fs, diagfmt.SarifRunMeta{
			ToolName:       "pycst",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args,
		})
	default:
		printDiagnostics(all, fs)
		if !state.quiet {
			summary.write(cmd.ErrOrStderr())
		}
	}
	if err != nil {
		return err
	}
	if summary.failed > 0 {
		return exitError{code: 1}
	}
	return nil
}

func openCache(dir string, clear bool) (*driver.ParseCache, error) {
	var (
		disk *driver.DiskCache
		err  error
	)
	if dir != "" {
		disk, err = driver.OpenDiskCacheAt(dir)
	} else {
		disk, err = driver.OpenDiskCache("pycst")
	}
	if err != nil {
		return nil, err
	}
	if clear {
		if err := disk.DropAll(); err != nil {
			return nil, err
		}
		state.log.Info().Str("dir", disk.Dir()).Msg("parse cache cleared")
	}
	state.log.Debug().Str("dir", disk.Dir()).Msg("parse cache")
	return driver.NewParseCache(disk, 256), nil
}

// checkOutcome - результат ParseFiles, переданный из рабочей горутины.
type checkOutcome struct {
	fs      *source.FileSet
	results []driver.FileResult
	err     error
}

func runCheckWithUI(ctx context.Context, title string, files []string, baseDir string, opts driver.Options) (*source.FileSet, []driver.FileResult, error) {
	events := make(chan driver.FileEvent, 256)
	opts.Observer = func(ev driver.FileEvent) { events <- ev }
	return runWithProgress(title, files, events, func() checkOutcome {
		fs, results, err := driver.ParseFiles(ctx, files, baseDir, opts)
		return checkOutcome{fs: fs, results: results, err: err}
	})
}
