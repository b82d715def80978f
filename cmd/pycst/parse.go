package main

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"pycst/internal/diagfmt"
	"pycst/internal/driver"
	"pycst/internal/format"
	"pycst/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.py",
	Short: "Parse a source file and output its concrete syntax tree",
	Long: `Parse builds the concrete syntax tree of a source file. The tree keeps every
token and its trivia, so --format source prints the input back byte for byte.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "tree", "output format (tree|pretty|json|source)")
	parseCmd.Flags().Bool("roundtrip", false, "check that printing the tree reproduces the file and reparses to the same tree")
	parseCmd.Flags().Bool("drop-comments", false, "with --format source, omit comments")
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	formatName, err := cmd.Flags().GetString("format")
	if err != nil {
		return errors.Wrap(err, "failed to get format flag")
	}
	roundtrip, err := cmd.Flags().GetBool("roundtrip")
	if err != nil {
		return errors.Wrap(err, "failed to get roundtrip flag")
	}
	dropComments, err := cmd.Flags().GetBool("drop-comments")
	if err != nil {
		return errors.Wrap(err, "failed to get drop-comments flag")
	}

	opts := driverOptions()
	if roundtrip {
		idx := state.timer.Begin("roundtrip")
		ok, msg, rtErr := driver.RoundTrip(filePath, opts)
		state.timer.End(idx, "")
		if rtErr != nil {
			return rtErr
		}
		if !ok {
			fmt.Fprintln(cmd.ErrOrStderr(), msg)
			return exitError{code: 1}
		}
		if !state.quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: round trip ok\n", filePath)
		}
		return nil
	}

	idx := state.timer.Begin("parse")
	result, err := driver.Parse(cmd.Context(), filePath, opts)
	state.timer.End(idx, "")
	if err != nil {
		return errors.Wrap(err, "parsing failed")
	}
	opts.Metrics.ObserveFile(result.Outcome(), len(result.File.Content), result.Tokens, result.Elapsed)
	state.log.Debug().Str("file", filePath).Int("tokens", result.Tokens).
		Dur("elapsed", result.Elapsed).Msg("parsed")

	printDiagnostics(result.Bag, result.FileSet)
	if result.Module == nil {
		return exitError{code: 1}
	}

	out := cmd.OutOrStdout()
	switch formatName {
	case "tree":
		return diagfmt.FormatCSTTree(out, result.Module, result.FileSet)
	case "pretty":
		return diagfmt.FormatCSTPretty(out, result.Module, result.FileSet)
	case "json":
		return diagfmt.FormatCSTJSON(out, result.Module)
	case "source":
		if result.File.HadBOM() {
			if _, err := io.WriteString(out, source.BOM); err != nil {
				return err
			}
		}
		return format.Fprint(out, result.Module, format.Options{DropComments: dropComments})
	default:
		return errors.Errorf("unknown format: %s", formatName)
	}
}
