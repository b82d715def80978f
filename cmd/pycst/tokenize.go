package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"pycst/internal/diagfmt"
	"pycst/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.py",
	Short: "Tokenize a source file",
	Long: `Tokenize breaks a source file into tokens. Every token carries the
whitespace, comments and line continuations in front of it as leading trivia.`,
	Args: cobra.ExactArgs(1),
	RunE: runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json|table)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return errors.Wrap(err, "failed to get format flag")
	}

	idx := state.timer.Begin("tokenize")
	result, err := driver.Tokenize(filePath, driverOptions())
	state.timer.End(idx, "")
	if err != nil {
		return errors.Wrap(err, "tokenization failed")
	}
	state.log.Debug().Str("file", filePath).Int("tokens", len(result.Tokens)).Msg("tokenized")

	// Выводим диагностику в stderr, если есть
	printDiagnostics(result.Bag, result.FileSet)

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		err = diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
	case "json":
		err = diagfmt.FormatTokensJSON(out, result.Tokens, result.FileSet)
	case "table":
		err = diagfmt.FormatTokensTable(out, result.Tokens, result.FileSet)
	default:
		return errors.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if result.Err != nil {
		return exitError{code: 1}
	}
	return nil
}
