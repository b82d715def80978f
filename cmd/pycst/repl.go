package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"pycst/internal/diag"
	"pycst/internal/diagfmt"
	"pycst/internal/driver"
	"pycst/internal/lexer"
	"pycst/internal/source"
)

const (
	replPrompt      = "\033[36m>>>\033[0m "
	replContinue    = "\033[36m...\033[0m "
	replPlainPrompt = ">>> "
	replPlainCont   = "... "
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactively parse statements and print their trees",
	Long: `Repl reads statements and prints the concrete syntax tree of each one.
Compound statements and open brackets continue on "..." lines until an empty
line. Commands: :tokens, :tree, :pretty, :json switch the output; :quit exits.`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	replCmd.Flags().String("format", "tree", "initial output format (tree|pretty|json|tokens)")
}

// replSession держит состояние между вводами.
type replSession struct {
	ctx    context.Context
	format string
	seq    int
	opts   driver.Options
	out    io.Writer
	errOut io.Writer
}

func runRepl(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return errors.Wrap(err, "failed to get format flag")
	}

	prompt, cont := replPlainPrompt, replPlainCont
	if state.color {
		prompt, cont = replPrompt, replContinue
	}

	completer := readline.NewPrefixCompleter(
		readline.PcItem(":tokens"),
		readline.PcItem(":tree"),
		readline.PcItem(":pretty"),
		readline.PcItem(":json"),
		readline.PcItem(":help"),
		readline.PcItem(":quit"),
	)
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       ":quit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
		Stdout:              cmd.OutOrStdout(),
		Stderr:              cmd.ErrOrStderr(),
	})
	if err != nil {
		return errors.Wrap(err, "repl")
	}
	defer rl.Close()

	sess := &replSession{
		ctx:    cmd.Context(),
		format: format,
		opts:   driverOptions(),
		out:    rl.Stdout(),
		errOut: rl.Stderr(),
	}

	var buf strings.Builder
	for {
		ln := rl.Line()
		if ln.CanContinue() {
			// ^C сбрасывает незаконченный ввод
			buf.Reset()
			rl.SetPrompt(prompt)
			continue
		} else if ln.CanBreak() {
			break
		}

		if buf.Len() == 0 {
			line := strings.TrimSpace(ln.Line)
			if line == "" {
				continue
			}
			if strings.HasPrefix(line, ":") {
				if sess.command(line) {
					break
				}
				continue
			}
		}

		buf.WriteString(ln.Line)
		buf.WriteByte('\n')
		if needsMore(buf.String(), ln.Line) {
			rl.SetPrompt(cont)
			continue
		}
		sess.eval(buf.String())
		buf.Reset()
		rl.SetPrompt(prompt)
	}
	return nil
}

// command выполняет :команду; true означает выход.
func (s *replSession) command(line string) bool {
	switch line {
	case ":quit", ":q", ":exit":
		return true
	case ":tokens", ":tree", ":pretty", ":json":
		s.format = line[1:]
		fmt.Fprintf(s.out, "output: %s\n", s.format)
	case ":help":
		fmt.Fprintln(s.out, "commands: :tokens :tree :pretty :json :quit")
	default:
		fmt.Fprintf(s.errOut, "unknown command %s (try :help)\n", line)
	}
	return false
}

func (s *replSession) eval(src string) {
	s.seq++
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(fmt.Sprintf("<repl:%d>", s.seq), []byte(src)))

	if s.format == "tokens" {
		res := driver.TokenizeFile(fs, file, s.opts)
		s.report(res.Bag, fs)
		if err := diagfmt.FormatTokensPretty(s.out, res.Tokens, fs); err != nil {
			state.log.Error().Err(err).Msg("print tokens")
		}
		return
	}

	res := driver.ParseFile(s.ctx, fs, file, s.opts)
	s.report(res.Bag, fs)
	if res.Module == nil {
		return
	}
	var err error
	switch s.format {
	case "pretty":
		err = diagfmt.FormatCSTPretty(s.out, res.Module, fs)
	case "json":
		err = diagfmt.FormatCSTJSON(s.out, res.Module)
	default:
		err = diagfmt.FormatCSTTree(s.out, res.Module, fs)
	}
	if err != nil {
		state.log.Error().Err(err).Msg("print tree")
	}
}

func (s *replSession) report(bag *diag.Bag, fs *source.FileSet) {
	if bag.Len() == 0 {
		return
	}
	bag.Sort()
	diagfmt.Pretty(s.errOut, bag, fs, diagfmt.PrettyOpts{Color: state.color, ShowNotes: true})
}

// needsMore решает, ждать ли продолжения ввода. Ввод, начатый заголовком блока
// (строка с ':' в конце или декоратор), закрывается пустой строкой; кроме того
// ждём при незакрытой скобке, тройной кавычке или '\' в конце строки.
func needsMore(src, last string) bool {
	if strings.HasSuffix(strings.TrimRight(last, " \t"), "\\") {
		return true
	}
	first, _, _ := strings.Cut(src, "\n")
	first = stripComment(strings.TrimSpace(first))
	if (strings.HasSuffix(first, ":") || strings.HasPrefix(first, "@")) && strings.TrimSpace(last) != "" {
		return true
	}

	fs := source.NewFileSet()
	_, err := lexer.Tokenize(fs.Get(fs.AddVirtual("<repl>", []byte(src))), lexer.Options{})
	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		switch lexErr.Code {
		case diag.LexUnclosedBracket:
			return true
		case diag.LexUnterminatedString:
			return strings.Contains(lexErr.Msg, "triple")
		}
	}
	return false
}

// stripComment отрезает комментарий вне строк (грубо: по первому '#' вне кавычек).
func stripComment(line string) string {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '#':
			return strings.TrimRight(line[:i], " \t")
		}
	}
	return line
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}
