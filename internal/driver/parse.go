package driver

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"pycst/internal/cst"
	"pycst/internal/diag"
	"pycst/internal/format"
	"pycst/internal/lexer"
	"pycst/internal/metrics"
	"pycst/internal/parser"
	"pycst/internal/source"
	"pycst/internal/token"
	"pycst/internal/trace"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Module  *cst.Module // nil when Err != nil
	Err     error       // *lexer.Error or *parser.Error
	Bag     *diag.Bag
	Tokens  int
	Elapsed time.Duration
}

// Parse reads path and parses it as a module. The returned error is for I/O
// only; lexical and syntax failures are in ParseResult.Err and Bag.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return ParseFile(ctx, fs, fs.Get(fileID), opts), nil
}

// ParseFile parses a file already in fs.
func ParseFile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) *ParseResult {
	ctx, span := trace.StartSpan(ctx, trace.ScopePass, "parse")
	bag := diag.NewBag(opts.maxDiagnostics())
	popts := opts.parserOptions()
	popts.Reporter = diag.NewDedupReporter(diag.BagReporter{Bag: bag})

	start := time.Now()
	mod, err := parser.ParseFile(file, popts)
	elapsed := time.Since(start)

	res := &ParseResult{
		FileSet: fs,
		File:    file,
		Module:  mod,
		Err:     err,
		Bag:     bag,
		Elapsed: elapsed,
	}
	if err == nil {
		cst.EachToken(mod, func(*token.Token) { res.Tokens++ })
		if trace.Enabled(ctx, trace.ScopeNode) {
			traceStatements(ctx, fs, mod)
		}
	}
	span.WithExtra("tokens", strconv.Itoa(res.Tokens)).End(outcome(err))
	return res
}

// traceStatements emits one point per top-level statement, named by node
// type; a line of simple statements is named by its parts ("Assign;Expr").
func traceStatements(ctx context.Context, fs *source.FileSet, mod *cst.Module) {
	for _, st := range mod.Body {
		name := nodeName(st)
		if simple, ok := st.(*cst.SimpleStatements); ok {
			parts := make([]string, len(simple.Stmts))
			for i, inner := range simple.Stmts {
				parts[i] = nodeName(inner)
			}
			name = strings.Join(parts, ";")
		}
		start, _ := fs.Resolve(st.Span())
		trace.Point(ctx, trace.ScopeNode, name, "line "+strconv.FormatUint(uint64(start.Line), 10))
	}
}

func nodeName(n cst.Node) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", n), "*cst.")
}

// RoundTrip parses path, prints the tree back and checks the bytes and the
// reparsed tree against the original.
func RoundTrip(path string, opts Options) (ok bool, msg string, err error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return false, "", errors.Wrapf(err, "roundtrip %s", path)
	}
	ok, msg = format.CheckRoundTrip(fs.Get(fileID), opts.maxDiagnostics())
	return ok, msg, nil
}

// outcome classifies a parse error into a metrics result label.
func outcome(err error) string {
	var lexErr *lexer.Error
	var synErr *parser.Error
	switch {
	case err == nil:
		return metrics.ResultOK
	case errors.As(err, &lexErr):
		return metrics.ResultLexError
	case errors.As(err, &synErr):
		return metrics.ResultSyntaxError
	default:
		return metrics.ResultIOError
	}
}

// Outcome returns the metrics result label of the parse.
func (r *ParseResult) Outcome() string { return outcome(r.Err) }
