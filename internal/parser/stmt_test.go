package parser_test

import (
	"errors"
	"fmt"
	"testing"

	"pycst/internal/cst"
	"pycst/internal/lexer"
	"pycst/internal/parser"
)

func TestStatementKinds(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"pass\n", "*cst.Pass"},
		{"x = 1\n", "*cst.Assign"},
		{"x += 1\n", "*cst.AugAssign"},
		{"x: int\n", "*cst.AnnAssign"},
		{"f()\n", "*cst.ExprStmt"},
		{"yield x\n", "*cst.ExprStmt"},
		{"type X = int\n", "*cst.TypeAlias"},
		{"type(x)\n", "*cst.ExprStmt"},
		{"import a\n", "*cst.Import"},
		{"from a import b\n", "*cst.ImportFrom"},
		{"if x: pass\n", "*cst.If"},
		{"while x: pass\n", "*cst.While"},
		{"for x in y: pass\n", "*cst.For"},
		{"async for x in y: pass\n", "*cst.For"},
		{"with a: pass\n", "*cst.With"},
		{"try: pass\nfinally: pass\n", "*cst.Try"},
		{"def f(): pass\n", "*cst.FunctionDef"},
		{"@d\nasync def f(): pass\n", "*cst.FunctionDef"},
		{"class C: pass\n", "*cst.ClassDef"},
		{"match x:\n    case 1: pass\n", "*cst.Match"},
		{"match = 1\n", "*cst.Assign"},
		{"match.group(1)\n", "*cst.ExprStmt"},
		{"match(a)\n", "*cst.ExprStmt"},
		{"match(a):\n    case _: pass\n", "*cst.Match"},
		{"match [a, b]:\n    case _: pass\n", "*cst.Match"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := fmt.Sprintf("%T", firstStmt(t, tt.input)); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMatchSubjectFromCall(t *testing.T) {
	stmt := firstStmt(t, "match(a, *b):\n    case [x, *y]: pass\n")
	m, ok := stmt.(*cst.Match)
	if !ok {
		t.Fatalf("got %T, want *cst.Match", stmt)
	}
	tup, ok := m.Subject.(*cst.Tuple)
	if !ok || len(tup.Elts) != 2 || tup.LParen == nil {
		t.Fatalf("subject: %T %s", m.Subject, text(m.Subject))
	}
	if _, ok := tup.Elts[1].(*cst.Starred); !ok {
		t.Fatalf("second element %T, want *cst.Starred", tup.Elts[1])
	}
	if len(m.Cases) != 1 {
		t.Fatalf("cases: %d", len(m.Cases))
	}
	seq, ok := m.Cases[0].Pattern.(*cst.MatchSequence)
	if !ok || len(seq.Patterns) != 2 {
		t.Fatalf("pattern: %T", m.Cases[0].Pattern)
	}
}

func TestPatterns(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"_", "*cst.MatchWildcard"},
		{"x", "*cst.MatchCapture"},
		{"-1", "*cst.MatchLiteral"},
		{"1 + 2j", "*cst.MatchLiteral"},
		{"'a' 'b'", "*cst.MatchLiteral"},
		{"None", "*cst.MatchLiteral"},
		{"a.b", "*cst.MatchValue"},
		{"(x)", "*cst.MatchGroup"},
		{"()", "*cst.MatchSequence"},
		{"(x,)", "*cst.MatchSequence"},
		{"[x, *_]", "*cst.MatchSequence"},
		{"x, y", "*cst.MatchSequence"},
		{"*rest", "*cst.MatchSequence"},
		{"{'k': v, **rest}", "*cst.MatchMapping"},
		{"P(x, y=1)", "*cst.MatchClass"},
		{"a.P()", "*cst.MatchClass"},
		{"1 | 2 | 3", "*cst.MatchOr"},
		{"[x] as y", "*cst.MatchAs"},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			src := "match s:\n    case " + tt.pattern + ":\n        pass\n"
			m, ok := firstStmt(t, src).(*cst.Match)
			if !ok {
				t.Fatalf("not a match statement")
			}
			if got := fmt.Sprintf("%T", m.Cases[0].Pattern); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestOrPatternFoldsLeft(t *testing.T) {
	m := firstStmt(t, "match s:\n    case 1 | 2 | 3: pass\n").(*cst.Match)
	or, ok := m.Cases[0].Pattern.(*cst.MatchOr)
	if !ok {
		t.Fatalf("got %T", m.Cases[0].Pattern)
	}
	if _, ok := or.X.(*cst.MatchOr); !ok {
		t.Fatalf("left operand %T, want *cst.MatchOr", or.X)
	}
	if text(or.Y) != "3" {
		t.Fatalf("right operand %q", text(or.Y))
	}
}

func TestWithParenthesizedItems(t *testing.T) {
	w := firstStmt(t, "with (open(a) as f, b):\n    pass\n").(*cst.With)
	if w.LParen == nil || len(w.Items) != 2 || w.Items[0].As == nil || w.Items[1].As != nil {
		t.Fatalf("with items: %+v", w.Items)
	}

	w = firstStmt(t, "with (a).b as c: pass\n").(*cst.With)
	if w.LParen != nil || len(w.Items) != 1 {
		t.Fatalf("parenthesized context: %+v", w)
	}
	if got := text(w.Items[0].Context); got != "( a ) . b" {
		t.Fatalf("context %q", got)
	}
}

func TestImportFrom(t *testing.T) {
	imp := firstStmt(t, "from ..a.b import (c as d, e)\n").(*cst.ImportFrom)
	if len(imp.Dots) != 2 || imp.Module.String() != "a.b" {
		t.Fatalf("module: dots=%d %q", len(imp.Dots), imp.Module.String())
	}
	if len(imp.Names) != 2 || imp.Names[0].AsName == nil || imp.Names[0].AsName.Text != "d" {
		t.Fatalf("names: %+v", imp.Names)
	}
	if imp.LParen == nil || imp.RParen == nil {
		t.Fatal("parens missing")
	}
}

func TestFunctionDef(t *testing.T) {
	fn := firstStmt(t, "@a\n@b.c(1)\ndef f[T](x: T, /, *args: int, k=1, **kw) -> T:\n    return x\n").(*cst.FunctionDef)
	if len(fn.Decorators) != 2 {
		t.Fatalf("decorators: %d", len(fn.Decorators))
	}
	if fn.TypeParams == nil || fn.Returns == nil {
		t.Fatal("type params or return annotation missing")
	}
	params := fn.Params.Items
	if len(params) != 5 {
		t.Fatalf("params: %d", len(params))
	}
	if params[1].Name != nil || params[1].Prefix.Text != "/" {
		t.Fatal("positional-only marker")
	}
	if params[2].Annotation == nil || params[2].Prefix.Text != "*" {
		t.Fatal("annotated *args")
	}
	if params[3].Default == nil {
		t.Fatal("default value")
	}
	if _, ok := fn.Body.(*cst.Block); !ok {
		t.Fatalf("body %T", fn.Body)
	}
	if sp := fn.Span(); sp.Start != 0 {
		t.Fatalf("decorated def span %v must start at the first decorator", sp)
	}
}

func TestCallArguments(t *testing.T) {
	x := firstExpr(t, "f(a, *b, c=d, **e)\n")
	prim := x.(*cst.Primary)
	call := prim.Trailers[0].(*cst.Call)
	if len(call.Args) != 4 || len(call.Commas) != 3 {
		t.Fatalf("args: %d, commas: %d", len(call.Args), len(call.Commas))
	}
	if call.Args[2].Name == nil || call.Args[2].Name.Text != "c" {
		t.Fatal("keyword argument")
	}
	if call.Args[3].Star == nil || call.Args[3].Star.Text != "**" {
		t.Fatal("double star argument")
	}

	gen := firstExpr(t, "f(x for x in y)\n").(*cst.Primary).Trailers[0].(*cst.Call)
	if g, ok := gen.Args[0].Value.(*cst.GeneratorExp); !ok || g.LParen != nil {
		t.Fatalf("bare generator argument: %T", gen.Args[0].Value)
	}
}

func TestSlices(t *testing.T) {
	sub := firstExpr(t, "a[1:2, ::3]\n").(*cst.Primary).Trailers[0].(*cst.Subscript)
	s, ok := sub.Index.(*cst.Slices)
	if !ok || len(s.Elts) != 2 {
		t.Fatalf("index %T", sub.Index)
	}
	second := s.Elts[1].(*cst.Slice)
	if second.Lower != nil || second.Upper != nil || second.Colon2 == nil || second.Step == nil {
		t.Fatalf("::3 parsed as %+v", second)
	}
}

func TestTrailingCommaTuple(t *testing.T) {
	tup, ok := firstExpr(t, "1,\n").(*cst.Tuple)
	if !ok || len(tup.Elts) != 1 || len(tup.Commas) != 1 || tup.LParen != nil {
		t.Fatalf("got %+v", tup)
	}
}

func TestMatchAfterPrefixOperator(t *testing.T) {
	tests := []struct {
		input   string
		stmt    string
		subject string
	}{
		{"match -x:\n    case 1: pass\n", "*cst.Match", "*cst.UnaryExpr"},
		{"match +x:\n    case 1: pass\n", "*cst.Match", "*cst.UnaryExpr"},
		{"match *a, b:\n    case [_, _]: pass\n", "*cst.Match", "*cst.Tuple"},
		{"match not x:\n    case True: pass\n", "*cst.Match", "*cst.NotExpr"},
		// то же начало строки, но без ':' - обычное выражение с именем match
		{"match - x\n", "*cst.ExprStmt", "*cst.BinaryExpr"},
		{"match * a, b\n", "*cst.ExprStmt", "*cst.Tuple"},
		{"match not in xs\n", "*cst.ExprStmt", "*cst.Compare"},
		{"match -x == y\n", "*cst.ExprStmt", "*cst.Compare"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			rep := &bagReporter{}
			mod, err := parser.NewString(tt.input, parser.Options{Reporter: rep}).ParseModule()
			if err != nil {
				t.Fatal(err)
			}
			if len(rep.items) != 0 {
				t.Fatalf("reported %d diagnostics: %+v", len(rep.items), rep.items)
			}
			if got := moduleSource(mod); got != tt.input {
				t.Fatalf("round trip %q", got)
			}
			stmt := firstStmt(t, tt.input)
			if got := fmt.Sprintf("%T", stmt); got != tt.stmt {
				t.Fatalf("statement %s, want %s", got, tt.stmt)
			}
			var subject cst.Expr
			switch s := stmt.(type) {
			case *cst.Match:
				subject = s.Subject
			case *cst.ExprStmt:
				subject = s.X
			}
			if got := fmt.Sprintf("%T", subject); got != tt.subject {
				t.Errorf("subject %s, want %s", got, tt.subject)
			}
		})
	}
}

func TestMatchFallbackReportsOnce(t *testing.T) {
	rep := &bagReporter{}
	_, err := parser.NewString("match -:\n", parser.Options{Reporter: rep}).ParseModule()
	var perr *parser.Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected *parser.Error, got %v", err)
	}
	if len(rep.items) != 1 || rep.items[0].Primary.Start != perr.Span.Start {
		t.Fatalf("diagnostics %+v for %v", rep.items, err)
	}

	_, err = parser.NewString("match -$:\n", parser.Options{Reporter: rep}).ParseModule()
	var lerr *lexer.Error
	if !errors.As(err, &lerr) {
		t.Fatalf("lexical error inside the subject: got %v", err)
	}
}
