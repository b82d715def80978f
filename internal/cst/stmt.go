package cst

import (
	"pycst/internal/source"
	"pycst/internal/token"
)

// Simple statements. They appear inside *SimpleStatements, which owns the
// separating semicolons and the terminating Newline.
type (
	Pass     struct{ Tok token.Token }
	Break    struct{ Tok token.Token }
	Continue struct{ Tok token.Token }

	Return struct {
		Return token.Token
		Value  Expr
	}

	// Raise is "raise [exc [from cause]]".
	Raise struct {
		Raise token.Token
		Exc   Expr
		From  *token.Token
		Cause Expr
	}

	Global struct {
		Global token.Token
		Names  []token.Token
		Commas []token.Token
	}

	Nonlocal struct {
		Nonlocal token.Token
		Names    []token.Token
		Commas   []token.Token
	}

	Assert struct {
		Assert token.Token
		Test   Expr
		Comma  *token.Token
		Msg    Expr
	}

	Del struct {
		Del     token.Token
		Targets Expr
	}

	// DottedName is a.b.c as used by imports.
	DottedName struct {
		Names []token.Token
		Dots  []token.Token
	}

	// Alias is "name [as asname]" in an import.
	Alias struct {
		Name   *DottedName
		As     *token.Token
		AsName *token.Token
	}

	Import struct {
		Import token.Token
		Names  []*Alias
		Commas []token.Token
	}

	// ImportFrom is "from [dots][module] import (names | '*' | '(' names ')')".
	// Dots holds '.' and '...' tokens of a relative import.
	ImportFrom struct {
		From   token.Token
		Dots   []token.Token
		Module *DottedName
		Import token.Token
		LParen *token.Token
		Star   *token.Token
		Names  []*Alias
		Commas []token.Token
		RParen *token.Token
	}

	// TypeAlias is "type Name[params] = value". Type is the soft keyword token.
	TypeAlias struct {
		Type       token.Token
		Name       token.Token
		TypeParams *TypeParams
		Assign     token.Token
		Value      Expr
	}

	TypeParams struct {
		LBracket token.Token
		Params   []*TypeParam
		Commas   []token.Token
		RBracket token.Token
	}

	// TypeParam is T, T: bound, *Ts or **P, with an optional "= default".
	TypeParam struct {
		Star    *token.Token
		Name    token.Token
		Colon   *token.Token
		Bound   Expr
		Assign  *token.Token
		Default Expr
	}

	// ExprStmt is an expression evaluated for its effect, including yield.
	ExprStmt struct{ X Expr }

	// Assign is "t1 = t2 = value".
	Assign struct {
		Targets []Expr
		Assigns []token.Token
		Value   Expr
	}

	AugAssign struct {
		Target Expr
		Op     token.Token
		Value  Expr
	}

	// AnnAssign is "target: annotation [= value]".
	AnnAssign struct {
		Target     Expr
		Colon      token.Token
		Annotation Expr
		Assign     *token.Token
		Value      Expr
	}
)

// Blocks and compound statements.
type (
	// SimpleStatements is one logical line of simple statements.
	SimpleStatements struct {
		Stmts      []Stmt
		Semicolons []token.Token
		Newline    token.Token
	}

	// Block is an indented suite.
	Block struct {
		Newline token.Token
		Indent  token.Token
		Body    []Stmt
		Dedent  token.Token
	}

	If struct {
		If    token.Token
		Test  Expr
		Colon token.Token
		Body  Suite
		Elifs []*Elif
		Else  *ElseClause
	}

	Elif struct {
		Elif  token.Token
		Test  Expr
		Colon token.Token
		Body  Suite
	}

	ElseClause struct {
		Else  token.Token
		Colon token.Token
		Body  Suite
	}

	While struct {
		While token.Token
		Test  Expr
		Colon token.Token
		Body  Suite
		Else  *ElseClause
	}

	For struct {
		Async  *token.Token
		For    token.Token
		Target Expr
		In     token.Token
		Iter   Expr
		Colon  token.Token
		Body   Suite
		Else   *ElseClause
	}

	With struct {
		Async  *token.Token
		With   token.Token
		LParen *token.Token
		Items  []*WithItem
		Commas []token.Token
		RParen *token.Token
		Colon  token.Token
		Body   Suite
	}

	WithItem struct {
		Context Expr
		As      *token.Token
		Target  Expr
	}

	// Try is try-finally, or try with except (or except*) handlers and optional else/finally.
	Try struct {
		Try      token.Token
		Colon    token.Token
		Body     Suite
		Handlers []*ExceptHandler
		Else     *ElseClause
		Finally  *FinallyClause
	}

	ExceptHandler struct {
		Except token.Token
		Star   *token.Token
		Type   Expr
		As     *token.Token
		Name   *token.Token
		Colon  token.Token
		Body   Suite
	}

	FinallyClause struct {
		Finally token.Token
		Colon   token.Token
		Body    Suite
	}

	// Match is "match subject:" followed by an indented list of cases.
	Match struct {
		Match   token.Token
		Subject Expr
		Colon   token.Token
		Newline token.Token
		Indent  token.Token
		Cases   []*MatchCase
		Dedent  token.Token
	}

	MatchCase struct {
		Case    token.Token
		Pattern Pattern
		If      *token.Token
		Guard   Expr
		Colon   token.Token
		Body    Suite
	}

	Decorator struct {
		At      token.Token
		X       Expr
		Newline token.Token
	}

	FunctionDef struct {
		Decorators []*Decorator
		Async      *token.Token
		Def        token.Token
		Name       token.Token
		TypeParams *TypeParams
		LParen     token.Token
		Params     *Parameters
		RParen     token.Token
		Arrow      *token.Token
		Returns    Expr
		Colon      token.Token
		Body       Suite
	}

	ClassDef struct {
		Decorators []*Decorator
		Class      token.Token
		Name       token.Token
		TypeParams *TypeParams
		LParen     *token.Token
		Args       []*Arg
		Commas     []token.Token
		RParen     *token.Token
		Colon      token.Token
		Body       Suite
	}

	// Module is the root. Trivia after the last statement is attached to EOF.
	Module struct {
		Body []Stmt
		EOF  token.Token
	}
)

func (*Pass) stmtNode()             {}
func (*Break) stmtNode()            {}
func (*Continue) stmtNode()         {}
func (*Return) stmtNode()           {}
func (*Raise) stmtNode()            {}
func (*Global) stmtNode()           {}
func (*Nonlocal) stmtNode()         {}
func (*Assert) stmtNode()           {}
func (*Del) stmtNode()              {}
func (*Import) stmtNode()           {}
func (*ImportFrom) stmtNode()       {}
func (*TypeAlias) stmtNode()        {}
func (*ExprStmt) stmtNode()         {}
func (*Assign) stmtNode()           {}
func (*AugAssign) stmtNode()        {}
func (*AnnAssign) stmtNode()        {}
func (*SimpleStatements) stmtNode() {}
func (*Block) stmtNode()            {}
func (*If) stmtNode()               {}
func (*While) stmtNode()            {}
func (*For) stmtNode()              {}
func (*With) stmtNode()             {}
func (*Try) stmtNode()              {}
func (*Match) stmtNode()            {}
func (*FunctionDef) stmtNode()      {}
func (*ClassDef) stmtNode()         {}

func (*SimpleStatements) suiteNode() {}
func (*Block) suiteNode()            {}

func (x *Pass) Elements() []Element     { return []Element{{Tok: &x.Tok}} }
func (x *Break) Elements() []Element    { return []Element{{Tok: &x.Tok}} }
func (x *Continue) Elements() []Element { return []Element{{Tok: &x.Tok}} }

func (x *Return) Elements() []Element {
	var e elems
	e.tok(&x.Return)
	e.node(x.Value)
	return e
}

func (x *Raise) Elements() []Element {
	var e elems
	e.tok(&x.Raise)
	e.node(x.Exc)
	e.tok(x.From)
	e.node(x.Cause)
	return e
}

func (x *Global) Elements() []Element {
	var e elems
	e.tok(&x.Global)
	sepTokens(&e, x.Names, x.Commas)
	return e
}

func (x *Nonlocal) Elements() []Element {
	var e elems
	e.tok(&x.Nonlocal)
	sepTokens(&e, x.Names, x.Commas)
	return e
}

func (x *Assert) Elements() []Element {
	var e elems
	e.tok(&x.Assert)
	e.node(x.Test)
	e.tok(x.Comma)
	e.node(x.Msg)
	return e
}

func (x *Del) Elements() []Element {
	return []Element{{Tok: &x.Del}, {Node: x.Targets}}
}

func (x *DottedName) Elements() []Element {
	var e elems
	sepTokens(&e, x.Names, x.Dots)
	return e
}

// String returns the dotted name without trivia.
func (x *DottedName) String() string {
	s := ""
	for i, n := range x.Names {
		if i > 0 {
			s += "."
		}
		s += n.Text
	}
	return s
}

func (x *Alias) Elements() []Element {
	var e elems
	e.node(x.Name)
	e.tok(x.As)
	e.tok(x.AsName)
	return e
}

func (x *Import) Elements() []Element {
	var e elems
	e.tok(&x.Import)
	sep(&e, x.Names, x.Commas)
	return e
}

func (x *ImportFrom) Elements() []Element {
	var e elems
	e.tok(&x.From)
	e.toks(x.Dots)
	if x.Module != nil {
		e.node(x.Module)
	}
	e.tok(&x.Import)
	e.tok(x.LParen)
	e.tok(x.Star)
	sep(&e, x.Names, x.Commas)
	e.tok(x.RParen)
	return e
}

func (x *TypeAlias) Elements() []Element {
	var e elems
	e.tok(&x.Type)
	e.tok(&x.Name)
	if x.TypeParams != nil {
		e.node(x.TypeParams)
	}
	e.tok(&x.Assign)
	e.node(x.Value)
	return e
}

func (x *TypeParams) Elements() []Element {
	var e elems
	e.tok(&x.LBracket)
	sep(&e, x.Params, x.Commas)
	e.tok(&x.RBracket)
	return e
}

func (x *TypeParam) Elements() []Element {
	var e elems
	e.tok(x.Star)
	e.tok(&x.Name)
	e.tok(x.Colon)
	e.node(x.Bound)
	e.tok(x.Assign)
	e.node(x.Default)
	return e
}

func (x *ExprStmt) Elements() []Element { return []Element{{Node: x.X}} }

func (x *Assign) Elements() []Element {
	var e elems
	for i := range x.Targets {
		e.node(x.Targets[i])
		e.tok(&x.Assigns[i])
	}
	e.node(x.Value)
	return e
}

func (x *AugAssign) Elements() []Element {
	return []Element{{Node: x.Target}, {Tok: &x.Op}, {Node: x.Value}}
}

func (x *AnnAssign) Elements() []Element {
	var e elems
	e.node(x.Target)
	e.tok(&x.Colon)
	e.node(x.Annotation)
	e.tok(x.Assign)
	e.node(x.Value)
	return e
}

func (x *SimpleStatements) Elements() []Element {
	var e elems
	sep(&e, x.Stmts, x.Semicolons)
	e.tok(&x.Newline)
	return e
}

func (x *Block) Elements() []Element {
	var e elems
	e.tok(&x.Newline)
	e.tok(&x.Indent)
	nodes(&e, x.Body)
	e.tok(&x.Dedent)
	return e
}

func (x *If) Elements() []Element {
	var e elems
	e.tok(&x.If)
	e.node(x.Test)
	e.tok(&x.Colon)
	e.node(x.Body)
	nodes(&e, x.Elifs)
	if x.Else != nil {
		e.node(x.Else)
	}
	return e
}

func (x *Elif) Elements() []Element {
	return []Element{{Tok: &x.Elif}, {Node: x.Test}, {Tok: &x.Colon}, {Node: x.Body}}
}

func (x *ElseClause) Elements() []Element {
	return []Element{{Tok: &x.Else}, {Tok: &x.Colon}, {Node: x.Body}}
}

func (x *While) Elements() []Element {
	var e elems
	e.tok(&x.While)
	e.node(x.Test)
	e.tok(&x.Colon)
	e.node(x.Body)
	if x.Else != nil {
		e.node(x.Else)
	}
	return e
}

func (x *For) Elements() []Element {
	var e elems
	e.tok(x.Async)
	e.tok(&x.For)
	e.node(x.Target)
	e.tok(&x.In)
	e.node(x.Iter)
	e.tok(&x.Colon)
	e.node(x.Body)
	if x.Else != nil {
		e.node(x.Else)
	}
	return e
}

func (x *With) Elements() []Element {
	var e elems
	e.tok(x.Async)
	e.tok(&x.With)
	e.tok(x.LParen)
	sep(&e, x.Items, x.Commas)
	e.tok(x.RParen)
	e.tok(&x.Colon)
	e.node(x.Body)
	return e
}

func (x *WithItem) Elements() []Element {
	var e elems
	e.node(x.Context)
	e.tok(x.As)
	e.node(x.Target)
	return e
}

func (x *Try) Elements() []Element {
	var e elems
	e.tok(&x.Try)
	e.tok(&x.Colon)
	e.node(x.Body)
	nodes(&e, x.Handlers)
	if x.Else != nil {
		e.node(x.Else)
	}
	if x.Finally != nil {
		e.node(x.Finally)
	}
	return e
}

func (x *ExceptHandler) Elements() []Element {
	var e elems
	e.tok(&x.Except)
	e.tok(x.Star)
	e.node(x.Type)
	e.tok(x.As)
	e.tok(x.Name)
	e.tok(&x.Colon)
	e.node(x.Body)
	return e
}

func (x *FinallyClause) Elements() []Element {
	return []Element{{Tok: &x.Finally}, {Tok: &x.Colon}, {Node: x.Body}}
}

func (x *Match) Elements() []Element {
	var e elems
	e.tok(&x.Match)
	e.node(x.Subject)
	e.tok(&x.Colon)
	e.tok(&x.Newline)
	e.tok(&x.Indent)
	nodes(&e, x.Cases)
	e.tok(&x.Dedent)
	return e
}

func (x *MatchCase) Elements() []Element {
	var e elems
	e.tok(&x.Case)
	e.node(x.Pattern)
	e.tok(x.If)
	e.node(x.Guard)
	e.tok(&x.Colon)
	e.node(x.Body)
	return e
}

func (x *Decorator) Elements() []Element {
	return []Element{{Tok: &x.At}, {Node: x.X}, {Tok: &x.Newline}}
}

func (x *FunctionDef) Elements() []Element {
	var e elems
	nodes(&e, x.Decorators)
	e.tok(x.Async)
	e.tok(&x.Def)
	e.tok(&x.Name)
	if x.TypeParams != nil {
		e.node(x.TypeParams)
	}
	e.tok(&x.LParen)
	if x.Params != nil {
		e.node(x.Params)
	}
	e.tok(&x.RParen)
	e.tok(x.Arrow)
	e.node(x.Returns)
	e.tok(&x.Colon)
	e.node(x.Body)
	return e
}

func (x *ClassDef) Elements() []Element {
	var e elems
	nodes(&e, x.Decorators)
	e.tok(&x.Class)
	e.tok(&x.Name)
	if x.TypeParams != nil {
		e.node(x.TypeParams)
	}
	e.tok(x.LParen)
	sep(&e, x.Args, x.Commas)
	e.tok(x.RParen)
	e.tok(&x.Colon)
	e.node(x.Body)
	return e
}

func (x *Module) Elements() []Element {
	var e elems
	nodes(&e, x.Body)
	e.tok(&x.EOF)
	return e
}

func sepTokens(e *elems, items, seps []token.Token) {
	for i := range items {
		e.tok(&items[i])
		if i < len(seps) {
			e.tok(&seps[i])
		}
	}
}

func (x *Pass) Span() source.Span             { return x.Tok.Span }
func (x *Break) Span() source.Span            { return x.Tok.Span }
func (x *Continue) Span() source.Span         { return x.Tok.Span }
func (x *Return) Span() source.Span           { return spanOf(x) }
func (x *Raise) Span() source.Span            { return spanOf(x) }
func (x *Global) Span() source.Span           { return spanOf(x) }
func (x *Nonlocal) Span() source.Span         { return spanOf(x) }
func (x *Assert) Span() source.Span           { return spanOf(x) }
func (x *Del) Span() source.Span              { return spanOf(x) }
func (x *DottedName) Span() source.Span       { return spanOf(x) }
func (x *Alias) Span() source.Span            { return spanOf(x) }
func (x *Import) Span() source.Span           { return spanOf(x) }
func (x *ImportFrom) Span() source.Span       { return spanOf(x) }
func (x *TypeAlias) Span() source.Span        { return spanOf(x) }
func (x *TypeParams) Span() source.Span       { return spanOf(x) }
func (x *TypeParam) Span() source.Span        { return spanOf(x) }
func (x *ExprStmt) Span() source.Span         { return x.X.Span() }
func (x *Assign) Span() source.Span           { return spanOf(x) }
func (x *AugAssign) Span() source.Span        { return spanOf(x) }
func (x *AnnAssign) Span() source.Span        { return spanOf(x) }
func (x *SimpleStatements) Span() source.Span { return spanOf(x) }
func (x *Block) Span() source.Span            { return spanOf(x) }
func (x *If) Span() source.Span               { return spanOf(x) }
func (x *Elif) Span() source.Span             { return spanOf(x) }
func (x *ElseClause) Span() source.Span       { return spanOf(x) }
func (x *While) Span() source.Span            { return spanOf(x) }
func (x *For) Span() source.Span              { return spanOf(x) }
func (x *With) Span() source.Span             { return spanOf(x) }
func (x *WithItem) Span() source.Span         { return spanOf(x) }
func (x *Try) Span() source.Span              { return spanOf(x) }
func (x *ExceptHandler) Span() source.Span    { return spanOf(x) }
func (x *FinallyClause) Span() source.Span    { return spanOf(x) }
func (x *Match) Span() source.Span            { return spanOf(x) }
func (x *MatchCase) Span() source.Span        { return spanOf(x) }
func (x *Decorator) Span() source.Span        { return spanOf(x) }
func (x *FunctionDef) Span() source.Span      { return spanOf(x) }
func (x *ClassDef) Span() source.Span         { return spanOf(x) }
func (x *Module) Span() source.Span           { return spanOf(x) }
