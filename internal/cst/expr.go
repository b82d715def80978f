package cst

import (
	"pycst/internal/source"
	"pycst/internal/token"
)

type (
	// Name is an identifier.
	Name struct{ Tok token.Token }

	// Number is a numeric literal.
	Number struct{ Tok token.Token }

	// StringLit holds one or more adjacent string literals, implicitly concatenated.
	StringLit struct{ Parts []token.Token }

	// Constant is None, True, False or '...'.
	Constant struct{ Tok token.Token }

	// Paren is a parenthesized expression that is not a tuple: (x), (yield x), (y := 1).
	Paren struct {
		LParen token.Token
		X      Expr
		RParen token.Token
	}

	// Tuple is a comma-separated sequence, with or without parentheses.
	Tuple struct {
		LParen *token.Token
		Elts   []Expr
		Commas []token.Token
		RParen *token.Token
	}

	List struct {
		LBracket token.Token
		Elts     []Expr
		Commas   []token.Token
		RBracket token.Token
	}

	Set struct {
		LBrace token.Token
		Elts   []Expr
		Commas []token.Token
		RBrace token.Token
	}

	Dict struct {
		LBrace token.Token
		Items  []*DictItem
		Commas []token.Token
		RBrace token.Token
	}

	// DictItem is either "key: value" or "**value".
	DictItem struct {
		Key    Expr
		Colon  *token.Token
		Unpack *token.Token
		Value  Expr
	}

	ListComp struct {
		LBracket token.Token
		Elt      Expr
		Clauses  []*CompFor
		RBracket token.Token
	}

	SetComp struct {
		LBrace  token.Token
		Elt     Expr
		Clauses []*CompFor
		RBrace  token.Token
	}

	DictComp struct {
		LBrace  token.Token
		Key     Expr
		Colon   token.Token
		Value   Expr
		Clauses []*CompFor
		RBrace  token.Token
	}

	// GeneratorExp has no parentheses when it is the sole argument of a call.
	GeneratorExp struct {
		LParen  *token.Token
		Elt     Expr
		Clauses []*CompFor
		RParen  *token.Token
	}

	// CompFor is "[async] for target in iter" followed by its "if" filters.
	CompFor struct {
		Async  *token.Token
		For    token.Token
		Target Expr
		In     token.Token
		Iter   Expr
		Ifs    []*CompIf
	}

	CompIf struct {
		If   token.Token
		Cond Expr
	}

	// Primary is an atom followed by one or more trailers.
	Primary struct {
		Atom     Expr
		Trailers []Trailer
	}

	Attribute struct {
		Dot  token.Token
		Name token.Token
	}

	Call struct {
		LParen token.Token
		Args   []*Arg
		Commas []token.Token
		RParen token.Token
	}

	// Arg is a call or class argument: value, name=value, *value or **value.
	Arg struct {
		Star   *token.Token
		Name   *token.Token
		Assign *token.Token
		Value  Expr
	}

	// Subscript holds a plain index, a *Slice or *Slices.
	Subscript struct {
		LBracket token.Token
		Index    Expr
		RBracket token.Token
	}

	// Slice is lower:upper[:step] with every part optional.
	Slice struct {
		Lower  Expr
		Colon  token.Token
		Upper  Expr
		Colon2 *token.Token
		Step   Expr
	}

	// Slices is a comma-separated list of indexes and slices.
	Slices struct {
		Elts   []Expr
		Commas []token.Token
	}

	AwaitExpr struct {
		Await token.Token
		X     Expr
	}

	// BinaryExpr is an arithmetic, shift or bitwise operation. Power is right-associative,
	// all other levels fold left.
	BinaryExpr struct {
		X  Expr
		Op token.Token
		Y  Expr
	}

	// UnaryExpr is +x, -x or ~x.
	UnaryExpr struct {
		Op token.Token
		X  Expr
	}

	// Compare is a comparison chain: a < b <= c.
	Compare struct {
		Left Expr
		Ops  []*CompareOp
	}

	// CompareOp is one link of a chain. "not in" and "is not" keep both tokens.
	CompareOp struct {
		Op    token.Token
		Op2   *token.Token
		Right Expr
	}

	NotExpr struct {
		Not token.Token
		X   Expr
	}

	// BoolExpr is "x and y" or "x or y", folded left.
	BoolExpr struct {
		X  Expr
		Op token.Token
		Y  Expr
	}

	// IfExpr is "body if test else orelse".
	IfExpr struct {
		Body   Expr
		If     token.Token
		Test   Expr
		Else   token.Token
		OrElse Expr
	}

	Lambda struct {
		Lambda token.Token
		Params *Parameters
		Colon  token.Token
		Body   Expr
	}

	// Starred is *x in an expression list or assignment target.
	Starred struct {
		Star token.Token
		X    Expr
	}

	// NamedExpr is "name := value".
	NamedExpr struct {
		Target *Name
		Walrus token.Token
		Value  Expr
	}

	YieldExpr struct {
		Yield token.Token
		From  *token.Token
		Value Expr
	}

	// Parameters is the parameter list of a def or lambda.
	Parameters struct {
		Items  []*Param
		Commas []token.Token
	}

	// Param is one parameter. A bare "/" or "*" marker has Prefix set and no Name.
	Param struct {
		Prefix     *token.Token
		Name       *token.Token
		Colon      *token.Token
		Annotation Expr
		Assign     *token.Token
		Default    Expr
	}
)

func (*Name) exprNode()         {}
func (*Number) exprNode()       {}
func (*StringLit) exprNode()    {}
func (*Constant) exprNode()     {}
func (*Paren) exprNode()        {}
func (*Tuple) exprNode()        {}
func (*List) exprNode()         {}
func (*Set) exprNode()          {}
func (*Dict) exprNode()         {}
func (*ListComp) exprNode()     {}
func (*SetComp) exprNode()      {}
func (*DictComp) exprNode()     {}
func (*GeneratorExp) exprNode() {}
func (*Primary) exprNode()      {}
func (*Slice) exprNode()        {}
func (*Slices) exprNode()       {}
func (*AwaitExpr) exprNode()    {}
func (*BinaryExpr) exprNode()   {}
func (*UnaryExpr) exprNode()    {}
func (*Compare) exprNode()      {}
func (*NotExpr) exprNode()      {}
func (*BoolExpr) exprNode()     {}
func (*IfExpr) exprNode()       {}
func (*Lambda) exprNode()       {}
func (*Starred) exprNode()      {}
func (*NamedExpr) exprNode()    {}
func (*YieldExpr) exprNode()    {}

func (*Attribute) trailerNode() {}
func (*Call) trailerNode()      {}
func (*Subscript) trailerNode() {}

func (x *Name) Elements() []Element     { return []Element{{Tok: &x.Tok}} }
func (x *Number) Elements() []Element   { return []Element{{Tok: &x.Tok}} }
func (x *Constant) Elements() []Element { return []Element{{Tok: &x.Tok}} }

func (x *StringLit) Elements() []Element {
	var e elems
	e.toks(x.Parts)
	return e
}

func (x *Paren) Elements() []Element {
	return []Element{{Tok: &x.LParen}, {Node: x.X}, {Tok: &x.RParen}}
}

func (x *Tuple) Elements() []Element {
	var e elems
	e.tok(x.LParen)
	sep(&e, x.Elts, x.Commas)
	e.tok(x.RParen)
	return e
}

func (x *List) Elements() []Element {
	var e elems
	e.tok(&x.LBracket)
	sep(&e, x.Elts, x.Commas)
	e.tok(&x.RBracket)
	return e
}

func (x *Set) Elements() []Element {
	var e elems
	e.tok(&x.LBrace)
	sep(&e, x.Elts, x.Commas)
	e.tok(&x.RBrace)
	return e
}

func (x *Dict) Elements() []Element {
	var e elems
	e.tok(&x.LBrace)
	sep(&e, x.Items, x.Commas)
	e.tok(&x.RBrace)
	return e
}

func (x *DictItem) Elements() []Element {
	var e elems
	e.tok(x.Unpack)
	e.node(x.Key)
	e.tok(x.Colon)
	e.node(x.Value)
	return e
}

func (x *ListComp) Elements() []Element {
	var e elems
	e.tok(&x.LBracket)
	e.node(x.Elt)
	nodes(&e, x.Clauses)
	e.tok(&x.RBracket)
	return e
}

func (x *SetComp) Elements() []Element {
	var e elems
	e.tok(&x.LBrace)
	e.node(x.Elt)
	nodes(&e, x.Clauses)
	e.tok(&x.RBrace)
	return e
}

func (x *DictComp) Elements() []Element {
	var e elems
	e.tok(&x.LBrace)
	e.node(x.Key)
	e.tok(&x.Colon)
	e.node(x.Value)
	nodes(&e, x.Clauses)
	e.tok(&x.RBrace)
	return e
}

func (x *GeneratorExp) Elements() []Element {
	var e elems
	e.tok(x.LParen)
	e.node(x.Elt)
	nodes(&e, x.Clauses)
	e.tok(x.RParen)
	return e
}

func (x *CompFor) Elements() []Element {
	var e elems
	e.tok(x.Async)
	e.tok(&x.For)
	e.node(x.Target)
	e.tok(&x.In)
	e.node(x.Iter)
	nodes(&e, x.Ifs)
	return e
}

func (x *CompIf) Elements() []Element {
	return []Element{{Tok: &x.If}, {Node: x.Cond}}
}

func (x *Primary) Elements() []Element {
	var e elems
	e.node(x.Atom)
	nodes(&e, x.Trailers)
	return e
}

func (x *Attribute) Elements() []Element {
	return []Element{{Tok: &x.Dot}, {Tok: &x.Name}}
}

func (x *Call) Elements() []Element {
	var e elems
	e.tok(&x.LParen)
	sep(&e, x.Args, x.Commas)
	e.tok(&x.RParen)
	return e
}

func (x *Arg) Elements() []Element {
	var e elems
	e.tok(x.Star)
	e.tok(x.Name)
	e.tok(x.Assign)
	e.node(x.Value)
	return e
}

func (x *Subscript) Elements() []Element {
	return []Element{{Tok: &x.LBracket}, {Node: x.Index}, {Tok: &x.RBracket}}
}

func (x *Slice) Elements() []Element {
	var e elems
	e.node(x.Lower)
	e.tok(&x.Colon)
	e.node(x.Upper)
	e.tok(x.Colon2)
	e.node(x.Step)
	return e
}

func (x *Slices) Elements() []Element {
	var e elems
	sep(&e, x.Elts, x.Commas)
	return e
}

func (x *AwaitExpr) Elements() []Element {
	return []Element{{Tok: &x.Await}, {Node: x.X}}
}

func (x *BinaryExpr) Elements() []Element {
	return []Element{{Node: x.X}, {Tok: &x.Op}, {Node: x.Y}}
}

func (x *UnaryExpr) Elements() []Element {
	return []Element{{Tok: &x.Op}, {Node: x.X}}
}

func (x *Compare) Elements() []Element {
	var e elems
	e.node(x.Left)
	nodes(&e, x.Ops)
	return e
}

func (x *CompareOp) Elements() []Element {
	var e elems
	e.tok(&x.Op)
	e.tok(x.Op2)
	e.node(x.Right)
	return e
}

// Operator returns the comparison operator text, e.g. "<", "not in", "is not".
func (x *CompareOp) Operator() string {
	if x.Op2 == nil {
		return x.Op.Text
	}
	return x.Op.Text + " " + x.Op2.Text
}

func (x *NotExpr) Elements() []Element {
	return []Element{{Tok: &x.Not}, {Node: x.X}}
}

func (x *BoolExpr) Elements() []Element {
	return []Element{{Node: x.X}, {Tok: &x.Op}, {Node: x.Y}}
}

func (x *IfExpr) Elements() []Element {
	return []Element{{Node: x.Body}, {Tok: &x.If}, {Node: x.Test}, {Tok: &x.Else}, {Node: x.OrElse}}
}

func (x *Lambda) Elements() []Element {
	var e elems
	e.tok(&x.Lambda)
	if x.Params != nil {
		e.node(x.Params)
	}
	e.tok(&x.Colon)
	e.node(x.Body)
	return e
}

func (x *Starred) Elements() []Element {
	return []Element{{Tok: &x.Star}, {Node: x.X}}
}

func (x *NamedExpr) Elements() []Element {
	return []Element{{Node: x.Target}, {Tok: &x.Walrus}, {Node: x.Value}}
}

func (x *YieldExpr) Elements() []Element {
	var e elems
	e.tok(&x.Yield)
	e.tok(x.From)
	e.node(x.Value)
	return e
}

func (x *Parameters) Elements() []Element {
	var e elems
	sep(&e, x.Items, x.Commas)
	return e
}

func (x *Param) Elements() []Element {
	var e elems
	e.tok(x.Prefix)
	e.tok(x.Name)
	e.tok(x.Colon)
	e.node(x.Annotation)
	e.tok(x.Assign)
	e.node(x.Default)
	return e
}

func (x *Name) Span() source.Span         { return x.Tok.Span }
func (x *Number) Span() source.Span       { return x.Tok.Span }
func (x *Constant) Span() source.Span     { return x.Tok.Span }
func (x *StringLit) Span() source.Span    { return spanOf(x) }
func (x *Paren) Span() source.Span        { return spanOf(x) }
func (x *Tuple) Span() source.Span        { return spanOf(x) }
func (x *List) Span() source.Span         { return spanOf(x) }
func (x *Set) Span() source.Span          { return spanOf(x) }
func (x *Dict) Span() source.Span         { return spanOf(x) }
func (x *DictItem) Span() source.Span     { return spanOf(x) }
func (x *ListComp) Span() source.Span     { return spanOf(x) }
func (x *SetComp) Span() source.Span      { return spanOf(x) }
func (x *DictComp) Span() source.Span     { return spanOf(x) }
func (x *GeneratorExp) Span() source.Span { return spanOf(x) }
func (x *CompFor) Span() source.Span      { return spanOf(x) }
func (x *CompIf) Span() source.Span       { return spanOf(x) }
func (x *Primary) Span() source.Span      { return spanOf(x) }
func (x *Attribute) Span() source.Span    { return spanOf(x) }
func (x *Call) Span() source.Span         { return spanOf(x) }
func (x *Arg) Span() source.Span          { return spanOf(x) }
func (x *Subscript) Span() source.Span    { return spanOf(x) }
func (x *Slice) Span() source.Span        { return spanOf(x) }
func (x *Slices) Span() source.Span       { return spanOf(x) }
func (x *AwaitExpr) Span() source.Span    { return spanOf(x) }
func (x *BinaryExpr) Span() source.Span   { return spanOf(x) }
func (x *UnaryExpr) Span() source.Span    { return spanOf(x) }
func (x *Compare) Span() source.Span      { return spanOf(x) }
func (x *CompareOp) Span() source.Span    { return spanOf(x) }
func (x *NotExpr) Span() source.Span      { return spanOf(x) }
func (x *BoolExpr) Span() source.Span     { return spanOf(x) }
func (x *IfExpr) Span() source.Span       { return spanOf(x) }
func (x *Lambda) Span() source.Span       { return spanOf(x) }
func (x *Starred) Span() source.Span      { return spanOf(x) }
func (x *NamedExpr) Span() source.Span    { return spanOf(x) }
func (x *YieldExpr) Span() source.Span    { return spanOf(x) }
func (x *Parameters) Span() source.Span   { return spanOf(x) }
func (x *Param) Span() source.Span        { return spanOf(x) }
