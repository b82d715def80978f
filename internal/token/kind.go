package token

import "strconv"

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid is the zero Kind; the lexer never emits it.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Error marks a lexical failure. The lexer keeps returning it once emitted.
	Error

	// Newline terminates a logical line.
	Newline
	// Indent opens an indented block.
	Indent
	// Dedent closes one indented block.
	Dedent

	// Name represents an identifier token.
	Name
	// Number represents a numeric literal.
	Number
	// String represents a string or bytes literal, prefix and quotes included.
	String

	kwBegin
	// KwFalse represents the 'False' keyword.
	KwFalse // False
	// KwNone represents the 'None' keyword.
	KwNone // None
	// KwTrue represents the 'True' keyword.
	KwTrue // True
	// KwAnd represents the 'and' keyword.
	KwAnd // and
	// KwAs represents the 'as' keyword.
	KwAs // as
	// KwAssert represents the 'assert' keyword.
	KwAssert // assert
	// KwAsync represents the 'async' keyword.
	KwAsync // async
	// KwAwait represents the 'await' keyword.
	KwAwait // await
	// KwBreak represents the 'break' keyword.
	KwBreak // break
	// KwClass represents the 'class' keyword.
	KwClass // class
	// KwContinue represents the 'continue' keyword.
	KwContinue // continue
	// KwDef represents the 'def' keyword.
	KwDef // def
	// KwDel represents the 'del' keyword.
	KwDel // del
	// KwElif represents the 'elif' keyword.
	KwElif // elif
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwExcept represents the 'except' keyword.
	KwExcept // except
	// KwFinally represents the 'finally' keyword.
	KwFinally // finally
	// KwFor represents the 'for' keyword.
	KwFor // for
	// KwFrom represents the 'from' keyword.
	KwFrom // from
	// KwGlobal represents the 'global' keyword.
	KwGlobal // global
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwImport represents the 'import' keyword.
	KwImport // import
	// KwIn represents the 'in' keyword.
	KwIn // in
	// KwIs represents the 'is' keyword.
	KwIs // is
	// KwLambda represents the 'lambda' keyword.
	KwLambda // lambda
	// KwNonlocal represents the 'nonlocal' keyword.
	KwNonlocal // nonlocal
	// KwNot represents the 'not' keyword.
	KwNot // not
	// KwOr represents the 'or' keyword.
	KwOr // or
	// KwPass represents the 'pass' keyword.
	KwPass // pass
	// KwRaise represents the 'raise' keyword.
	KwRaise // raise
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwTry represents the 'try' keyword.
	KwTry // try
	// KwWhile represents the 'while' keyword.
	KwWhile // while
	// KwWith represents the 'with' keyword.
	KwWith // with
	// KwYield represents the 'yield' keyword.
	KwYield // yield
	kwEnd

	opBegin
	// Plus represents the plus operator token.
	Plus // +
	// PlusAssign represents the plus assign operator token.
	PlusAssign // +=
	// Minus represents the minus operator token.
	Minus // -
	// MinusAssign represents the minus assign operator token.
	MinusAssign // -=
	// Arrow represents the return annotation arrow.
	Arrow // ->
	// Star represents the star operator token.
	Star // *
	// StarAssign represents the star assign operator token.
	StarAssign // *=
	// DoubleStar represents the power operator token.
	DoubleStar // **
	// DoubleStarAssign represents the power assign operator token.
	DoubleStarAssign // **=
	// Slash represents the slash operator token.
	Slash // /
	// SlashAssign represents the slash assign operator token.
	SlashAssign // /=
	// DoubleSlash represents the floor division operator token.
	DoubleSlash // //
	// DoubleSlashAssign represents the floor division assign operator token.
	DoubleSlashAssign // //=
	// Percent represents the percent operator token.
	Percent // %
	// PercentAssign represents the percent assign operator token.
	PercentAssign // %=
	// At represents the matrix multiplication / decorator token.
	At // @
	// AtAssign represents the matrix multiplication assign operator token.
	AtAssign // @=
	// Amp represents the bitwise and operator token.
	Amp // &
	// AmpAssign represents the amp assign operator token.
	AmpAssign // &=
	// Pipe represents the bitwise or operator token.
	Pipe // |
	// PipeAssign represents the pipe assign operator token.
	PipeAssign // |=
	// Caret represents the bitwise xor operator token.
	Caret // ^
	// CaretAssign represents the caret assign operator token.
	CaretAssign // ^=
	// Tilde represents the bitwise inversion operator token.
	Tilde // ~
	// Shl represents the left shift operator token.
	Shl // <<
	// ShlAssign represents the shl assign operator token.
	ShlAssign // <<=
	// Shr represents the right shift operator token.
	Shr // >>
	// ShrAssign represents the shr assign operator token.
	ShrAssign // >>=
	// Lt represents the lt operator token.
	Lt // <
	// LtEq represents the lt eq operator token.
	LtEq // <=
	// Gt represents the gt operator token.
	Gt // >
	// GtEq represents the gt eq operator token.
	GtEq // >=
	// EqEq represents the equality operator token.
	EqEq // ==
	// NotEq represents the inequality operator token.
	NotEq // !=
	// Assign represents the assign operator token.
	Assign // =
	// ColonAssign represents the walrus operator token.
	ColonAssign // :=

	// LParen represents the left parenthesis token.
	LParen // (
	// RParen represents the right parenthesis token.
	RParen // )
	// LBracket represents the left bracket token.
	LBracket // [
	// RBracket represents the right bracket token.
	RBracket // ]
	// LBrace represents the left brace token.
	LBrace // {
	// RBrace represents the right brace token.
	RBrace // }
	// Comma represents the comma token.
	Comma // ,
	// Colon represents the colon token.
	Colon // :
	// Semicolon represents the semicolon token.
	Semicolon // ;
	// Dot represents the dot token.
	Dot // .
	// Ellipsis represents the ellipsis token.
	Ellipsis // ...
	opEnd
)

var kindNames = [...]string{
	Invalid: "Invalid",
	EOF:     "EOF",
	Error:   "Error",
	Newline: "Newline",
	Indent:  "Indent",
	Dedent:  "Dedent",
	Name:    "Name",
	Number:  "Number",
	String:  "String",

	KwFalse:    "False",
	KwNone:     "None",
	KwTrue:     "True",
	KwAnd:      "and",
	KwAs:       "as",
	KwAssert:   "assert",
	KwAsync:    "async",
	KwAwait:    "await",
	KwBreak:    "break",
	KwClass:    "class",
	KwContinue: "continue",
	KwDef:      "def",
	KwDel:      "del",
	KwElif:     "elif",
	KwElse:     "else",
	KwExcept:   "except",
	KwFinally:  "finally",
	KwFor:      "for",
	KwFrom:     "from",
	KwGlobal:   "global",
	KwIf:       "if",
	KwImport:   "import",
	KwIn:       "in",
	KwIs:       "is",
	KwLambda:   "lambda",
	KwNonlocal: "nonlocal",
	KwNot:      "not",
	KwOr:       "or",
	KwPass:     "pass",
	KwRaise:    "raise",
	KwReturn:   "return",
	KwTry:      "try",
	KwWhile:    "while",
	KwWith:     "with",
	KwYield:    "yield",

	Plus:              "Plus",
	PlusAssign:        "PlusAssign",
	Minus:             "Minus",
	MinusAssign:       "MinusAssign",
	Arrow:             "Arrow",
	Star:              "Star",
	StarAssign:        "StarAssign",
	DoubleStar:        "DoubleStar",
	DoubleStarAssign:  "DoubleStarAssign",
	Slash:             "Slash",
	SlashAssign:       "SlashAssign",
	DoubleSlash:       "DoubleSlash",
	DoubleSlashAssign: "DoubleSlashAssign",
	Percent:           "Percent",
	PercentAssign:     "PercentAssign",
	At:                "At",
	AtAssign:          "AtAssign",
	Amp:               "Amp",
	AmpAssign:         "AmpAssign",
	Pipe:              "Pipe",
	PipeAssign:        "PipeAssign",
	Caret:             "Caret",
	CaretAssign:       "CaretAssign",
	Tilde:             "Tilde",
	Shl:               "Shl",
	ShlAssign:         "ShlAssign",
	Shr:               "Shr",
	ShrAssign:         "ShrAssign",
	Lt:                "Lt",
	LtEq:              "LtEq",
	Gt:                "Gt",
	GtEq:              "GtEq",
	EqEq:              "EqEq",
	NotEq:             "NotEq",
	Assign:            "Assign",
	ColonAssign:       "ColonAssign",
	LParen:            "LParen",
	RParen:            "RParen",
	LBracket:          "LBracket",
	RBracket:          "RBracket",
	LBrace:            "LBrace",
	RBrace:            "RBrace",
	Comma:             "Comma",
	Colon:             "Colon",
	Semicolon:         "Semicolon",
	Dot:               "Dot",
	Ellipsis:          "Ellipsis",
}

// String returns the name of the kind; keywords print as their spelling.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// IsKeyword reports whether k is one of the hard keywords.
func (k Kind) IsKeyword() bool { return k > kwBegin && k < kwEnd }

// IsOperator reports whether k is an operator or delimiter.
func (k Kind) IsOperator() bool { return k > opBegin && k < opEnd }

// IsStructural reports whether k is a layout token with no text of its own in the grammar.
func (k Kind) IsStructural() bool {
	switch k {
	case Newline, Indent, Dedent, EOF:
		return true
	default:
		return false
	}
}

// IsAugAssign reports whether k is a compound assignment operator.
func (k Kind) IsAugAssign() bool {
	switch k {
	case PlusAssign, MinusAssign, StarAssign, DoubleStarAssign, SlashAssign, DoubleSlashAssign,
		PercentAssign, AtAssign, AmpAssign, PipeAssign, CaretAssign, ShlAssign, ShrAssign:
		return true
	default:
		return false
	}
}

// IsEOF reports whether k ends the token stream, either normally or by a lexical failure.
func (k Kind) IsEOF() bool { return k == EOF || k == Error }
