package parser

import (
	"fmt"

	"pycst/internal/diag"
	"pycst/internal/source"
	"pycst/internal/token"
)

// Error is a syntax failure. Parsing stops at the first one.
type Error struct {
	Code diag.Code
	Span source.Span
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", e.Code.ID(), e.Span.Start, e.Msg)
}

// Offset returns the byte offset of the offending token.
func (e *Error) Offset() uint32 { return e.Span.Start }

// errorAt builds a syntax error. If the lexer has already failed, its *lexer.Error is returned
// instead so lexical and syntax failures stay distinguishable.
func (p *Parser) errorAt(code diag.Code, sp source.Span, msg string) error {
	if p.lx.Peek().Kind == token.Error {
		return p.lx.Err()
	}
	if p.opts.Reporter != nil && !p.probing {
		p.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
	return &Error{Code: code, Span: sp, Msg: msg}
}

// unexpected reports the next token as the culprit: "<what>, got <token>".
func (p *Parser) unexpected(code diag.Code, what string) error {
	tok := p.lx.Peek()
	return p.errorAt(code, tok.Span, what+", got "+describe(tok))
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.Name, token.Number, token.String:
		return fmt.Sprintf("%q", tok.Text)
	}
	return describeKind(tok.Kind)
}

func describeKind(k token.Kind) string {
	switch k {
	case token.EOF:
		return "end of input"
	case token.Newline:
		return "end of line"
	case token.Indent:
		return "indented block"
	case token.Dedent:
		return "end of block"
	case token.Name:
		return "identifier"
	case token.Number:
		return "number"
	case token.String:
		return "string"
	case token.Error:
		return "invalid token"
	}
	if text := opText(k); text != "" {
		return "'" + text + "'"
	}
	return "'" + k.String() + "'"
}

var opTexts = map[token.Kind]string{
	token.LParen: "(", token.RParen: ")", token.LBracket: "[", token.RBracket: "]",
	token.LBrace: "{", token.RBrace: "}", token.Comma: ",", token.Colon: ":",
	token.Semicolon: ";", token.Dot: ".", token.Ellipsis: "...", token.Assign: "=",
	token.Arrow: "->", token.ColonAssign: ":=", token.Star: "*", token.DoubleStar: "**",
}

func opText(k token.Kind) string { return opTexts[k] }
