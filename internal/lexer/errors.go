package lexer

import (
	"fmt"

	"pycst/internal/diag"
	"pycst/internal/source"
	"pycst/internal/token"
)

// Error is a lexical failure. The lexer stops at the first one.
type Error struct {
	Code diag.Code
	Span source.Span
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", e.Code.ID(), e.Span.Start, e.Msg)
}

// Offset returns the byte offset the error points at.
func (e *Error) Offset() uint32 { return e.Span.Start }

// fail records the first lexical error, reports it and returns the sticky Error token.
func (lx *Lexer) fail(code diag.Code, sp source.Span, text, msg string) token.Token {
	lx.err = &Error{Code: code, Span: sp, Msg: msg}
	lx.report(code, sp, msg)
	lx.errTok = token.Token{Kind: token.Error, Span: sp, Text: text, Leading: lx.takeHold()}
	return lx.errTok
}

// Err returns the lexical error the lexer stopped at, or nil.
func (lx *Lexer) Err() error {
	if lx.err == nil {
		return nil
	}
	return lx.err
}
