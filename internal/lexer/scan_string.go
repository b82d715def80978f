package lexer

import (
	"pycst/internal/diag"
	"pycst/internal/token"
)

// scanString сканирует строковый литерал, начиная с кавычки под курсором; start указывает
// на начало префикса, если он был. Текст сохраняется как есть, escape-последовательности
// не декодируются: '\' лишь экранирует следующий символ.
func (lx *Lexer) scanString(start Mark) token.Token {
	quote := lx.cursor.Bump()
	triple := false
	if lx.cursor.Peek() == quote && lx.cursor.PeekAt(1) == quote {
		lx.cursor.Bump()
		lx.cursor.Bump()
		triple = true
	}

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '\\':
			lx.cursor.Bump()
			if lx.cursor.EatLineBreak() == 0 {
				lx.cursor.BumpRune()
			}
		case b == quote:
			lx.cursor.Bump()
			if !triple {
				return lx.emit(token.String, start)
			}
			if lx.cursor.Peek() == quote && lx.cursor.PeekAt(1) == quote {
				lx.cursor.Bump()
				lx.cursor.Bump()
				return lx.emit(token.String, start)
			}
		case (b == '\n' || b == '\r') && !triple:
			sp := lx.cursor.SpanFrom(start)
			return lx.fail(diag.LexUnterminatedString, sp, lx.cursor.TextFrom(start), "unterminated string literal")
		default:
			lx.cursor.Bump()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	msg := "unterminated string literal"
	if triple {
		msg = "unterminated triple-quoted string literal"
	}
	return lx.fail(diag.LexUnterminatedString, sp, lx.cursor.TextFrom(start), msg)
}
