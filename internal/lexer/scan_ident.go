package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"pycst/internal/diag"
	"pycst/internal/token"
)

// scanIdentOrKeyword сканирует максимальный идентификатор и классифицирует его через LookupKeyword.
// Ключевые слова регистрозависимые. Если идентификатор - строковый префикс (r, b, f, u и сочетания)
// и сразу за ним кавычка, префикс становится частью String-токена.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	if r, n := lx.cursor.PeekRune(); r >= utf8.RuneSelf && (n == 0 || !isIdentStartRune(r)) {
		lx.cursor.BumpRune()
		sp := lx.cursor.SpanFrom(start)
		return lx.fail(diag.LexUnknownChar, sp, lx.cursor.TextFrom(start), fmt.Sprintf("invalid character %q (U+%04X)", r, r))
	}
	lx.cursor.BumpRune()
	for {
		if b := lx.cursor.Peek(); b < utf8.RuneSelf {
			if lx.cursor.EOF() || !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		if r, _ := lx.cursor.PeekRune(); !isIdentContinueRune(r) {
			break
		}
		lx.cursor.BumpRune()
	}

	text := lx.cursor.TextFrom(start)
	if q := lx.cursor.Peek(); (q == '"' || q == '\'') && isStringPrefix(text) {
		return lx.scanString(start)
	}
	if k, ok := token.LookupKeyword(text); ok {
		return lx.emit(k, start)
	}
	return lx.emit(token.Name, start)
}

// isStringPrefix reports whether s is a valid literal prefix: u, r, b, f, or a
// two-letter combination of r with b or f, in any order and case.
func isStringPrefix(s string) bool {
	switch strings.ToLower(s) {
	case "r", "u", "b", "f", "br", "rb", "fr", "rf":
		return true
	}
	return false
}
