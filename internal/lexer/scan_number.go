package lexer

import (
	"fmt"

	"pycst/internal/diag"
	"pycst/internal/token"
)

// Поддержка: 0b..., 0o..., 0x... с общим правилом группировки, десятичные 123, 1_000, 1.5, .5, 1.,
// 1e-3, 1.0E+10 и мнимый суффикс j/J. Текст литерала сохраняется как есть.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'b', 'B':
			return lx.scanBased(start, isBin, "binary")
		case 'o', 'O':
			return lx.scanBased(start, isOct, "octal")
		case 'x', 'X':
			return lx.scanBased(start, isHex, "hexadecimal")
		}
	}
	return lx.scanDecimal(start)
}

func (lx *Lexer) scanBased(start Mark, digit func(byte) bool, base string) token.Token {
	lx.cursor.Bump() // '0'
	lx.cursor.Bump() // b/o/x
	if msg := lx.scanDigitRun(digit); msg != "" {
		return lx.badNumber(start, fmt.Sprintf("invalid %s literal: %s", base, msg))
	}
	if isIdentContinueByte(lx.cursor.Peek()) {
		return lx.badNumber(start, fmt.Sprintf("invalid digit %q in %s literal", lx.cursor.Peek(), base))
	}
	return lx.emit(token.Number, start)
}

func (lx *Lexer) scanDecimal(start Mark) token.Token {
	if lx.cursor.Eat('.') {
		if msg := lx.scanDigitRun(isDec); msg != "" {
			return lx.badNumber(start, "invalid decimal literal: "+msg)
		}
	} else {
		if msg := lx.scanDigitRun(isDec); msg != "" {
			return lx.badNumber(start, "invalid decimal literal: "+msg)
		}
		if lx.cursor.Eat('.') && isDec(lx.cursor.Peek()) {
			if msg := lx.scanDigitRun(isDec); msg != "" {
				return lx.badNumber(start, "invalid decimal literal: "+msg)
			}
		}
	}

	// экспонента только если за e/E (и знаком) идут цифры, иначе 'e' начинает следующий токен
	if p := lx.cursor.Peek(); p == 'e' || p == 'E' {
		m := lx.cursor.Mark()
		lx.cursor.Bump()
		if s := lx.cursor.Peek(); s == '+' || s == '-' {
			lx.cursor.Bump()
		}
		if isDec(lx.cursor.Peek()) {
			if msg := lx.scanDigitRun(isDec); msg != "" {
				return lx.badNumber(start, "invalid decimal literal: "+msg)
			}
		} else {
			lx.cursor.Reset(m)
		}
	}

	if p := lx.cursor.Peek(); p == 'j' || p == 'J' {
		lx.cursor.Bump()
	}
	return lx.emit(token.Number, start)
}

// scanDigitRun читает серию цифр: первая - цифра, '_' допустим только между двумя цифрами.
// Возвращает описание ошибки или "".
func (lx *Lexer) scanDigitRun(digit func(byte) bool) string {
	if !digit(lx.cursor.Peek()) {
		if lx.cursor.Peek() == '_' {
			return "underscore must follow a digit"
		}
		return "missing digits"
	}
	for {
		for digit(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		if lx.cursor.Peek() != '_' {
			return ""
		}
		lx.cursor.Bump()
		if !digit(lx.cursor.Peek()) {
			if lx.cursor.Peek() == '_' {
				return "consecutive underscores"
			}
			return "trailing underscore"
		}
	}
}

func (lx *Lexer) badNumber(start Mark, msg string) token.Token {
	if isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.fail(diag.LexBadNumber, lx.cursor.SpanFrom(start), lx.cursor.TextFrom(start), msg)
}
