package lexer

import (
	"fmt"

	"pycst/internal/diag"
	"pycst/internal/token"
)

// scanOperatorOrPunct - жадный разбор операторов вложенным lookahead по семействам:
// '*' смотрит на второй '*', затем на '=' (** **= *= *), без откатов.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	c := &lx.cursor

	// family выбирает вид по необязательному '=' после уже прочитанного оператора
	family := func(plain, assign token.Kind) token.Token {
		if c.Eat('=') {
			return lx.emit(assign, start)
		}
		return lx.emit(plain, start)
	}

	ch := c.Bump()
	switch ch {
	case '+':
		return family(token.Plus, token.PlusAssign)
	case '-':
		if c.Eat('>') {
			return lx.emit(token.Arrow, start)
		}
		return family(token.Minus, token.MinusAssign)
	case '*':
		if c.Eat('*') {
			return family(token.DoubleStar, token.DoubleStarAssign)
		}
		return family(token.Star, token.StarAssign)
	case '/':
		if c.Eat('/') {
			return family(token.DoubleSlash, token.DoubleSlashAssign)
		}
		return family(token.Slash, token.SlashAssign)
	case '%':
		return family(token.Percent, token.PercentAssign)
	case '@':
		return family(token.At, token.AtAssign)
	case '&':
		return family(token.Amp, token.AmpAssign)
	case '|':
		return family(token.Pipe, token.PipeAssign)
	case '^':
		return family(token.Caret, token.CaretAssign)
	case '~':
		return lx.emit(token.Tilde, start)
	case '<':
		if c.Eat('<') {
			return family(token.Shl, token.ShlAssign)
		}
		return family(token.Lt, token.LtEq)
	case '>':
		if c.Eat('>') {
			return family(token.Shr, token.ShrAssign)
		}
		return family(token.Gt, token.GtEq)
	case '=':
		return family(token.Assign, token.EqEq)
	case '!':
		if c.Eat('=') {
			return lx.emit(token.NotEq, start)
		}
		sp := c.SpanFrom(start)
		return lx.fail(diag.LexUnknownChar, sp, "!", "'!' is only valid as part of '!='")
	case ':':
		return family(token.Colon, token.ColonAssign)
	case '.':
		if c.Peek() == '.' && c.PeekAt(1) == '.' {
			c.Bump()
			c.Bump()
			return lx.emit(token.Ellipsis, start)
		}
		return lx.emit(token.Dot, start)
	case ',':
		return lx.emit(token.Comma, start)
	case ';':
		return lx.emit(token.Semicolon, start)
	case '(':
		return lx.openBracket(token.LParen, start)
	case '[':
		return lx.openBracket(token.LBracket, start)
	case '{':
		return lx.openBracket(token.LBrace, start)
	case ')':
		return lx.closeBracket(token.RParen, start)
	case ']':
		return lx.closeBracket(token.RBracket, start)
	case '}':
		return lx.closeBracket(token.RBrace, start)
	default:
		sp := c.SpanFrom(start)
		return lx.fail(diag.LexUnknownChar, sp, c.TextFrom(start), fmt.Sprintf("invalid character %q", ch))
	}
}
