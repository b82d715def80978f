package lexer

import (
	"fmt"

	"pycst/internal/diag"
	"pycst/internal/source"
	"pycst/internal/token"
)

func closerFor(open byte) byte {
	switch open {
	case '(':
		return ')'
	case '[':
		return ']'
	default:
		return '}'
	}
}

func openerFor(closer byte) byte {
	switch closer {
	case ')':
		return '('
	case ']':
		return '['
	default:
		return '{'
	}
}

func (lx *Lexer) openBracket(kind token.Kind, start Mark) token.Token {
	tok := lx.emit(kind, start)
	lx.brackets = append(lx.brackets, bracket{closer: closerFor(tok.Text[0]), span: tok.Span})
	return tok
}

// closeBracket снимает вершину стека; закрывающая скобка обязана совпасть с ожидаемой.
func (lx *Lexer) closeBracket(kind token.Kind, start Mark) token.Token {
	tok := lx.emit(kind, start)
	closer := tok.Text[0]
	n := len(lx.brackets)
	if n == 0 {
		return lx.fail(diag.LexBracketMismatch, tok.Span, tok.Text,
			fmt.Sprintf("unmatched '%c'", closer))
	}
	top := lx.brackets[n-1]
	if top.closer != closer {
		return lx.fail(diag.LexBracketMismatch, tok.Span, tok.Text,
			fmt.Sprintf("closing bracket '%c' does not match opening bracket '%c'", closer, openerFor(top.closer)))
	}
	lx.brackets = lx.brackets[:n-1]
	return tok
}

func diagUnclosed(open bracket) (code diag.Code, sp source.Span, text, msg string) {
	return diag.LexUnclosedBracket, open.span, "", fmt.Sprintf("'%c' was never closed", openerFor(open.closer))
}
