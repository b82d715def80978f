package lexer

import (
	"pycst/internal/diag"
	"pycst/internal/token"
)

// DefaultTabSize is the tab stop used for indentation widths.
const DefaultTabSize = 8

// collectLeadingTrivia дописывает в lx.hold подряд идущие trivia перед значимым токеном.
//   - ' ' и '\f' коалесцируются в один TriviaWhitespace ('\f' обнуляет ширину отступа)
//   - '\t' коалесцируются в один TriviaTab (каждый таб - до следующей табуляционной позиции)
//   - '#' до конца строки -> TriviaComment
//   - '\' + перевод строки -> TriviaContinuation
//   - перевод строки внутри скобок или на пустой строке -> TriviaNewline
//
// Перевод строки, завершающий логическую строку, возвращается как токен Newline.
func (lx *Lexer) collectLeadingTrivia() (token.Token, bool) {
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		switch b := lx.cursor.Peek(); b {
		case ' ', '\f':
			for {
				c := lx.cursor.Peek()
				if c == ' ' {
					lx.lineWidth++
				} else if c == '\f' {
					lx.lineWidth = 0
				} else {
					break
				}
				lx.cursor.Bump()
			}
			lx.keep(token.TriviaWhitespace, start)

		case '\t':
			ts := lx.tabSize()
			for lx.cursor.Eat('\t') {
				lx.lineWidth = (lx.lineWidth/ts + 1) * ts
			}
			lx.keep(token.TriviaTab, start)

		case '#':
			for !lx.cursor.EOF() && lx.cursor.LineBreakLen() == 0 {
				lx.cursor.Bump()
			}
			lx.keep(token.TriviaComment, start)

		case '\\':
			lx.cursor.Bump()
			if lx.cursor.EatLineBreak() == 0 {
				sp := lx.cursor.SpanFrom(start)
				return lx.fail(diag.LexBadContinuation, sp, "\\", "unexpected character after line continuation character"), true
			}
			lx.keep(token.TriviaContinuation, start)

		case '\n', '\r':
			lx.cursor.EatLineBreak()
			lx.lineWidth = 0
			if len(lx.brackets) > 0 || lx.lineStart {
				lx.keep(token.TriviaNewline, start)
				continue
			}
			tok := lx.emit(token.Newline, start)
			tok.Leading = lx.takeHold()
			lx.lineStart = true
			return tok, true

		default:
			return token.Token{}, false
		}
	}
	return token.Token{}, false
}

func (lx *Lexer) keep(kind token.TriviaKind, start Mark) {
	lx.hold = append(lx.hold, token.Trivia{
		Kind: kind,
		Span: lx.cursor.SpanFrom(start),
		Text: lx.cursor.TextFrom(start),
	})
}
