package lexer

import (
	"slices"
	"unicode/utf8"

	"pycst/internal/source"
	"pycst/internal/token"
)

type bracket struct {
	closer byte
	span   source.Span
}

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options

	look []token.Token // просмотренные, но не выданные токены, в порядке выдачи

	hold    []token.Trivia // накопленные leading trivia
	pending []token.Token  // структурные токены, ждущие выдачи (Dedent, EOF)

	brackets  []bracket // ожидаемые закрывающие скобки
	indents   []uint32  // ширины открытых уровней отступа, indents[0] == 0
	lineWidth uint32    // ширина отступа текущей физической строки
	lineStart bool      // ещё не было значимого токена в текущей логической строке

	eof    bool
	err    *Error
	errTok token.Token
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:      file,
		cursor:    NewCursor(file),
		opts:      opts,
		indents:   []uint32{0},
		lineStart: true,
	}
}

// Next возвращает следующий токен с уже собранным Leading.
// После EOF всегда возвращает EOF, после ошибки - тот же Error-токен.
func (lx *Lexer) Next() token.Token {
	if len(lx.look) > 0 {
		tok := lx.look[0]
		lx.look = lx.look[1:]
		return tok
	}
	return lx.scan()
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	lx.fill(1)
	return lx.look[0]
}

// Peek2 возвращает токен после следующего, не потребляя ни один из них.
func (lx *Lexer) Peek2() token.Token {
	lx.fill(2)
	return lx.look[1]
}

func (lx *Lexer) fill(n int) {
	for len(lx.look) < n {
		lx.look = append(lx.look, lx.scan())
	}
}

// Unread returns already consumed tokens to the front of the stream; Next yields
// them again in the given order. Лексер не пересканирует текст: состояние скобок
// и отступов уже учитывает эти токены.
func (lx *Lexer) Unread(toks ...token.Token) {
	if len(toks) == 0 {
		return
	}
	lx.look = append(slices.Clone(toks), lx.look...)
}

// File returns the file being tokenized.
func (lx *Lexer) File() *source.File { return lx.file }

// Depth returns the number of open brackets.
func (lx *Lexer) Depth() int { return len(lx.brackets) }

func (lx *Lexer) scan() token.Token {
	if lx.err != nil {
		return lx.errTok
	}
	if len(lx.pending) > 0 {
		return lx.popPending()
	}
	if lx.eof {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	if tok, ok := lx.collectLeadingTrivia(); ok {
		return tok
	}

	if lx.cursor.EOF() {
		return lx.finish()
	}

	if lx.lineStart && len(lx.brackets) == 0 {
		if tok, ok := lx.measureIndent(); ok {
			return tok
		}
	}
	lx.lineStart = false

	tok := lx.scanToken()
	if tok.Kind == token.Error {
		return tok
	}
	tok.Leading = lx.takeHold()
	return tok
}

func (lx *Lexer) scanToken() token.Token {
	ch := lx.cursor.Peek()
	switch {
	case isIdentStartByte(ch):
		return lx.scanIdentOrKeyword()
	case ch >= utf8.RuneSelf:
		return lx.scanIdentOrKeyword()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '.' && isDec(lx.cursor.PeekAt(1)):
		return lx.scanNumber()
	case ch == '"' || ch == '\'':
		return lx.scanString(lx.cursor.Mark())
	default:
		return lx.scanOperatorOrPunct()
	}
}

// finish выдаёт хвост потока: синтетический Newline, Dedent на каждый открытый уровень, EOF.
// Хвостовые trivia уходят в EOF.
func (lx *Lexer) finish() token.Token {
	if n := len(lx.brackets); n > 0 {
		open := lx.brackets[n-1]
		return lx.fail(diagUnclosed(open))
	}

	at := lx.emptySpan()
	if len(lx.hold) > 0 {
		at.Start = lx.hold[0].Span.Start
		at.End = at.Start
	}

	if !lx.lineStart {
		lx.lineStart = true
		return token.Token{Kind: token.Newline, Span: at}
	}

	for len(lx.indents) > 1 {
		lx.indents = lx.indents[:len(lx.indents)-1]
		lx.pending = append(lx.pending, token.Token{Kind: token.Dedent, Span: at})
	}
	lx.pending = append(lx.pending, token.Token{Kind: token.EOF, Span: lx.emptySpan(), Leading: lx.takeHold()})
	lx.eof = true
	return lx.popPending()
}

func (lx *Lexer) popPending() token.Token {
	tok := lx.pending[0]
	lx.pending = lx.pending[1:]
	return tok
}

func (lx *Lexer) takeHold() []token.Trivia {
	h := lx.hold
	lx.hold = nil
	return h
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) emit(kind token.Kind, start Mark) token.Token {
	return token.Token{Kind: kind, Span: lx.cursor.SpanFrom(start), Text: lx.cursor.TextFrom(start)}
}

// Tokenize lexes the whole file. On a lexical failure the returned slice ends with the
// Error token and err is the *Error.
func Tokenize(file *source.File, opts Options) ([]token.Token, error) {
	lx := New(file, opts)
	toks := make([]token.Token, 0, len(file.Content)/3+2)
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind.IsEOF() {
			break
		}
	}
	return toks, lx.Err()
}
