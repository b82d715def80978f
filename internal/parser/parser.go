package parser

import (
	"errors"
	"slices"

	"pycst/internal/cst"
	"pycst/internal/diag"
	"pycst/internal/lexer"
	"pycst/internal/source"
	"pycst/internal/token"
)

// DefaultMaxDepth is the nesting limit used when Options.MaxDepth is zero.
const DefaultMaxDepth = 200

type Options struct {
	// MaxDepth bounds nesting of brackets, unary operators and blocks.
	MaxDepth int
	Reporter diag.Reporter
	// TabSize is passed to the lexer; 0 means lexer.DefaultTabSize.
	TabSize uint32
}

// Parser - состояние парсера на один файл. Не разделяется между горутинами.
type Parser struct {
	lx    *lexer.Lexer
	file  *source.File
	opts  Options
	depth int

	// Во время speculate: съеденные токены и подавление отчётов об ошибках.
	replay  []token.Token
	probing bool
}

// New creates a parser over file. The lexer reports to the same Reporter.
func New(file *source.File, opts Options) *Parser {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	return &Parser{
		lx:   lexer.New(file, lexer.Options{Reporter: opts.Reporter, TabSize: opts.TabSize}),
		file: file,
		opts: opts,
	}
}

// NewString creates a parser over an in-memory source.
func NewString(src string, opts Options) *Parser {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<string>", []byte(src))
	return New(fs.Get(id), opts)
}

// ParseString parses a whole module from src.
func ParseString(src string) (*cst.Module, error) {
	return NewString(src, Options{}).ParseModule()
}

// ParseFile parses a whole module from file.
func ParseFile(file *source.File, opts Options) (*cst.Module, error) {
	return New(file, opts).ParseModule()
}

// Peek returns the next token without consuming it.
func (p *Parser) Peek() token.Token { return p.lx.Peek() }

// File returns the file being parsed.
func (p *Parser) File() *source.File { return p.file }

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// atSoft reports whether the next token is the soft keyword kw.
func (p *Parser) atSoft(kw string) bool {
	return p.lx.Peek().IsSoft(kw)
}

// advance - съедает следующий токен
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if p.probing {
		p.replay = append(p.replay, tok)
	}
	return tok
}

// advancePtr съедает токен и возвращает указатель для необязательных полей узлов.
func (p *Parser) advancePtr() *token.Token {
	tok := p.advance()
	return &tok
}

// speculate runs fn without reporting syntax errors. If fn fails with a
// *parser.Error, every token it consumed goes back to the lexer and ok is false.
// Lexical errors are final and are returned as is.
func (p *Parser) speculate(fn func() error) (ok bool, err error) {
	if p.probing {
		return false, errors.New("parser: nested speculate")
	}
	depth := p.depth
	p.probing, p.replay = true, p.replay[:0]
	err = fn()
	p.probing = false

	var synErr *Error
	if err == nil || !errors.As(err, &synErr) {
		return err == nil, err
	}
	p.lx.Unread(p.replay...)
	p.depth = depth
	return false, nil
}

// eat съедает токен вида k, если он следующий.
func (p *Parser) eat(k token.Kind) *token.Token {
	if p.at(k) {
		return p.advancePtr()
	}
	return nil
}

// expect - ожидаем конкретный токен; иначе синтаксическая ошибка с кодом code.
func (p *Parser) expect(k token.Kind, code diag.Code) (token.Token, error) {
	if p.at(k) {
		return p.advance(), nil
	}
	return token.Token{}, p.unexpected(code, "expected "+describeKind(k))
}

func (p *Parser) expectName() (token.Token, error) {
	return p.expect(token.Name, diag.SynExpectIdentifier)
}

// enter увеличивает глубину вложенности; leave вызывается через defer.
func (p *Parser) enter() error {
	p.depth++
	if p.depth > p.opts.MaxDepth {
		return p.errorAt(diag.SynTooDeeplyNested, p.lx.Peek().Span, "too deeply nested")
	}
	return nil
}

func (p *Parser) leave() { p.depth-- }

// ParseModule parses statements up to EOF. Trivia after the last statement stays on EOF.
func (p *Parser) ParseModule() (*cst.Module, error) {
	body, err := p.ParseStatements()
	if err != nil {
		return nil, err
	}
	if !p.at(token.EOF) {
		return nil, p.unexpected(diag.SynUnexpectedToken, "expected end of input")
	}
	return &cst.Module{Body: body, EOF: p.advance()}, nil
}

// ParseStatements parses statements until EOF or the Dedent closing the current block.
func (p *Parser) ParseStatements() ([]cst.Stmt, error) {
	var body []cst.Stmt
	for !p.atAny(token.EOF, token.Dedent) {
		stmt, err := p.ParseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	return body, nil
}
