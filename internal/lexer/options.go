package lexer

import (
	"pycst/internal/diag"
	"pycst/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil - тогда ошибка доступна только через Err()
	TabSize  uint32        // 0 = DefaultTabSize
}

func (lx *Lexer) tabSize() uint32 {
	if lx.opts.TabSize == 0 {
		return DefaultTabSize
	}
	return lx.opts.TabSize
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}
