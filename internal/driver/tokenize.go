package driver

import (
	"github.com/pkg/errors"

	"pycst/internal/diag"
	"pycst/internal/lexer"
	"pycst/internal/source"
	"pycst/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token // заканчивается EOF или Error
	Bag     *diag.Bag
	Err     error // *lexer.Error, если лексер остановился на ошибке
}

// Tokenize reads path and lexes it to the end.
func Tokenize(path string, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, errors.Wrapf(err, "tokenize %s", path)
	}
	return TokenizeFile(fs, fs.Get(fileID), opts), nil
}

// TokenizeFile lexes a file already in fs.
func TokenizeFile(fs *source.FileSet, file *source.File, opts Options) *TokenizeResult {
	bag := diag.NewBag(opts.maxDiagnostics())
	lx := lexer.New(file, lexer.Options{
		Reporter: diag.BagReporter{Bag: bag},
		TabSize:  opts.Parse.TabSize,
	})

	tokens := make([]token.Token, 0, len(file.Content)/4+2)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind.IsEOF() {
			break
		}
	}

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
		Err:     lx.Err(),
	}
}
