// Package lexer turns a source.File into a lossless token stream.
//
// Every byte of the input ends up either in a token's Text or in the leading trivia of the
// token that follows it, so concatenating Token.Source() over the stream reproduces the file.
// The lexer owns the bracket stack (newlines inside brackets are trivia) and the indentation
// stack (Indent/Dedent at logical line starts). The stream always ends with a Newline, one
// Dedent per open block and EOF.
//
// The first lexical error stops the lexer: it returns a token.Error token from then on and
// Err reports the *Error.
package lexer
