package diag

import (
	"fmt"
)

// Code identifies a class of diagnostic.
type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003
	LexBracketMismatch    Code = 1004
	LexUnclosedBracket    Code = 1005
	LexInconsistentDedent Code = 1006
	LexBadContinuation    Code = 1007

	// Синтаксические
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynExpectExpression Code = 2002
	SynExpectIdentifier Code = 2003
	SynExpectColon      Code = 2004
	SynExpectNewline    Code = 2005
	SynExpectIndent     Code = 2006
	SynExpectDedent     Code = 2007
	SynExpectRParen     Code = 2008
	SynExpectRBracket   Code = 2009
	SynExpectRBrace     Code = 2010
	SynExpectAssign     Code = 2011
	SynExpectImport     Code = 2012
	SynExpectIn         Code = 2013
	SynExpectPattern    Code = 2014
	SynExpectExcept     Code = 2015
	SynMixedExcept      Code = 2016
	SynInvalidTarget    Code = 2017
	SynUnexpectedIndent Code = 2018
	SynBadParameters    Code = 2019
	SynTooDeeplyNested  Code = 2020
	SynExpectStatement  Code = 2021
	SynBadArguments     Code = 2022

	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	LexInfo:               "Lexical information",
	LexUnknownChar:        "Invalid character",
	LexUnterminatedString: "Unterminated string literal",
	LexBadNumber:          "Malformed numeric literal",
	LexBracketMismatch:    "Closing bracket does not match opener",
	LexUnclosedBracket:    "Unclosed bracket at end of input",
	LexInconsistentDedent: "Dedent does not match any outer indentation level",
	LexBadContinuation:    "Backslash not followed by a line break",
	SynInfo:               "Syntax information",
	SynUnexpectedToken:    "Unexpected token",
	SynExpectExpression:   "Expected expression",
	SynExpectIdentifier:   "Expected identifier",
	SynExpectColon:        "Expected ':'",
	SynExpectNewline:      "Expected end of line",
	SynExpectIndent:       "Expected an indented block",
	SynExpectDedent:       "Expected end of indented block",
	SynExpectRParen:       "Expected ')'",
	SynExpectRBracket:     "Expected ']'",
	SynExpectRBrace:       "Expected '}'",
	SynExpectAssign:       "Expected '='",
	SynExpectImport:       "Expected 'import'",
	SynExpectIn:           "Expected 'in'",
	SynExpectPattern:      "Expected pattern",
	SynExpectExcept:       "Expected 'except' or 'finally'",
	SynMixedExcept:        "Cannot mix 'except' and 'except*'",
	SynInvalidTarget:      "Invalid assignment target",
	SynUnexpectedIndent:   "Unexpected indent",
	SynBadParameters:      "Invalid parameter list",
	SynTooDeeplyNested:    "Too deeply nested",
	SynExpectStatement:    "Expected statement",
	SynBadArguments:       "Invalid argument list",
	IOLoadFileError:       "I/O load file error",
	IOCacheError:          "Parse cache error",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

// IsLexical reports whether the code belongs to the lexer.
func (c Code) IsLexical() bool { return c >= 1000 && c < 2000 }

// IsSyntax reports whether the code belongs to the parser.
func (c Code) IsSyntax() bool { return c >= 2000 && c < 3000 }

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
