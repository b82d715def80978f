// Package token defines lexical token kinds and trivia for the pycst front-end.
// Invariants:
//   - Token.Text is exactly the source slice covered by Token.Span.
//   - Trivia is only ever attached as Token.Leading; there is no trailing trivia.
//   - Indent, Dedent and synthetic Newline tokens are zero-width and have empty Text.
//   - Soft keywords (match, case, type, _) are Name tokens; the parser decides their role.
//   - Error is a distinct kind; a lexical failure never masquerades as EOF.
package token
