// Package cst defines the concrete syntax tree produced by internal/parser.
//
// Three sealed families cover the grammar: Expr, Stmt and Pattern. Consumers type-switch over
// them. Every node keeps each token it consumed, with leading trivia, so the tree holds the
// whole source: Tokens returns them in order and internal/format prints them back.
//
// A node's span is derived from its elements (see Node.Elements): it starts at its first
// token or child and ends at its last one. Optional parts are nil pointers or nil interfaces
// and are skipped.
package cst
