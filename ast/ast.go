// Package ast defines the abstract syntax tree representation of TFMT code.
//
// The tree is built once by the parser and never mutated afterwards, so a
// single Program may be shared by any number of concurrent interpreters.
package ast

import "github.com/tagfmt/tfmt/internal/token"

// Node represents a portion of the syntax tree.
type Node interface {
	// Pos returns the position of the first grapheme belonging to the node.
	Pos() token.Position

	// String returns a human friendly representation of the Node. Binary,
	// unary and ternary expressions are fully parenthesized, which makes the
	// shape of the tree visible.
	String() string
}

// Expr is an expression node. The set of expressions is closed: only the
// types in this package implement it, and code switching over an Expr is
// expected to handle every one of them.
type Expr interface {
	Node
	exprNode()
}
