package ast

import (
	"bytes"
	"strings"

	"github.com/tagfmt/tfmt/internal/token"
)

// Ternary is a conditional expression: "cond ? a : b".
type Ternary struct {
	Cond  Expr
	True  Expr
	False Expr
}

func (x *Ternary) exprNode() {}

func (x *Ternary) Pos() token.Position { return x.Cond.Pos() }

func (x *Ternary) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(x.Cond.String())
	out.WriteString(" ? ")
	out.WriteString(x.True.String())
	out.WriteString(" : ")
	out.WriteString(x.False.String())
	out.WriteString(")")
	return out.String()
}

// Binary is an operator expression where the operator is between the
// operands. Examples include "a + b" and "<album> | 'Unknown'".
type Binary struct {
	X  Expr        // left operand
	Op token.Token // operator
	Y  Expr        // right operand
}

func (x *Binary) exprNode() {}

func (x *Binary) Pos() token.Position { return x.X.Pos() }

func (x *Binary) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(x.X.String())
	out.WriteString(" " + string(x.Op.Type) + " ")
	out.WriteString(x.Y.String())
	out.WriteString(")")
	return out.String()
}

// Unary is an operator expression where the operator precedes the operand.
type Unary struct {
	Op token.Token // "+" or "-"
	X  Expr
}

func (x *Unary) exprNode() {}

func (x *Unary) Pos() token.Position { return x.Op.StartPosition }

func (x *Unary) String() string {
	return "(" + string(x.Op.Type) + x.X.String() + ")"
}

// Group is a parenthesized, non-empty sequence of expressions whose values
// are concatenated.
type Group struct {
	Lparen token.Position
	Exprs  []Expr
	Rparen token.Position
}

func (x *Group) exprNode() {}

func (x *Group) Pos() token.Position { return x.Lparen }

func (x *Group) String() string {
	parts := make([]string, len(x.Exprs))
	for i, expr := range x.Exprs {
		parts[i] = expr.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Function is a call to a built-in function: "$name(a, b)".
type Function struct {
	Start token.Token // the "$" token
	Name  token.Token // function name identifier
	Args  []Expr
	End   token.Token // the closing ")"
}

func (x *Function) exprNode() {}

func (x *Function) Pos() token.Position { return x.Start.StartPosition }

func (x *Function) String() string {
	args := make([]string, len(x.Args))
	for i, arg := range x.Args {
		args[i] = arg.String()
	}
	return "$" + x.Name.Literal + "(" + strings.Join(args, ", ") + ")"
}

// String is a string literal.
type String struct {
	Token token.Token
}

func (x *String) exprNode() {}

func (x *String) Pos() token.Position { return x.Token.StartPosition }

func (x *String) String() string { return quote(x.Token.Literal) }

// Integer is an integer literal.
type Integer struct {
	Token token.Token
}

func (x *Integer) exprNode() {}

func (x *Integer) Pos() token.Position { return x.Token.StartPosition }

func (x *Integer) String() string { return x.Token.Literal }

// Symbol is a reference to a script parameter: "$(name)".
type Symbol struct {
	Token token.Token // the parameter name identifier
}

func (x *Symbol) exprNode() {}

func (x *Symbol) Pos() token.Position { return x.Token.StartPosition }

func (x *Symbol) String() string { return "$(" + x.Token.Literal + ")" }

// Tag is a reference to an audio metadata tag: "<name>".
type Tag struct {
	Start token.Token // the "<" token
	Name  token.Token // tag name identifier
}

func (x *Tag) exprNode() {}

func (x *Tag) Pos() token.Position { return x.Start.StartPosition }

func (x *Tag) String() string { return "<" + x.Name.Literal + ">" }
