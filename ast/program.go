package ast

import (
	"strings"

	"github.com/tagfmt/tfmt/internal/token"
)

// Program is the root of a parsed script.
type Program struct {
	Name        token.Token  // the script name identifier
	Parameters  []*Parameter // in declaration order
	Description *token.Token // optional description string
	Block       *Block
	Source      string // the script text the program was parsed from
}

func (p *Program) Pos() token.Position { return p.Name.StartPosition }

func (p *Program) String() string {
	var out strings.Builder
	out.WriteString(p.Name.Literal)
	out.WriteString("(")
	for i, param := range p.Parameters {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(param.String())
	}
	out.WriteString(")")
	if p.Description != nil {
		out.WriteString(" ")
		out.WriteString(quote(p.Description.Literal))
	}
	out.WriteString(" ")
	out.WriteString(p.Block.String())
	return out.String()
}

// Parameter is a declared script parameter with an optional default, which
// is either an INT or a STRING token.
type Parameter struct {
	Name    token.Token
	Default *token.Token
}

func (p *Parameter) Pos() token.Position { return p.Name.StartPosition }

func (p *Parameter) String() string {
	if p.Default == nil {
		return p.Name.Literal
	}
	if p.Default.Type == token.STRING {
		return p.Name.Literal + "=" + quote(p.Default.Literal)
	}
	return p.Name.Literal + "=" + p.Default.Literal
}

// Block holds the expressions whose values are concatenated to form the
// output of a script.
type Block struct {
	Lbrace token.Position
	Exprs  []Expr
	Rbrace token.Position
}

func (b *Block) Pos() token.Position { return b.Lbrace }

func (b *Block) String() string {
	parts := make([]string, len(b.Exprs))
	for i, expr := range b.Exprs {
		parts[i] = expr.String()
	}
	if len(parts) == 0 {
		return "{}"
	}
	return "{ " + strings.Join(parts, " ") + " }"
}

func quote(s string) string {
	if strings.Contains(s, "\n") {
		return `"""` + s + `"""`
	}
	return `"` + s + `"`
}
