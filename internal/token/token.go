// Package token defines the tokens produced when lexing TFMT source code.
package token

import "fmt"

// Type describes the type of a token as a string.
type Type string

// Position points to a particular location in an input string. Offsets and
// columns are counted in grapheme clusters, not bytes.
type Position struct {
	Char      int // grapheme offset within the input
	LineStart int // grapheme offset of the start of the current line
	Line      int // 0-indexed line number
	Column    int // 0-indexed column number
}

// LineNumber returns the 1-indexed line number for this position in the input.
func (p Position) LineNumber() int {
	return p.Line + 1
}

// ColumnNumber returns the 1-indexed column number for this position in the input.
func (p Position) ColumnNumber() int {
	return p.Column + 1
}

// Advance returns a new Position advanced by n graphemes.
// Note: This assumes the advance does not cross line boundaries.
func (p Position) Advance(n int) Position {
	return Position{
		Char:      p.Char + n,
		LineStart: p.LineStart,
		Line:      p.Line,
		Column:    p.Column + n,
	}
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.LineNumber(), p.ColumnNumber())
}

// NoPos is the zero value Position.
var NoPos = Position{}

// Token represents one token lexed from the input source code.
type Token struct {
	Type          Type
	Literal       string // payload of IDENT, STRING and COMMENT tokens
	Int           int64  // payload of INT tokens
	StartPosition Position
	EndPosition   Position
}

// Ignored reports whether the parser should skip this token.
func (t Token) Ignored() bool {
	return t.Type == COMMENT
}

func (t Token) String() string {
	switch t.Type {
	case IDENT, STRING, COMMENT:
		return fmt.Sprintf("%s(%q)", t.Type, t.Literal)
	case INT:
		return fmt.Sprintf("%s(%d)", t.Type, t.Int)
	default:
		return string(t.Type)
	}
}

// Token types
const (
	AMPERSAND Type = "&"
	AND       Type = "&&"
	ASSIGN    Type = "="
	ASTERISK  Type = "*"
	CARET     Type = "^"
	COLON     Type = ":"
	COMMA     Type = ","
	COMMENT   Type = "COMMENT"
	DOLLAR    Type = "$"
	EOF       Type = "EOF"
	GT        Type = ">"
	HASH      Type = "#"
	IDENT     Type = "IDENT"
	ILLEGAL   Type = "ILLEGAL"
	INT       Type = "INT"
	LBRACE    Type = "{"
	LPAREN    Type = "("
	LT        Type = "<"
	MINUS     Type = "-"
	MOD       Type = "%"
	OR        Type = "||"
	PIPE      Type = "|"
	PLUS      Type = "+"
	POW       Type = "**"
	QUESTION  Type = "?"
	RBRACE    Type = "}"
	RPAREN    Type = ")"
	SLASH     Type = "/"
	STRING    Type = "STRING"
)

// MaxOperatorLength is the longest operator lexeme, in graphemes.
const MaxOperatorLength = 2

var operators = map[string]Type{
	"&":  AMPERSAND,
	"&&": AND,
	"=":  ASSIGN,
	"*":  ASTERISK,
	"^":  CARET,
	":":  COLON,
	",":  COMMA,
	"$":  DOLLAR,
	">":  GT,
	"#":  HASH,
	"{":  LBRACE,
	"(":  LPAREN,
	"<":  LT,
	"-":  MINUS,
	"%":  MOD,
	"||": OR,
	"|":  PIPE,
	"+":  PLUS,
	"**": POW,
	"?":  QUESTION,
	"}":  RBRACE,
	")":  RPAREN,
	"/":  SLASH,
}

// Error is returned when a candidate lexeme is not a known operator.
type Error struct {
	Lexeme string
}

func (e *Error) Error() string {
	return fmt.Sprintf("unknown lexeme %q", e.Lexeme)
}

// LookupOperator returns the operator type for the given lexeme.
func LookupOperator(lexeme string) (Type, error) {
	if tok, ok := operators[lexeme]; ok {
		return tok, nil
	}
	return "", &Error{Lexeme: lexeme}
}

// Describe returns a human friendly name for a token type.
func Describe(t Type) string {
	switch t {
	case EOF:
		return "end of file"
	case IDENT:
		return "identifier"
	case INT:
		return "integer"
	case STRING:
		return "string"
	case COMMENT:
		return "comment"
	default:
		return fmt.Sprintf("%q", string(t))
	}
}
