package parser

import "github.com/tagfmt/tfmt/internal/token"

// Binary operators grouped by precedence, lowest first. Every level is
// right-recursive: "a + b + c" parses as "a + (b + c)".
var precedences = [][]token.Type{
	{token.OR, token.PIPE},
	{token.AND, token.AMPERSAND},
	{token.PLUS, token.MINUS},
	{token.ASTERISK, token.SLASH, token.MOD},
	{token.POW, token.CARET},
}
