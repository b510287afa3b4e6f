// Package parser is used to generate the abstract syntax tree (AST) for a
// TFMT script.
//
// A parser is created by calling New() with a lexer as input. The parser should
// then be used only once, by calling parser.Parse() to produce the AST.
// Parsing is fail-fast: the first error aborts the parse.
package parser

import (
	"github.com/tagfmt/tfmt/ast"
	"github.com/tagfmt/tfmt/internal/lexer"
	"github.com/tagfmt/tfmt/internal/token"
)

// DefaultMaxDepth is the default maximum nesting depth for parsing.
const DefaultMaxDepth = 64

// Parse the provided input as TFMT source code and return the AST. This is
// shorthand way to create a Lexer and Parser and then call Parse on that.
func Parse(input string, options ...Option) (*ast.Program, error) {
	return New(lexer.New(input), options...).Parse()
}

// Option is a configuration function for a Parser.
type Option func(*Parser)

// WithMaxDepth sets the maximum nesting depth for the parser.
// This prevents runaway recursion on deeply nested input.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		p.maxDepth = depth
	}
}

// Parser object
type Parser struct {
	// l is our lexer
	l *lexer.Lexer

	// curToken holds the next token to be consumed.
	curToken token.Token

	// peekToken holds the token after curToken.
	peekToken token.Token

	// err holds the lexer error met while filling the lookahead. It is
	// reported once the failed token becomes current.
	err error

	// Current recursion depth
	depth int

	// Maximum allowed recursion depth
	maxDepth int
}

// New returns a Parser for the program provided by the given Lexer.
func New(l *lexer.Lexer, options ...Option) *Parser {
	p := &Parser{
		l:        l,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range options {
		opt(p)
	}
	// Prime the token pump
	p.peekToken = p.lex()
	p.nextToken()
	return p
}

// lex returns the next token the parser cares about, skipping comments.
// A lexer failure is recorded in p.err and stood in for by an ILLEGAL token.
func (p *Parser) lex() token.Token {
	if p.err != nil {
		return token.Token{Type: token.ILLEGAL}
	}
	for {
		tok, err := p.l.Next()
		if err != nil {
			p.err = p.lexicalError(err)
			return token.Token{Type: token.ILLEGAL}
		}
		if !tok.Ignored() {
			return tok
		}
	}
}

// nextToken moves to the next token. It fails if the new current token
// could not be lexed.
func (p *Parser) nextToken() error {
	p.curToken = p.peekToken
	p.peekToken = p.lex()
	if p.curToken.Type == token.ILLEGAL {
		return p.err
	}
	return nil
}

// Parse the program that is provided via the lexer.
func (p *Parser) Parse() (*ast.Program, error) {
	if p.curToken.Type == token.ILLEGAL {
		return nil, p.err
	}
	program, err := p.parseProgram()
	if err != nil {
		return nil, err
	}
	program.Source = p.l.Input()
	return program, nil
}

// enter increments the recursion depth, failing once it exceeds the limit.
// Every successful call must be paired with a call to leave.
func (p *Parser) enter() error {
	p.depth++
	if p.depth > p.maxDepth {
		p.depth--
		return p.tokenError(ErrMaxDepth, p.curToken, "limit is %d", p.maxDepth)
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

// curTokenIs returns true if the current token has one of the given types.
func (p *Parser) curTokenIs(types ...token.Type) bool {
	for _, t := range types {
		if p.curToken.Type == t {
			return true
		}
	}
	return false
}

// expect consumes the current token if it has the given type and returns
// it. Otherwise an error is returned and nothing is consumed.
func (p *Parser) expect(t token.Type) (token.Token, error) {
	tok := p.curToken
	if tok.Type != t {
		return tok, p.unexpected(tok, t)
	}
	return tok, p.advance()
}

// advance consumes the current token, unless it is EOF.
func (p *Parser) advance() error {
	if p.curToken.Type == token.EOF {
		return nil
	}
	return p.nextToken()
}
