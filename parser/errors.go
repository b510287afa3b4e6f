package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tagfmt/tfmt/errz"
	"github.com/tagfmt/tfmt/internal/lexer"
	"github.com/tagfmt/tfmt/internal/token"
)

// Kinds of parser errors.
var (
	ErrEmptyGroup          = errors.New("empty group")
	ErrInvalidDefault      = errors.New("invalid default")
	ErrUnexpectedTokenType = errors.New("unexpected token")
	ErrUnrecognizedToken   = errors.New("unrecognized token")
	ErrExhaustedTokens     = errors.New("unexpected end of file")
	ErrMaxDepth            = errors.New("maximum nesting depth exceeded")
	ErrLexical             = errors.New("lexical error")
)

// Error is returned when a script does not match the TFMT grammar.
type Error struct {
	errz.StructuredError
	// Expected lists the acceptable token types for ErrUnexpectedTokenType.
	Expected []token.Type
	// Found is the offending token, if any.
	Found token.Token
}

func (p *Parser) tokenError(kind error, tok token.Token, format string, args ...any) *Error {
	return &Error{
		StructuredError: errz.StructuredError{
			Kind:    kind,
			Detail:  fmt.Sprintf(format, args...),
			Context: errz.NewContext(p.l.Input(), tok.StartPosition),
		},
		Found: tok,
	}
}

// unexpected reports that tok is not one of the expected types. Running out
// of tokens is reported as ErrExhaustedTokens.
func (p *Parser) unexpected(tok token.Token, expected ...token.Type) *Error {
	names := make([]string, len(expected))
	for i, t := range expected {
		names[i] = token.Describe(t)
	}
	want := strings.Join(names, " or ")
	kind := ErrUnexpectedTokenType
	if tok.Type == token.EOF {
		kind = ErrExhaustedTokens
	}
	err := p.tokenError(kind, tok, "expected %s, found %s", want, token.Describe(tok.Type))
	err.Expected = expected
	return err
}

func (p *Parser) lexicalError(err error) *Error {
	var lexErr *lexer.Error
	if !errors.As(err, &lexErr) {
		return &Error{StructuredError: errz.StructuredError{Kind: ErrLexical, Detail: err.Error(), Cause: err}}
	}
	return &Error{StructuredError: errz.StructuredError{
		Kind:    ErrLexical,
		Detail:  lexErr.Message(),
		Cause:   lexErr,
		Context: lexErr.Context,
	}}
}
