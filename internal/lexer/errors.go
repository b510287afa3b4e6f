package lexer

import (
	"errors"
	"fmt"

	"github.com/tagfmt/tfmt/errz"
	"github.com/tagfmt/tfmt/internal/token"
)

// Kinds of lexer errors.
var (
	ErrExhaustedText        = errors.New("unexpected end of input")
	ErrForbiddenGrapheme    = errors.New("forbidden grapheme")
	ErrInputContainsCr      = errors.New("input contains a carriage return")
	ErrNewlineInString      = errors.New("newline in string")
	ErrWrongTerminatorAtEOF = errors.New("wrong terminator at end of input")
	ErrInvalidToken         = errors.New("invalid token")
)

// Error is returned when the input cannot be split into tokens.
type Error struct {
	errz.StructuredError
}

func (l *Lexer) newError(kind error, pos token.Position, cause error, format string, args ...any) *Error {
	return &Error{errz.StructuredError{
		Kind:    kind,
		Detail:  fmt.Sprintf(format, args...),
		Cause:   cause,
		Context: errz.NewContext(l.input, pos),
	}}
}
