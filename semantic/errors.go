package semantic

import (
	"errors"
	"fmt"

	"github.com/tagfmt/tfmt/ast"
	"github.com/tagfmt/tfmt/errz"
	"github.com/tagfmt/tfmt/internal/token"
)

// Kinds of semantic errors.
var (
	ErrSymbolNotUsed      = errors.New("symbol not used")
	ErrTooManyArguments   = errors.New("too many arguments")
	ErrArgumentRequired   = errors.New("argument required")
	ErrUndeclaredSymbol   = errors.New("undeclared symbol")
	ErrDuplicateParameter = errors.New("duplicate parameter")
)

// Error is returned when a program cannot be bound to its arguments.
type Error struct {
	errz.StructuredError
	// Symbol is the parameter the error is about, if any.
	Symbol string
}

func newError(kind error, program *ast.Program, tok token.Token, format string, args ...any) *Error {
	return &Error{
		StructuredError: errz.StructuredError{
			Kind:    kind,
			Detail:  fmt.Sprintf(format, args...),
			Context: errz.NewContext(program.Source, tok.StartPosition),
		},
		Symbol: tok.Literal,
	}
}
