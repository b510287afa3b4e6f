package interpreter

import (
	"errors"
	"fmt"

	"github.com/tagfmt/tfmt/ast"
	"github.com/tagfmt/tfmt/errz"
	"github.com/tagfmt/tfmt/internal/token"
)

// Kinds of function errors.
var (
	ErrWrongArguments  = errors.New("wrong number of arguments")
	ErrUnknownFunction = errors.New("unknown function")
	ErrInvalidNumber   = errors.New("invalid number")
	ErrInvalidArgument = errors.New("invalid argument")
)

// Kinds of interpreter errors.
var (
	ErrInvalidTokenType = errors.New("invalid operator")
	ErrUnknownTag       = errors.New("unknown tag")
	ErrDivisionByZero   = errors.New("division by zero")
	ErrOverflow         = errors.New("integer overflow")
	ErrUnknownSymbol    = errors.New("unknown symbol")
	ErrFunction         = errors.New("function call failed")
)

// FunctionError is returned by built-in functions. It has no location; the
// interpreter wraps it in an Error pointing at the call.
type FunctionError struct {
	errz.StructuredError
	Name     string
	Expected int // for ErrWrongArguments
	Found    int // for ErrWrongArguments
}

func newFunctionError(name string, kind, cause error, format string, args ...any) *FunctionError {
	return &FunctionError{
		StructuredError: errz.StructuredError{
			Kind:   kind,
			Detail: fmt.Sprintf(format, args...),
			Cause:  cause,
		},
		Name: name,
	}
}

// NewArgsError returns an ErrWrongArguments error for the named function.
func NewArgsError(name string, takes, given int) *FunctionError {
	err := newFunctionError(name, ErrWrongArguments, nil,
		"%s() takes exactly %d arguments (%d given)", name, takes, given)
	err.Expected = takes
	err.Found = given
	return err
}

// Error is returned when a program fails to evaluate against a set of tags.
type Error struct {
	errz.StructuredError
	// Node is the expression that failed.
	Node ast.Node
}

func (e *evaluator) newError(kind error, node ast.Node, pos token.Position, cause error, format string, args ...any) *Error {
	return &Error{
		StructuredError: errz.StructuredError{
			Kind:    kind,
			Detail:  fmt.Sprintf(format, args...),
			Cause:   cause,
			Context: errz.NewContext(e.program.Source, pos),
		},
		Node: node,
	}
}

func (e *evaluator) functionError(node *ast.Function, fnErr *FunctionError) *Error {
	return &Error{
		StructuredError: errz.StructuredError{
			Kind:    ErrFunction,
			Detail:  fnErr.Message(),
			Cause:   fnErr,
			Context: errz.NewContext(e.program.Source, node.Pos()),
		},
		Node: node,
	}
}
